package game

import "strconv"

// Score is a player's point total and where it is drawn.
type Score struct {
	Points   int
	X, Y     float64
	TextSize float64
	Color    Color
	// OnLeft is set for the left player's score, which is drawn right-aligned
	// against its anchor so both totals hug the center line.
	OnLeft bool
}

func NewScore(color Color, x, y, textSize float64, onLeft bool) *Score {
	return &Score{X: x, Y: y, TextSize: textSize, Color: color, OnLeft: onLeft}
}

// Increase adds points to the total. Negative amounts are ignored.
func (s *Score) Increase(points int) {
	if points > 0 {
		s.Points += points
	}
}

// Label returns the read-only render view of the score.
func (s *Score) Label() ScoreLabel {
	return ScoreLabel{
		Text:     strconv.Itoa(s.Points),
		X:        s.X,
		Y:        s.Y,
		TextSize: s.TextSize,
		Color:    s.Color,
		OnLeft:   s.OnLeft,
	}
}
