package game

// VerticalLine is an end line or the center divider.
type VerticalLine struct {
	X         float64
	TopY      float64
	BottomY   float64
	Color     Color
	BaseColor Color
	Dashed    bool
}

func NewVerticalLine(x, topY, bottomY float64, color Color, dashed bool) *VerticalLine {
	return &VerticalLine{
		X:         x,
		TopY:      topY,
		BottomY:   bottomY,
		Color:     color,
		BaseColor: color,
		Dashed:    dashed,
	}
}

// Flash switches the line to the given color until Revert is called.
func (l *VerticalLine) Flash(color Color) {
	l.Color = color
}

// Flashing reports whether the line is showing a color other than its base color.
func (l *VerticalLine) Flashing() bool {
	return l.Color != l.BaseColor
}

func (l *VerticalLine) Revert() {
	l.Color = l.BaseColor
}

func (l *VerticalLine) View() Line {
	return Line{X: l.X, TopY: l.TopY, BottomY: l.BottomY, Color: l.Color, Dashed: l.Dashed}
}
