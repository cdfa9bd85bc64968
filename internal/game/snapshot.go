package game

import (
	"fmt"
	"time"
)

// Snapshot is a complete, exported copy of a Scene's state. Field order
// follows the scene layout and must stay stable for saved sessions.
type Snapshot struct {
	BoardWidth       float64
	BoardHeight      float64
	BoardMargin      float64
	Background       Color
	ComputerPaddles  ComputerPaddles
	LeftScore        Score
	RightScore       Score
	LeftEndLine      VerticalLine
	RightEndLine     VerticalLine
	CenterLine       VerticalLine
	LeftPaddle       Paddle
	RightPaddle      Paddle
	NormalBall       Ball
	BonusBalls       []Ball
	ConsecutiveHits  int
	NeedBonusBalls   bool
	CountdownStarted bool
	LeftLineFlashed  time.Time
	RightLineFlashed time.Time
}

// Snapshot copies the scene's state.
func (s *Scene) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	bonus := make([]Ball, len(s.bonusBalls))
	for i, b := range s.bonusBalls {
		bonus[i] = *b
	}
	return Snapshot{
		BoardWidth:       s.board.Width,
		BoardHeight:      s.board.Height,
		BoardMargin:      s.board.Margin,
		Background:       s.background,
		ComputerPaddles:  s.computer,
		LeftScore:        *s.leftScore,
		RightScore:       *s.rightScore,
		LeftEndLine:      *s.leftEndLine,
		RightEndLine:     *s.rightEndLine,
		CenterLine:       *s.centerLine,
		LeftPaddle:       *s.leftPaddle,
		RightPaddle:      *s.rightPaddle,
		NormalBall:       *s.normalBall,
		BonusBalls:       bonus,
		ConsecutiveHits:  s.consecutiveHits,
		NeedBonusBalls:   s.needBonusBalls,
		CountdownStarted: s.countdownInProgress,
		LeftLineFlashed:  s.leftLineFlashedAt,
		RightLineFlashed: s.rightLineFlashedAt,
	}
}

// RestoreScene rebuilds a Scene from a snapshot. Clock and random source
// options apply as they do for NewScene.
func RestoreScene(snap Snapshot, opts ...Option) (*Scene, error) {
	if snap.BoardWidth <= 0 || snap.BoardHeight <= 0 {
		return nil, fmt.Errorf("%w, got %gx%g", ErrInvalidBoard, snap.BoardWidth, snap.BoardHeight)
	}
	if !snap.ComputerPaddles.Valid() {
		return nil, fmt.Errorf("%w, got %d", ErrUnknownComputerPaddles, int(snap.ComputerPaddles))
	}
	if snap.NormalBall.Speed <= 0 {
		return nil, fmt.Errorf("snapshot ball speed must be positive, got %g", snap.NormalBall.Speed)
	}
	for i, b := range snap.BonusBalls {
		if b.Speed <= 0 {
			return nil, fmt.Errorf("snapshot bonus ball %d speed must be positive, got %g", i, b.Speed)
		}
	}

	s := &Scene{
		board: Board{
			Width:  snap.BoardWidth,
			Height: snap.BoardHeight,
			Margin: snap.BoardMargin,
		},
		background: snap.Background,
		computer:   snap.ComputerPaddles,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.applyDefaults()

	leftScore, rightScore := snap.LeftScore, snap.RightScore
	leftEnd, rightEnd, center := snap.LeftEndLine, snap.RightEndLine, snap.CenterLine
	leftPaddle, rightPaddle := snap.LeftPaddle, snap.RightPaddle
	normal := snap.NormalBall

	s.leftScore, s.rightScore = &leftScore, &rightScore
	s.leftEndLine, s.rightEndLine, s.centerLine = &leftEnd, &rightEnd, &center
	leftPaddle.Computer = s.computer.Controls(SideLeft)
	rightPaddle.Computer = s.computer.Controls(SideRight)
	s.leftPaddle, s.rightPaddle = &leftPaddle, &rightPaddle
	s.normalBall = &normal

	s.bonusBalls = make([]*Ball, len(snap.BonusBalls))
	for i := range snap.BonusBalls {
		b := snap.BonusBalls[i]
		s.bonusBalls[i] = &b
	}

	s.consecutiveHits = snap.ConsecutiveHits
	s.needBonusBalls = snap.NeedBonusBalls
	s.countdownInProgress = snap.CountdownStarted
	s.leftLineFlashedAt = snap.LeftLineFlashed
	s.rightLineFlashedAt = snap.RightLineFlashed
	return s, nil
}
