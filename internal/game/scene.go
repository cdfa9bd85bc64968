package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Board layout, relative to the available drawing area.
const (
	HorizontalMarginFraction = 0.11

	DefaultBackgroundColor = ColorBlack
	CenterLineColor        = ColorWhite
	EndLineColor           = ColorWhite

	ScoreColor                = ColorGreen
	ScoreTopMarginFraction    = 0.02
	ScoreCenterMarginFraction = 0.03
	ScoreTextSizeFraction     = 0.1
	PaddleColor               = ColorWhite
	PaddleHeightFraction      = 0.2
	PaddleWidthFraction       = 0.015
	NormalBallRadiusFraction  = 0.022
	BonusBallRadiusFraction   = 0.015
	NormalBallSpeedPerSecond  = 0.509 // board widths per second
	BonusBallSpeedPerSecond   = 0.436 // board widths per second
)

// Scoring and rally rules.
const (
	NormalBallPoints = 3
	BonusBallPoints  = 1

	BonusBallHitsThreshold = 10
	SpeedIncreaseOnHit     = 0.04

	BallColorOnPointScored    = ColorRed
	EndLineColorOnPointScored = ColorRed
	EndLineFlashDuration      = 1000 * time.Millisecond

	MinAngleAfterPaddleHit = 10.0
	HalfAngleRangeAfterHit = (180 - 2*MinAngleAfterPaddleHit) / 2
)

// BonusBallColors holds one color per ball in a bonus batch.
var BonusBallColors = [...]Color{ColorYellow, ColorCyan, ColorMagenta}

// Board is the fixed playfield geometry of a scene, in pixels.
type Board struct {
	Width, Height float64
	Margin        float64
}

// Option customizes a Scene at construction time.
type Option func(*Scene)

// WithBackground overrides the default background color.
func WithBackground(c Color) Option {
	return func(s *Scene) { s.background = c }
}

// WithClock replaces the wall clock used for end line flash timing.
func WithClock(now func() time.Time) Option {
	return func(s *Scene) { s.now = now }
}

// WithRand replaces the random source used to launch balls.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scene) { s.rng = rng }
}

// Scene owns every game object on the board and advances them frame by frame.
// All methods are safe for concurrent use; the loop goroutine calls Update
// while the input goroutine calls MovePaddle.
type Scene struct {
	mu sync.Mutex

	board      Board
	background Color
	computer   ComputerPaddles

	leftScore, rightScore                 *Score
	leftEndLine, rightEndLine, centerLine *VerticalLine
	leftPaddle, rightPaddle               *Paddle
	normalBall                            *Ball
	bonusBalls                            []*Ball

	consecutiveHits     int
	needBonusBalls      bool
	countdownInProgress bool
	leftLineFlashedAt   time.Time
	rightLineFlashedAt  time.Time

	now func() time.Time
	rng *rand.Rand
}

// NewScene lays out a new game on a drawing area of the given pixel size.
func NewScene(availableWidth, availableHeight int, computer ComputerPaddles, opts ...Option) (*Scene, error) {
	if availableWidth <= 0 || availableHeight <= 0 {
		return nil, fmt.Errorf("%w, got %dx%d", ErrInvalidBoard, availableWidth, availableHeight)
	}
	if !computer.Valid() {
		return nil, fmt.Errorf("%w, got %d", ErrUnknownComputerPaddles, int(computer))
	}

	margin := float64(availableWidth) * HorizontalMarginFraction
	s := &Scene{
		board: Board{
			Width:  float64(availableWidth) - 2*margin,
			Height: float64(availableHeight),
			Margin: margin,
		},
		background: DefaultBackgroundColor,
		computer:   computer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.applyDefaults()

	centerX := s.board.Margin + s.board.Width/2
	scoreY := ScoreTopMarginFraction * s.board.Height
	scoreSize := ScoreTextSizeFraction * s.board.Height
	s.leftScore = NewScore(ScoreColor, centerX-ScoreCenterMarginFraction*s.board.Width, scoreY, scoreSize, true)
	s.rightScore = NewScore(ScoreColor, centerX+ScoreCenterMarginFraction*s.board.Width, scoreY, scoreSize, false)

	b := s.board
	s.leftEndLine = NewVerticalLine(b.Margin, 0, b.Height, EndLineColor, false)
	s.rightEndLine = NewVerticalLine(b.Margin+b.Width, 0, b.Height, EndLineColor, false)
	s.centerLine = NewVerticalLine(centerX, 0, b.Height, CenterLineColor, true)

	s.initializeGameObjects()
	return s, nil
}

func (s *Scene) applyDefaults() {
	if s.now == nil {
		s.now = time.Now
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// initializeGameObjects places fresh paddles and a normal ball on the board.
// Scores and end lines, including any flash in progress, are left untouched.
func (s *Scene) initializeGameObjects() {
	s.consecutiveHits = 0
	s.needBonusBalls = false

	s.leftPaddle = s.newPaddle(SideLeft)
	s.rightPaddle = s.newPaddle(SideRight)

	s.normalBall = s.newBall(NormalBallRadiusFraction, NormalBallSpeedPerSecond, ColorWhite, false)
	clear(s.bonusBalls)
	s.bonusBalls = s.bonusBalls[:0]
}

func (s *Scene) newPaddle(side Side) *Paddle {
	b := s.board
	width := PaddleWidthFraction * b.Width
	height := PaddleHeightFraction * b.Height
	leftX := b.Margin
	if side == SideRight {
		leftX = b.Margin + b.Width - width
	}
	maxSpeed := PaddleSpeed * b.Height / 1000
	return NewPaddle(side, s.computer.Controls(side), leftX, b.Height/2, width, height, PaddleColor, maxSpeed)
}

func (s *Scene) newBall(radiusFraction, speedPerSecond float64, color Color, bonus bool) *Ball {
	b := s.board
	ball := NewBall(b.Margin+b.Width/2, b.Height/2, radiusFraction*b.Width,
		speedPerSecond*b.Width/1000, color, bonus)
	ball.Launch(s.rng)
	return ball
}

// MovePaddle moves the paddle on the given side by deltaY pixels. It is
// ignored while a countdown is in progress.
func (s *Scene) MovePaddle(side Side, deltaY float64, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.countdownInProgress {
		return
	}
	switch side {
	case SideLeft:
		s.leftPaddle.Move(deltaY, s.board.Height, elapsed)
	case SideRight:
		s.rightPaddle.Move(deltaY, s.board.Height, elapsed)
	}
}

// Update advances every object by elapsed time and reports whether the
// normal ball crossed a side wall.
func (s *Scene) Update(elapsed time.Duration) bool {
	if elapsed < 0 {
		elapsed = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.leftEndLine.Flashing() && now.Sub(s.leftLineFlashedAt) > EndLineFlashDuration {
		s.leftEndLine.Revert()
	}
	if s.rightEndLine.Flashing() && now.Sub(s.rightLineFlashedAt) > EndLineFlashDuration {
		s.rightEndLine.Revert()
	}

	pointScored, _ := s.moveBallAndCheckResult(s.normalBall, elapsed)

	// Balls that crossed a wall are dropped while the slice is compacted in place.
	kept := s.bonusBalls[:0]
	for _, ball := range s.bonusBalls {
		if _, gone := s.moveBallAndCheckResult(ball, elapsed); !gone {
			kept = append(kept, ball)
		}
	}
	for i := len(kept); i < len(s.bonusBalls); i++ {
		s.bonusBalls[i] = nil
	}
	s.bonusBalls = kept

	if !pointScored && s.needBonusBalls {
		for i := 0; i < s.consecutiveHits/BonusBallHitsThreshold; i++ {
			s.addBonusBalls()
		}
		s.needBonusBalls = false
	}

	if s.computer.Controls(SideLeft) {
		s.moveComputerPaddle(s.leftPaddle, elapsed)
	}
	if s.computer.Controls(SideRight) {
		s.moveComputerPaddle(s.rightPaddle, elapsed)
	}

	return pointScored
}

// moveBallAndCheckResult moves one ball, bounces it off a paddle if it hit
// one, and otherwise applies scoring if it crossed a side wall. scored is
// only ever true for the normal ball; removed is only ever true for a bonus
// ball.
func (s *Scene) moveBallAndCheckResult(ball *Ball, elapsed time.Duration) (scored, removed bool) {
	ball.Move(elapsed, s.board.Height)

	if s.checkPaddleCollisions(ball) {
		return false, false
	}

	var scorer *Score
	switch ball.CheckIfPointScored(s.board.Width, s.board.Margin) {
	case LeftWallHit:
		s.leftEndLine.Flash(EndLineColorOnPointScored)
		s.leftLineFlashedAt = s.now()
		scorer = s.rightScore
	case RightWallHit:
		s.rightEndLine.Flash(EndLineColorOnPointScored)
		s.rightLineFlashedAt = s.now()
		scorer = s.leftScore
	default:
		return false, false
	}

	ball.Color = BallColorOnPointScored
	if ball.Bonus {
		scorer.Increase(BonusBallPoints)
		return false, true
	}
	scorer.Increase(NormalBallPoints)
	s.consecutiveHits = 0
	return true, false
}

// checkPaddleCollisions tests the left paddle, then the right one, and
// redirects and speeds up the ball on the first hit.
func (s *Scene) checkPaddleCollisions(ball *Ball) bool {
	for _, p := range [...]*Paddle{s.leftPaddle, s.rightPaddle} {
		loc, hit := p.CollisionLocation(ball)
		if !hit {
			continue
		}
		if !ball.Bonus {
			s.incrementConsecutiveHits()
		}
		ball.SetDirection(directionAfterPaddleCollision(p.Side, loc))
		ball.ChangeSpeed(SpeedIncreaseOnHit)
		return true
	}
	return false
}

func (s *Scene) incrementConsecutiveHits() {
	s.consecutiveHits++
	if s.consecutiveHits%BonusBallHitsThreshold == 0 {
		s.needBonusBalls = true
	}
}

// directionAfterPaddleCollision maps a relative collision location onto an
// outgoing direction whose magnitude stays within
// [MinAngleAfterPaddleHit, 180-MinAngleAfterPaddleHit].
func directionAfterPaddleCollision(side Side, loc float64) float64 {
	magnitude := 90 + (-loc)*HalfAngleRangeAfterHit
	switch side {
	case SideLeft:
		return magnitude
	case SideRight:
		return -magnitude
	}
	panic(fmt.Sprintf("game: paddle collision on unknown side %d", int(side)))
}

func (s *Scene) addBonusBalls() {
	for _, color := range BonusBallColors {
		s.bonusBalls = append(s.bonusBalls,
			s.newBall(BonusBallRadiusFraction, BonusBallSpeedPerSecond, color, true))
	}
}

// moveComputerPaddle steers the paddle toward the closest ball heading its
// way, falling back to the normal ball when none is.
func (s *Scene) moveComputerPaddle(p *Paddle, elapsed time.Duration) {
	target := s.normalBall
	found := false
	consider := func(ball *Ball) {
		if ball.MovingRight() != (p.Side == SideRight) {
			return
		}
		closer := ball.X < target.X
		if p.Side == SideRight {
			closer = ball.X > target.X
		}
		if !found || closer {
			target = ball
			found = true
		}
	}

	consider(s.normalBall)
	for _, ball := range s.bonusBalls {
		consider(ball)
	}

	p.Move(target.Y-p.Y, s.board.Height, elapsed)
}

// ResetAfterPointScored replaces the paddles and normal ball, clears the
// bonus balls and the rally counter. Scores are kept.
func (s *Scene) ResetAfterPointScored() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initializeGameObjects()
}

// SetCountdownInProgress toggles suppression of paddle input.
func (s *Scene) SetCountdownInProgress(inProgress bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countdownInProgress = inProgress
}

func (s *Scene) CountdownInProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countdownInProgress
}

func (s *Scene) BackgroundColor() Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

func (s *Scene) Board() Board {
	return s.board
}

// ComputerPaddles is the selector the scene steers paddles with. A restored
// scene keeps the one it was saved with.
func (s *Scene) ComputerPaddles() ComputerPaddles {
	return s.computer
}

// Circles returns the normal ball followed by every live bonus ball.
func (s *Scene) Circles() []Circle {
	s.mu.Lock()
	defer s.mu.Unlock()

	circles := make([]Circle, 0, 1+len(s.bonusBalls))
	circles = append(circles, s.normalBall.Circle())
	for _, ball := range s.bonusBalls {
		circles = append(circles, ball.Circle())
	}
	return circles
}

// Rectangles returns the left and right paddles.
func (s *Scene) Rectangles() []Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []Rect{s.leftPaddle.Rect(), s.rightPaddle.Rect()}
}

// VerticalLines returns the left end line, right end line and center line.
func (s *Scene) VerticalLines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []Line{s.leftEndLine.View(), s.rightEndLine.View(), s.centerLine.View()}
}

// Scores returns the left and right score labels.
func (s *Scene) Scores() []ScoreLabel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []ScoreLabel{s.leftScore.Label(), s.rightScore.Label()}
}

func (s *Scene) LeftScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leftScore.Points
}

func (s *Scene) RightScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rightScore.Points
}

func (s *Scene) ConsecutiveHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.consecutiveHits
}

func (s *Scene) BonusBallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bonusBalls)
}
