package game

import (
	"math"
	"time"
)

const (
	// PaddleSpeed caps paddle travel, in board heights per second.
	PaddleSpeed = 1.5
)

// Paddle is a vertical rectangle guarding one end of the board. Y is the
// vertical center; LeftX and Width are fixed for the paddle's lifetime.
type Paddle struct {
	Side     Side
	Computer bool
	LeftX    float64
	Y        float64
	Width    float64
	Height   float64
	Color    Color
	// MaxSpeed is in pixels per millisecond.
	MaxSpeed float64
}

func NewPaddle(side Side, computer bool, leftX, y, width, height float64, color Color, maxSpeed float64) *Paddle {
	return &Paddle{
		Side:     side,
		Computer: computer,
		LeftX:    leftX,
		Y:        y,
		Width:    width,
		Height:   height,
		Color:    color,
		MaxSpeed: maxSpeed,
	}
}

// Move shifts the paddle by deltaY, limited to what MaxSpeed allows in the
// elapsed time and kept inside a board of the given height. Anything under a
// millisecond counts as one millisecond so the first frame can still move.
func (p *Paddle) Move(deltaY, boardHeight float64, elapsed time.Duration) {
	ms := math.Max(1, float64(elapsed)/float64(time.Millisecond))
	maxTravel := p.MaxSpeed * ms
	if p.MaxSpeed > 0 {
		deltaY = math.Max(-maxTravel, math.Min(maxTravel, deltaY))
	}

	half := p.Height / 2
	p.Y = math.Max(half, math.Min(boardHeight-half, p.Y+deltaY))
}

func (p *Paddle) TopY() float64 {
	return p.Y - p.Height/2
}

func (p *Paddle) BottomY() float64 {
	return p.Y + p.Height/2
}

func (p *Paddle) RightX() float64 {
	return p.LeftX + p.Width
}

// CollisionLocation tests the ball against this paddle. On a hit it returns
// where along the paddle the ball struck, from -1 at the bottom edge through
// 0 at the center to +1 at the top edge. Balls moving away from the paddle
// never collide, which keeps a ball from being caught inside it.
func (p *Paddle) CollisionLocation(b *Ball) (float64, bool) {
	switch p.Side {
	case SideLeft:
		if b.MovingRight() || b.X-b.Radius > p.RightX() || b.X < p.LeftX {
			return 0, false
		}
	case SideRight:
		if !b.MovingRight() || b.X+b.Radius < p.LeftX || b.X > p.RightX() {
			return 0, false
		}
	default:
		return 0, false
	}

	if b.Y+b.Radius < p.TopY() || b.Y-b.Radius > p.BottomY() {
		return 0, false
	}

	loc := (p.Y - b.Y) / (p.Height / 2)
	return math.Max(-1, math.Min(1, loc)), true
}

func (p *Paddle) Rect() Rect {
	return Rect{
		LeftX:   p.LeftX,
		TopY:    p.TopY(),
		RightX:  p.RightX(),
		BottomY: p.BottomY(),
		Color:   p.Color,
	}
}
