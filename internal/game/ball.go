package game

import (
	"math"
	"math/rand"
	"time"
)

const (
	// Launch directions are kept at least this far from vertical so a fresh
	// ball always makes progress toward one of the paddles.
	MinLaunchAngle = 45.0
	MaxLaunchAngle = 135.0
)

// Ball is a moving circle. Direction is in degrees measured clockwise from
// straight up: 90 travels right, -90 travels left, and values near 0 or 180
// travel mostly vertically. Speed is in pixels per millisecond.
type Ball struct {
	X, Y      float64
	Radius    float64
	Direction float64
	Speed     float64
	Color     Color
	Bonus     bool
}

func NewBall(x, y, radius, speed float64, color Color, bonus bool) *Ball {
	return &Ball{
		X:         x,
		Y:         y,
		Radius:    radius,
		Direction: 90,
		Speed:     speed,
		Color:     color,
		Bonus:     bonus,
	}
}

// Launch points the ball in a random direction toward either side.
func (b *Ball) Launch(rng *rand.Rand) {
	angle := MinLaunchAngle + rng.Float64()*(MaxLaunchAngle-MinLaunchAngle)
	if rng.Intn(2) == 0 {
		angle = -angle
	}
	b.Direction = angle
}

// Velocity returns the per-millisecond displacement along each axis.
func (b *Ball) Velocity() (vx, vy float64) {
	rad := b.Direction * math.Pi / 180
	return b.Speed * math.Sin(rad), -b.Speed * math.Cos(rad)
}

// MovingRight reports whether the ball is heading toward the right side.
func (b *Ball) MovingRight() bool {
	return b.Direction > 0
}

// Move advances the ball by elapsed time and bounces it off the top and
// bottom walls of a board of the given height.
func (b *Ball) Move(elapsed time.Duration, boardHeight float64) {
	ms := float64(elapsed) / float64(time.Millisecond)
	vx, vy := b.Velocity()
	b.X += vx * ms
	b.Y += vy * ms

	if b.Y-b.Radius < 0 {
		b.Y = 2*b.Radius - b.Y
		if vy < 0 {
			b.BounceVertical()
		}
	} else if b.Y+b.Radius > boardHeight {
		b.Y = 2*(boardHeight-b.Radius) - b.Y
		if vy > 0 {
			b.BounceVertical()
		}
	}

	// A reflection can still overshoot on a very long step.
	b.Y = math.Max(0, math.Min(boardHeight, b.Y))
}

// BounceVertical reverses the vertical component of the direction and keeps
// the horizontal one.
func (b *Ball) BounceVertical() {
	if b.Direction >= 0 {
		b.Direction = 180 - b.Direction
	} else {
		b.Direction = -180 - b.Direction
	}
}

// SetDirection replaces the direction, in degrees.
func (b *Ball) SetDirection(deg float64) {
	b.Direction = deg
}

// ChangeSpeed adjusts speed by a fraction of the current speed, so 0.04
// makes the ball 4% faster.
func (b *Ball) ChangeSpeed(fraction float64) {
	if fraction <= -1 {
		return
	}
	b.Speed += b.Speed * fraction
}

// CheckIfPointScored reports whether the ball's center has crossed either
// end of a board that starts at margin and spans boardWidth.
func (b *Ball) CheckIfPointScored(boardWidth, margin float64) WallHit {
	switch {
	case b.X < margin:
		return LeftWallHit
	case b.X > margin+boardWidth:
		return RightWallHit
	}
	return NoWallHit
}

func (b *Ball) Circle() Circle {
	return Circle{CenterX: b.X, CenterY: b.Y, Radius: b.Radius, Color: b.Color}
}
