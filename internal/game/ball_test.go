package game

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestBall_MoveHorizontal(t *testing.T) {
	ball := NewBall(10.0, 20.0, 2, 0.5, ColorWhite, false)
	ball.Direction = 90

	ball.Move(10*time.Millisecond, 100)

	if !approxEqual(ball.X, 15.0) {
		t.Errorf("expected X=15.0, got %f", ball.X)
	}
	if !approxEqual(ball.Y, 20.0) {
		t.Errorf("expected Y=20.0, got %f", ball.Y)
	}
}

func TestBall_MoveLeftAndUp(t *testing.T) {
	ball := NewBall(50.0, 50.0, 2, 1.0, ColorWhite, false)
	ball.Direction = -45

	ball.Move(10*time.Millisecond, 100)

	d := 10 * math.Sqrt2 / 2
	if !approxEqual(ball.X, 50-d) {
		t.Errorf("expected X=%f, got %f", 50-d, ball.X)
	}
	if !approxEqual(ball.Y, 50-d) {
		t.Errorf("expected Y=%f, got %f", 50-d, ball.Y)
	}
}

func TestBall_MoveZeroElapsed(t *testing.T) {
	ball := NewBall(10.0, 20.0, 2, 0.5, ColorWhite, false)
	ball.Move(0, 100)

	if ball.X != 10.0 || ball.Y != 20.0 {
		t.Errorf("expected ball to stay at (10,20), got (%f,%f)", ball.X, ball.Y)
	}
}

func TestBall_BounceTopWall(t *testing.T) {
	ball := NewBall(50, 12, 5, 1.0, ColorWhite, false)
	ball.Direction = 30

	ball.Move(10*time.Millisecond, 100)

	if !approxEqual(ball.Direction, 150) {
		t.Errorf("expected direction 150 after top bounce, got %f", ball.Direction)
	}
	if ball.Y < ball.Radius {
		t.Errorf("expected ball reflected inside board, Y=%f", ball.Y)
	}
	wantY := 2*5 - (12 - 10*math.Cos(math.Pi/6))
	if !approxEqual(ball.Y, wantY) {
		t.Errorf("expected Y=%f, got %f", wantY, ball.Y)
	}
}

func TestBall_BounceBottomWall(t *testing.T) {
	ball := NewBall(50, 90, 5, 1.0, ColorWhite, false)
	ball.Direction = -150

	ball.Move(10*time.Millisecond, 100)

	if !approxEqual(ball.Direction, -30) {
		t.Errorf("expected direction -30 after bottom bounce, got %f", ball.Direction)
	}
	if ball.Y > 100-ball.Radius {
		t.Errorf("expected ball reflected inside board, Y=%f", ball.Y)
	}
}

func TestBall_StaysInsideBoardOnLongStep(t *testing.T) {
	ball := NewBall(50, 50, 5, 1.0, ColorWhite, false)
	ball.Direction = 0

	ball.Move(time.Second, 100)

	if ball.Y < 0 || ball.Y > 100 {
		t.Errorf("expected Y within [0,100], got %f", ball.Y)
	}
}

func TestBall_BounceVertical(t *testing.T) {
	tests := []struct {
		dir  float64
		want float64
	}{
		{10, 170},
		{170, 10},
		{90, 90},
		{-10, -170},
		{-120, -60},
	}

	for _, tt := range tests {
		ball := NewBall(0, 0, 1, 1, ColorWhite, false)
		ball.Direction = tt.dir
		ball.BounceVertical()
		if !approxEqual(ball.Direction, tt.want) {
			t.Errorf("BounceVertical(%f) = %f, want %f", tt.dir, ball.Direction, tt.want)
		}
	}
}

func TestBall_ChangeSpeedCompounds(t *testing.T) {
	ball := NewBall(0, 0, 1, 0.4, ColorWhite, false)

	for n := 1; n <= 25; n++ {
		ball.ChangeSpeed(SpeedIncreaseOnHit)
		want := 0.4 * math.Pow(1+SpeedIncreaseOnHit, float64(n))
		if math.Abs(ball.Speed-want) > epsilon {
			t.Fatalf("after %d hits expected speed %f, got %f", n, want, ball.Speed)
		}
	}
}

func TestBall_ChangeSpeedKeepsPositive(t *testing.T) {
	ball := NewBall(0, 0, 1, 0.4, ColorWhite, false)
	ball.ChangeSpeed(-1)

	if ball.Speed <= 0 {
		t.Errorf("expected speed to stay positive, got %f", ball.Speed)
	}
}

func TestBall_CheckIfPointScored(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want WallHit
	}{
		{"inside", 50, NoWallHit},
		{"on left edge", 10, NoWallHit},
		{"on right edge", 90, NoWallHit},
		{"past left edge", 9.5, LeftWallHit},
		{"past right edge", 90.5, RightWallHit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ball := NewBall(tt.x, 50, 2, 1, ColorWhite, false)
			if got := ball.CheckIfPointScored(80, 10); got != tt.want {
				t.Errorf("CheckIfPointScored() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBall_Launch(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ball := NewBall(0, 0, 1, 1, ColorWhite, false)

	sawLeft, sawRight := false, false
	for i := 0; i < 200; i++ {
		ball.Launch(rng)
		mag := math.Abs(ball.Direction)
		if mag < MinLaunchAngle || mag > MaxLaunchAngle {
			t.Fatalf("launch direction %f outside [%f,%f]", ball.Direction, MinLaunchAngle, MaxLaunchAngle)
		}
		if ball.MovingRight() {
			sawRight = true
		} else {
			sawLeft = true
		}
	}
	if !sawLeft || !sawRight {
		t.Errorf("expected launches toward both sides, left=%v right=%v", sawLeft, sawRight)
	}
}

func TestBall_Circle(t *testing.T) {
	ball := NewBall(3, 4, 5, 1, ColorCyan, true)
	c := ball.Circle()

	if c.CenterX != 3 || c.CenterY != 4 || c.Radius != 5 || c.Color != ColorCyan {
		t.Errorf("unexpected circle view %+v", c)
	}
}
