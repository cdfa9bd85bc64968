package game

// The types below are value copies handed to renderers. Mutating them has no
// effect on the scene.

// Circle is a ball as seen by a renderer.
type Circle struct {
	CenterX, CenterY float64
	Radius           float64
	Color            Color
}

// Rect is a paddle as seen by a renderer.
type Rect struct {
	LeftX, TopY     float64
	RightX, BottomY float64
	Color           Color
}

// Line is a vertical line as seen by a renderer.
type Line struct {
	X             float64
	TopY, BottomY float64
	Color         Color
	Dashed        bool
}

// ScoreLabel is a score total as seen by a renderer.
type ScoreLabel struct {
	Text     string
	X, Y     float64
	TextSize float64
	Color    Color
	OnLeft   bool
}
