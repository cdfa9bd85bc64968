package ui

import (
	"math"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/diegok/pongish/internal/engine"
	"github.com/diegok/pongish/internal/game"
)

const (
	BallChar       = '\u2B24' // ⬤
	PaddleChar     = '\u2588' // █
	SolidLineChar  = '\u2502' // │
	DashedLineChar = '|'
)

// Renderer draws a scene of surfaceWidth x surfaceHeight pixels onto the
// terminal, scaling to whatever cell grid the terminal currently has.
type Renderer struct {
	screen         *Screen
	surfaceWidth   float64
	surfaceHeight  float64
	ticker         *time.Ticker
	closed         chan struct{}
	closeOnce      sync.Once
	cols, rows     int
	scaleX, scaleY float64
	background     game.Color
}

var _ engine.Renderer = (*Renderer)(nil)

// NewRenderer creates a renderer; a positive frameInterval caps the frame
// rate by making BeginDrawing wait for the next tick.
func NewRenderer(screen *Screen, surfaceWidth, surfaceHeight int, frameInterval time.Duration) *Renderer {
	r := &Renderer{
		screen:        screen,
		surfaceWidth:  float64(surfaceWidth),
		surfaceHeight: float64(surfaceHeight),
		closed:        make(chan struct{}),
		background:    game.DefaultBackgroundColor,
	}
	if frameInterval > 0 {
		r.ticker = time.NewTicker(frameInterval)
	}
	return r
}

// Close makes every later BeginDrawing fail. It is safe to call more than once.
func (r *Renderer) Close() {
	r.closeOnce.Do(func() {
		close(r.closed)
		if r.ticker != nil {
			r.ticker.Stop()
		}
	})
}

func (r *Renderer) BeginDrawing() bool {
	select {
	case <-r.closed:
		return false
	default:
	}

	if r.ticker != nil {
		select {
		case <-r.closed:
			return false
		case <-r.ticker.C:
		}
	}

	cols, rows := r.screen.Size()
	if cols <= 0 || rows <= 0 || r.surfaceWidth <= 0 || r.surfaceHeight <= 0 {
		return false
	}
	r.cols, r.rows = cols, rows
	r.scaleX = float64(cols) / r.surfaceWidth
	r.scaleY = float64(rows) / r.surfaceHeight

	r.screen.Clear()
	return true
}

func (r *Renderer) CommitDrawing() {
	r.screen.Show()
}

func (r *Renderer) DrawBackground(c game.Color) {
	r.background = c
	r.screen.FillRect(0, 0, r.cols, r.rows, Style(c, c), ' ')
}

// DrawCircle marks every cell whose center lies inside the circle, and
// always the cell holding the circle's center.
func (r *Renderer) DrawCircle(centerX, centerY, radius float64, c game.Color) {
	style := Style(c, r.background)

	x0, x1 := r.col(centerX-radius), r.col(centerX+radius)
	y0, y1 := r.row(centerY-radius), r.row(centerY+radius)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px := (float64(x) + 0.5) / r.scaleX
			py := (float64(y) + 0.5) / r.scaleY
			if math.Hypot(px-centerX, py-centerY) <= radius {
				r.screen.SetCell(x, y, style, PaddleChar)
			}
		}
	}

	cx, cy := r.col(centerX), r.row(centerY)
	if x0 == x1 && y0 == y1 {
		r.screen.SetCell(cx, cy, style, BallChar)
	} else {
		r.screen.SetCell(cx, cy, style, PaddleChar)
	}
}

func (r *Renderer) DrawRect(leftX, topY, rightX, bottomY float64, c game.Color) {
	x0, x1 := r.span(leftX, rightX, r.scaleX)
	y0, y1 := r.span(topY, bottomY, r.scaleY)
	r.screen.FillRect(x0, y0, x1-x0+1, y1-y0+1, Style(c, r.background), PaddleChar)
}

func (r *Renderer) DrawVerticalLine(x, topY, bottomY float64, c game.Color, dashed bool) {
	col := r.col(x)
	y0, y1 := r.span(topY, bottomY, r.scaleY)
	style := Style(c, r.background)
	if dashed {
		r.screen.DrawVerticalLine(col, y0, y1, 2, style, DashedLineChar)
		return
	}
	r.screen.DrawVerticalLine(col, y0, y1, 1, style, SolidLineChar)
}

// DrawText places text with its top at y. Text is a single cell tall so size
// is ignored.
func (r *Renderer) DrawText(text string, x, y, size float64, c game.Color, align engine.Align) {
	col := r.col(x)
	switch n := utf8.RuneCountInString(text); align {
	case engine.AlignRight:
		col -= n
	case engine.AlignCenter:
		col -= n / 2
	}
	r.screen.DrawText(col, r.row(y), text, Style(c, r.background))
}

func (r *Renderer) col(x float64) int {
	return int(math.Floor(x * r.scaleX))
}

func (r *Renderer) row(y float64) int {
	return int(math.Floor(y * r.scaleY))
}

// span converts a pixel range to an inclusive cell range at least one cell wide.
func (r *Renderer) span(from, to, scale float64) (int, int) {
	first := int(math.Floor(from * scale))
	last := int(math.Ceil(to*scale)) - 1
	if last < first {
		last = first
	}
	return first, last
}
