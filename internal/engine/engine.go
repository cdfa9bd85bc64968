// Package engine runs the update/draw loop of a scene on its own goroutine.
package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diegok/pongish/internal/game"
)

const (
	DefaultPauseAfterScore = 2500 * time.Millisecond

	// countdownStep is how often the countdown is redrawn while paused.
	countdownStep = 500 * time.Millisecond

	fpsTemplate = "FPS: %d"
	fpsX        = 40
	fpsY        = 80
	fpsSize     = 40
	fpsColor    = game.ColorWhite

	countdownSize  = 120
	countdownColor = game.ColorWhite
)

var (
	ErrNoScene        = errors.New("engine has no scene")
	ErrAlreadyRunning = errors.New("engine is already running")
)

// Align positions a text label relative to its anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Renderer draws frames. BeginDrawing must succeed before any draw call and
// CommitDrawing publishes the frame.
type Renderer interface {
	BeginDrawing() bool
	CommitDrawing()
	DrawBackground(c game.Color)
	DrawCircle(centerX, centerY, radius float64, c game.Color)
	DrawRect(leftX, topY, rightX, bottomY float64, c game.Color)
	DrawVerticalLine(x, topY, bottomY float64, c game.Color, dashed bool)
	DrawText(text string, x, y, size float64, c game.Color, align Align)
}

// Scene is what the engine updates and draws. *game.Scene satisfies it.
type Scene interface {
	Update(elapsed time.Duration) bool
	ResetAfterPointScored()
	SetCountdownInProgress(inProgress bool)
	BackgroundColor() game.Color
	Circles() []game.Circle
	Rectangles() []game.Rect
	VerticalLines() []game.Line
	Scores() []game.ScoreLabel
}

// Clock measures frame durations.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// State is the loop's lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Options configures an Engine. Zero values select the defaults; a zero
// MaxFrameDelta leaves the time step unclamped.
type Options struct {
	PauseAfterScore time.Duration
	MaxFrameDelta   time.Duration
	Clock           Clock
}

// Engine owns the loop goroutine. The update for a frame always completes
// before that frame is drawn, and frames run strictly in order.
type Engine struct {
	opts Options

	// lifecycle serializes Start and Stop and guards quit and done.
	lifecycle sync.Mutex
	quit      chan struct{}
	done      chan struct{}

	mu       sync.Mutex
	renderer Renderer
	scene    Scene

	state     atomic.Int32
	lastFrame atomic.Int64
	countdown atomic.Int32
}

func New(opts Options) *Engine {
	if opts.PauseAfterScore <= 0 {
		opts.PauseAfterScore = DefaultPauseAfterScore
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	return &Engine{opts: opts}
}

func (e *Engine) BindRenderer(r Renderer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderer = r
}

func (e *Engine) UnbindRenderer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderer = nil
}

func (e *Engine) SetScene(s Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene = s
}

func (e *Engine) State() State {
	return State(e.state.Load())
}

// LastFrameDuration is how long the previous update and draw took. Input
// handlers pass it to Scene.MovePaddle.
func (e *Engine) LastFrameDuration() time.Duration {
	return time.Duration(e.lastFrame.Load())
}

func (e *Engine) current() (Scene, Renderer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene, e.renderer
}

// Start launches the loop goroutine.
func (e *Engine) Start() error {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	if scene, _ := e.current(); scene == nil {
		return ErrNoScene
	}
	if e.quit != nil {
		return ErrAlreadyRunning
	}

	e.quit = make(chan struct{})
	e.done = make(chan struct{})
	e.state.Store(int32(StateRunning))
	go e.run(e.quit, e.done)

	log.Printf("engine: loop started")
	return nil
}

// Stop asks the loop to exit and waits until it has. It is safe to call
// when the engine is not running.
func (e *Engine) Stop() {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	if e.quit == nil {
		return
	}
	close(e.quit)
	<-e.done
	e.quit, e.done = nil, nil
	log.Printf("engine: loop stopped")
}

func (e *Engine) run(quit, done chan struct{}) {
	defer close(done)
	defer e.state.Store(int32(StateIdle))

	for {
		select {
		case <-quit:
			return
		default:
		}

		scene, _ := e.current()
		if scene == nil {
			return
		}

		start := e.opts.Clock.Now()
		pointScored := scene.Update(e.frameDelta())
		e.DrawFrame()
		e.lastFrame.Store(int64(e.opts.Clock.Now().Sub(start)))

		if pointScored {
			scene.ResetAfterPointScored()
			if !e.pause(scene, quit) {
				log.Printf("engine: stopped during post-score pause")
				return
			}
		}
	}
}

// frameDelta is the previous frame's duration, clamped to MaxFrameDelta.
func (e *Engine) frameDelta() time.Duration {
	delta := e.LastFrameDuration()
	if delta < 0 {
		delta = 0
	}
	if limit := e.opts.MaxFrameDelta; limit > 0 && delta > limit {
		delta = limit
	}
	return delta
}

// pause holds the loop after a point, redrawing the countdown as it goes.
// It returns false if the engine was stopped in the meantime.
func (e *Engine) pause(scene Scene, quit <-chan struct{}) bool {
	log.Printf("engine: point scored, pausing for %s", e.opts.PauseAfterScore)

	scene.SetCountdownInProgress(true)
	e.state.Store(int32(StatePaused))
	defer func() {
		e.countdown.Store(0)
		scene.SetCountdownInProgress(false)
		e.state.Store(int32(StateRunning))
	}()

	remaining := e.opts.PauseAfterScore
	for remaining > 0 {
		e.countdown.Store(int32((remaining + time.Second - 1) / time.Second))
		e.DrawFrame()

		step := min(remaining, countdownStep)
		timer := time.NewTimer(step)
		select {
		case <-quit:
			timer.Stop()
			return false
		case <-timer.C:
		}
		remaining -= step
	}
	return true
}

// DrawFrame draws the scene once. The frame is skipped when no renderer is
// bound or the renderer cannot begin drawing.
func (e *Engine) DrawFrame() {
	scene, r := e.current()
	if scene == nil || r == nil {
		return
	}
	if !r.BeginDrawing() {
		log.Printf("engine: unable to begin drawing, frame skipped")
		return
	}

	r.DrawBackground(scene.BackgroundColor())

	for _, c := range scene.Circles() {
		r.DrawCircle(c.CenterX, c.CenterY, c.Radius, c.Color)
	}
	for _, rect := range scene.Rectangles() {
		r.DrawRect(rect.LeftX, rect.TopY, rect.RightX, rect.BottomY, rect.Color)
	}

	lines := scene.VerticalLines()
	for _, l := range lines {
		r.DrawVerticalLine(l.X, l.TopY, l.BottomY, l.Color, l.Dashed)
	}

	for _, s := range scene.Scores() {
		align := AlignLeft
		if s.OnLeft {
			align = AlignRight
		}
		r.DrawText(s.Text, s.X, s.Y, s.TextSize, s.Color, align)
	}

	if n := e.countdown.Load(); n > 0 {
		if x, y, ok := centerOf(lines); ok {
			r.DrawText(fmt.Sprintf("%d", n), x, y, countdownSize, countdownColor, AlignCenter)
		}
	}

	r.DrawText(fmt.Sprintf(fpsTemplate, e.framesPerSecond()), fpsX, fpsY, fpsSize, fpsColor, AlignLeft)

	r.CommitDrawing()
}

func (e *Engine) framesPerSecond() int64 {
	ms := e.LastFrameDuration().Milliseconds()
	if ms <= 0 {
		return 0
	}
	return 1000 / ms
}

// centerOf finds the midpoint of the dashed center line.
func centerOf(lines []game.Line) (x, y float64, ok bool) {
	for _, l := range lines {
		if l.Dashed {
			return l.X, (l.TopY + l.BottomY) / 2, true
		}
	}
	return 0, 0, false
}
