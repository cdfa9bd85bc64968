package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/diegok/pongish/internal/config"
	"github.com/diegok/pongish/internal/engine"
	"github.com/diegok/pongish/internal/game"
	"github.com/diegok/pongish/internal/protocol"
	"github.com/diegok/pongish/internal/ui"
)

// PaddleStepFraction is how far one key press asks a paddle to move,
// relative to the board height.
const PaddleStepFraction = 0.08

// App is the main application controller that manages the game lifecycle.
type App struct {
	cfg       *config.Config
	screen    *ui.Screen
	renderer  *ui.Renderer
	scene     *game.Scene
	engine    *engine.Engine
	sessionID uuid.UUID

	ready    chan struct{}
	quit     chan struct{}
	quitOnce sync.Once
	sigChan  chan os.Signal
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *config.Config) *App {
	return &App{
		cfg:   cfg,
		ready: make(chan struct{}),
		quit:  make(chan struct{}),
	}
}

// Run is the main entry point for the application. It takes over the
// terminal until the player quits or the process is signalled.
func (a *App) Run() error {
	screen, err := ui.InitScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	return a.run(screen)
}

// RunOn is Run on an already initialized tcell screen.
func (a *App) RunOn(s tcell.Screen) error {
	return a.run(ui.NewScreen(s))
}

// Ready is closed once the loop is running and Scene and SessionID are set.
func (a *App) Ready() <-chan struct{} {
	return a.ready
}

// Quit ends Run. It is safe to call more than once.
func (a *App) Quit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

func (a *App) Scene() *game.Scene {
	return a.scene
}

func (a *App) SessionID() uuid.UUID {
	return a.sessionID
}

func (a *App) run(screen *ui.Screen) error {
	a.screen = screen

	scene, err := a.loadScene()
	if err != nil {
		a.screen.Fini()
		return err
	}
	a.scene = scene

	a.renderer = ui.NewRenderer(screen, a.cfg.Width, a.cfg.Height, a.cfg.FrameInterval)
	a.engine = engine.New(engine.Options{
		PauseAfterScore: a.cfg.PauseAfterScore,
		MaxFrameDelta:   a.cfg.MaxFrameDelta,
	})
	a.engine.SetScene(scene)
	a.engine.BindRenderer(a.renderer)

	// Setup signal handling
	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-a.sigChan:
			log.Printf("app: received %s, quitting", sig)
			a.Quit()
		case <-a.quit:
		}
	}()

	if err := a.engine.Start(); err != nil {
		a.cleanup()
		return fmt.Errorf("failed to start engine: %w", err)
	}
	close(a.ready)

	runErr := a.mainLoop()

	if err := a.cleanup(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// loadScene restores the saved session when there is a usable one and
// otherwise lays out a new game.
func (a *App) loadScene() (*game.Scene, error) {
	opts := a.cfg.SceneOptions()

	if path := a.cfg.SnapshotFile; path != "" {
		env, err := protocol.LoadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Printf("app: no snapshot at %s, starting a new session", path)
		case err != nil:
			log.Printf("app: ignoring snapshot %s: %v", path, err)
		case !a.fitsBoard(env.Scene):
			log.Printf("app: snapshot %s was saved for another board size, starting a new session", path)
		default:
			scene, err := game.RestoreScene(env.Scene, opts...)
			if err != nil {
				log.Printf("app: ignoring snapshot %s: %v", path, err)
				break
			}
			// A session saved mid-pause must not stay paused.
			scene.SetCountdownInProgress(false)
			if saved := scene.ComputerPaddles(); saved != a.cfg.ComputerPaddles {
				log.Printf("app: restored session keeps computer paddles %s, ignoring %s", saved, a.cfg.ComputerPaddles)
			}
			a.sessionID = env.SessionID
			log.Printf("app: restored session %s saved at %s", env.SessionID, env.SavedAt.Format("2006-01-02 15:04:05"))
			return scene, nil
		}
	}

	scene, err := game.NewScene(a.cfg.Width, a.cfg.Height, a.cfg.ComputerPaddles, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	a.sessionID = uuid.New()
	return scene, nil
}

func (a *App) fitsBoard(snap game.Snapshot) bool {
	width := math.Round(snap.BoardWidth + 2*snap.BoardMargin)
	return int(width) == a.cfg.Width && int(math.Round(snap.BoardHeight)) == a.cfg.Height
}

// mainLoop handles input until the player quits.
func (a *App) mainLoop() error {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			if a.handleEvent(ev) {
				a.Quit()
				return nil
			}
		}
	}
}

// handleEvent processes keyboard and other events.
// Returns true if the application should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ui.IsQuitKey(ev.Key(), ev.Rune()) {
			return true
		}
		side, dir, ok := ui.KeyToMove(ev.Key(), ev.Rune())
		if !ok || a.scene.ComputerPaddles().Controls(side) {
			return false
		}
		deltaY := dir.Sign() * PaddleStepFraction * a.scene.Board().Height
		a.scene.MovePaddle(side, deltaY, a.engine.LastFrameDuration())

	case *tcell.EventResize:
		// The renderer rescales on the next frame.
		a.screen.Sync()
	}

	return false
}

func (a *App) saveSnapshot() error {
	path := a.cfg.SnapshotFile
	if path == "" {
		return nil
	}
	if err := protocol.SaveFile(path, a.scene.Snapshot(), a.sessionID); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	log.Printf("app: saved session %s to %s", a.sessionID, path)
	return nil
}

// cleanup shuts down all resources.
func (a *App) cleanup() error {
	// Unblock a renderer waiting for its next tick before joining the loop
	a.renderer.Close()
	a.engine.Stop()
	a.engine.UnbindRenderer()

	err := a.saveSnapshot()

	a.screen.Fini()
	signal.Stop(a.sigChan)
	a.Quit()
	return err
}
