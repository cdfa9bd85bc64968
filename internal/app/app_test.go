package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegok/pongish/internal/config"
	"github.com/diegok/pongish/internal/game"
	"github.com/diegok/pongish/internal/protocol"
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(100, 30)
	return sim
}

func testConfig(computer game.ComputerPaddles) *config.Config {
	cfg := config.Default()
	cfg.ComputerPaddles = computer
	cfg.FrameInterval = 5 * time.Millisecond
	return cfg
}

// startApp runs a on sim and waits until its loop is up.
func startApp(t *testing.T, a *App, sim tcell.SimulationScreen) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- a.RunOn(sim) }()

	select {
	case <-a.Ready():
	case err := <-done:
		t.Fatalf("app exited early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not start")
	}
	return done
}

func waitExit(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit")
	}
}

func TestApp_QuitKeyExits(t *testing.T) {
	sim := newSimScreen(t)
	a := NewApp(testConfig(game.ComputerRight))
	done := startApp(t, a, sim)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	waitExit(t, done)
}

func TestApp_QuitMethodExits(t *testing.T) {
	sim := newSimScreen(t)
	a := NewApp(testConfig(game.ComputerBoth))
	done := startApp(t, a, sim)

	a.Quit()
	a.Quit()
	waitExit(t, done)
}

func TestApp_KeysMoveHumanPaddle(t *testing.T) {
	sim := newSimScreen(t)
	a := NewApp(testConfig(game.ComputerNone))
	done := startApp(t, a, sim)
	defer func() {
		a.Quit()
		waitExit(t, done)
	}()

	start := a.Scene().Rectangles()[0].TopY
	require.Eventually(t, func() bool {
		sim.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
		return a.Scene().Rectangles()[0].TopY < start
	}, time.Second, 5*time.Millisecond)

	start = a.Scene().Rectangles()[1].TopY
	require.Eventually(t, func() bool {
		sim.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
		return a.Scene().Rectangles()[1].TopY > start
	}, time.Second, 5*time.Millisecond)
}

func TestApp_DrawsToScreen(t *testing.T) {
	sim := newSimScreen(t)
	a := NewApp(testConfig(game.ComputerBoth))
	done := startApp(t, a, sim)
	defer func() {
		a.Quit()
		waitExit(t, done)
	}()

	require.Eventually(t, func() bool {
		mainc, _, _, _ := sim.GetContent(4, 4)
		return mainc == 'F'
	}, time.Second, 5*time.Millisecond, "fps label should be drawn")
}

func TestApp_SavesAndRestoresSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.gob")
	cfg := testConfig(game.ComputerNone)
	cfg.SnapshotFile = path

	first := NewApp(cfg)
	done := startApp(t, first, newSimScreen(t))
	firstID := first.SessionID()
	first.Quit()
	waitExit(t, done)

	_, err := os.Stat(path)
	require.NoError(t, err, "snapshot written on exit")

	second := NewApp(cfg)
	done = startApp(t, second, newSimScreen(t))
	assert.Equal(t, firstID, second.SessionID())
	assert.False(t, second.Scene().CountdownInProgress())
	second.Quit()
	waitExit(t, done)
}

func TestApp_RestoredSessionKeepsPaddleControl(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.gob")
	saved, err := game.NewScene(config.DefaultWidth, config.DefaultHeight, game.ComputerNone)
	require.NoError(t, err)
	require.NoError(t, protocol.SaveFile(path, saved.Snapshot(), uuid.New()))

	cfg := testConfig(game.ComputerBoth)
	cfg.SnapshotFile = path
	sim := newSimScreen(t)
	a := NewApp(cfg)
	done := startApp(t, a, sim)
	defer func() {
		a.Quit()
		waitExit(t, done)
	}()

	require.Equal(t, game.ComputerNone, a.Scene().ComputerPaddles())

	start := a.Scene().Rectangles()[0].TopY
	require.Eventually(t, func() bool {
		sim.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)
		return a.Scene().Rectangles()[0].TopY < start
	}, time.Second, 5*time.Millisecond, "left paddle follows the keyboard")
}

func TestApp_IgnoresSnapshotForOtherBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.gob")
	other, err := game.NewScene(1400, 700, game.ComputerNone)
	require.NoError(t, err)
	oldID := uuid.New()
	require.NoError(t, protocol.SaveFile(path, other.Snapshot(), oldID))

	cfg := testConfig(game.ComputerNone)
	cfg.SnapshotFile = path
	a := NewApp(cfg)
	done := startApp(t, a, newSimScreen(t))

	assert.NotEqual(t, oldID, a.SessionID())
	assert.InDelta(t, 780.0, a.Scene().Board().Width, 1e-6)
	a.Quit()
	waitExit(t, done)
}

func TestApp_IgnoresCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.gob")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	cfg := testConfig(game.ComputerNone)
	cfg.SnapshotFile = path
	a := NewApp(cfg)
	done := startApp(t, a, newSimScreen(t))

	assert.NotEqual(t, uuid.Nil, a.SessionID())
	a.Quit()
	waitExit(t, done)
}
