package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/diegok/pongish/internal/game"
)

// Default values for configuration
const (
	DefaultWidth           = 1000
	DefaultHeight          = 600
	DefaultComputerPaddles = game.ComputerRight
	DefaultMaxFrameDelta   = 100 * time.Millisecond
	DefaultPauseAfterScore = 2500 * time.Millisecond
	DefaultFrameInterval   = 16 * time.Millisecond

	MinBoardSize = 100
)

// Config holds the application configuration
type Config struct {
	Width           int
	Height          int
	ComputerPaddles game.ComputerPaddles
	Background      string
	MaxFrameDelta   time.Duration
	PauseAfterScore time.Duration
	FrameInterval   time.Duration
	SnapshotFile    string
	Debug           bool
	ConfigFile      string
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		ComputerPaddles: DefaultComputerPaddles,
		MaxFrameDelta:   DefaultMaxFrameDelta,
		PauseAfterScore: DefaultPauseAfterScore,
		FrameInterval:   DefaultFrameInterval,
	}
}

// ParseArgs parses command line arguments and returns a Config. Values from
// --config are applied over the defaults, and flags given explicitly win
// over both.
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("pongish", flag.ContinueOnError)

	width := fs.Int("width", DefaultWidth, "board width in pixels (>=100)")
	height := fs.Int("height", DefaultHeight, "board height in pixels (>=100)")
	computer := fs.String("computer", DefaultComputerPaddles.String(), "computer controlled paddles: none, left, right or both")
	background := fs.String("background", "", "background color as #RRGGBB")
	maxDelta := fs.Duration("max-frame-delta", DefaultMaxFrameDelta, "largest time step per frame, 0 disables the clamp")
	pause := fs.Duration("pause", DefaultPauseAfterScore, "pause after a point is scored")
	frame := fs.Duration("frame-interval", DefaultFrameInterval, "minimum time between drawn frames")
	snapshot := fs.String("snapshot", "", "file to restore the session from and save it to on exit")
	debug := fs.Bool("debug", false, "write debug logs to logs/pongish.log")
	configFile := fs.String("config", "", "YAML configuration file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := Default()
	if *configFile != "" {
		if err := LoadFile(*configFile, cfg); err != nil {
			return nil, err
		}
		cfg.ConfigFile = *configFile
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "computer":
			cfg.ComputerPaddles, err = game.ParseComputerPaddles(*computer)
		case "background":
			cfg.Background = *background
		case "max-frame-delta":
			cfg.MaxFrameDelta = *maxDelta
		case "pause":
			cfg.PauseAfterScore = *pause
		case "frame-interval":
			cfg.FrameInterval = *frame
		case "snapshot":
			cfg.SnapshotFile = *snapshot
		case "debug":
			cfg.Debug = *debug
		}
	})
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field for a usable value.
func (c *Config) Validate() error {
	if c.Width < MinBoardSize || c.Height < MinBoardSize {
		return fmt.Errorf("board must be at least %dx%d, got %dx%d", MinBoardSize, MinBoardSize, c.Width, c.Height)
	}
	if !c.ComputerPaddles.Valid() {
		return fmt.Errorf("%w, got %d", game.ErrUnknownComputerPaddles, int(c.ComputerPaddles))
	}
	if c.Background != "" {
		if _, err := ParseColor(c.Background); err != nil {
			return err
		}
	}
	if c.MaxFrameDelta < 0 {
		return fmt.Errorf("max frame delta cannot be negative, got %s", c.MaxFrameDelta)
	}
	if c.PauseAfterScore <= 0 {
		return fmt.Errorf("pause must be positive, got %s", c.PauseAfterScore)
	}
	if c.FrameInterval < 0 {
		return errors.New("frame interval cannot be negative")
	}
	return nil
}

// SceneOptions turns the configuration into options for game.NewScene.
func (c *Config) SceneOptions() []game.Option {
	var opts []game.Option
	if c.Background != "" {
		if bg, err := ParseColor(c.Background); err == nil {
			opts = append(opts, game.WithBackground(bg))
		}
	}
	return opts
}

// ParseColor parses a "#RRGGBB" string into an opaque game color.
func ParseColor(s string) (game.Color, error) {
	s = strings.TrimSpace(s)
	if len(s) != len("#RRGGBB") {
		return 0, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return game.Color(0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)), nil
}

// fileConfig mirrors Config for YAML files; nil fields keep their value.
type fileConfig struct {
	Width           *int    `yaml:"width"`
	Height          *int    `yaml:"height"`
	ComputerPaddles *string `yaml:"computerPaddles"`
	Background      *string `yaml:"background"`
	MaxFrameDelta   *string `yaml:"maxFrameDelta"`
	PauseAfterScore *string `yaml:"pauseAfterScore"`
	FrameInterval   *string `yaml:"frameInterval"`
	SnapshotFile    *string `yaml:"snapshotFile"`
	Debug           *bool   `yaml:"debug"`
}

// LoadFile applies the settings found in a YAML file to cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.UnmarshalWithOptions(data, &fc, yaml.DisallowUnknownField()); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Width != nil {
		cfg.Width = *fc.Width
	}
	if fc.Height != nil {
		cfg.Height = *fc.Height
	}
	if fc.ComputerPaddles != nil {
		if cfg.ComputerPaddles, err = game.ParseComputerPaddles(*fc.ComputerPaddles); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	}
	if fc.Background != nil {
		cfg.Background = *fc.Background
	}
	durations := []struct {
		name string
		raw  *string
		dst  *time.Duration
	}{
		{"maxFrameDelta", fc.MaxFrameDelta, &cfg.MaxFrameDelta},
		{"pauseAfterScore", fc.PauseAfterScore, &cfg.PauseAfterScore},
		{"frameInterval", fc.FrameInterval, &cfg.FrameInterval},
	}
	for _, d := range durations {
		if d.raw == nil {
			continue
		}
		if *d.dst, err = time.ParseDuration(*d.raw); err != nil {
			return fmt.Errorf("config %s: %s: %w", path, d.name, err)
		}
	}
	if fc.SnapshotFile != nil {
		cfg.SnapshotFile = *fc.SnapshotFile
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
	return nil
}
