package main

import (
	"fmt"
	"os"

	"github.com/diegok/pongish/internal/app"
	"github.com/diegok/pongish/internal/config"
)

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	application := app.NewApp(cfg)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  pongish [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --computer <who>         Computer paddles: none, left, right, both (default: right)")
	fmt.Fprintln(os.Stderr, "  --width <px>             Board width (default: 1000)")
	fmt.Fprintln(os.Stderr, "  --height <px>            Board height (default: 600)")
	fmt.Fprintln(os.Stderr, "  --background <#RRGGBB>   Background color")
	fmt.Fprintln(os.Stderr, "  --pause <duration>       Pause after a point (default: 2.5s)")
	fmt.Fprintln(os.Stderr, "  --max-frame-delta <d>    Largest time step per frame (default: 100ms)")
	fmt.Fprintln(os.Stderr, "  --frame-interval <d>     Time between drawn frames (default: 16ms)")
	fmt.Fprintln(os.Stderr, "  --snapshot <file>        Restore the session from file and save it on exit")
	fmt.Fprintln(os.Stderr, "  --config <file>          YAML configuration file")
	fmt.Fprintln(os.Stderr, "  --debug                  Write logs to logs/pongish.log")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Controls:")
	fmt.Fprintln(os.Stderr, "  W/S moves the left paddle, Up/Down the right one, q or Esc quits")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  pongish --computer none")
	fmt.Fprintln(os.Stderr, "  pongish --computer both --snapshot ~/.pongish.gob")
}
