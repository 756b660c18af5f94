// Command particles-term previews the hero particle field in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/particlefield"
	"github.com/Zachkp/portfolio/termhost"
)

var (
	count   = flag.Int("count", particlefield.DefaultCount, "number of particles")
	col     = flag.String("color", particlefield.DefaultColor, "particle colour (#rrggbb or name)")
	size    = flag.Float64("size", 0.08, "point size in world units")
	rotateX = flag.Float64("rotate-x", particlefield.DefaultRotateX, "rotation speed around X")
	rotateY = flag.Float64("rotate-y", particlefield.DefaultRotateY, "rotation speed around Y")
	fps     = flag.Int("fps", 30, "refresh rate")
	logPath = flag.String("log", "", "write debug log to this file")
)

func main() {
	flag.Parse()

	c, err := particlefield.ParseColor(*col)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	cfg := particlefield.Config{
		Count:          *count,
		Color:          c,
		PointSize:      *size,
		RotationSpeedX: *rotateX,
		RotationSpeedY: *rotateY,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	if *fps <= 0 {
		*fps = 30
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the terminal belongs to tcell; logs only go to a file
	var logger logging.Logger = logging.Nop{}
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			defer f.Close()
			logger = logging.NewWriter("particles-term", true, f, f)
		}
	}

	loop := particlefield.NewLoop(particlefield.WithRefreshInterval(time.Second / time.Duration(*fps)))
	err = termhost.Run(ctx, screen, cfg, loop, particlefield.WithLogger(logger))
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
