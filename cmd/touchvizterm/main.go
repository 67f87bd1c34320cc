// Command touchvizterm shows touch markers in the terminal. Press and drag
// with the mouse to draw contacts; press Esc or q to quit.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/touchviz"
	"github.com/gogpu/touchviz/integration/tcellhost"
	"github.com/gogpu/touchviz/internal/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		radius     = flag.Float64("radius", 2, "marker radius in cells")
		logPath    = flag.String("log", "", "write debug log to this file")
	)
	flag.Parse()

	if err := run(*configPath, *radius, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, radius float64, logPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	cfg.Marker.Radius = radius

	if logPath != "" {
		f, err := os.Create(logPath) //nolint:gosec // path is user-provided intentionally
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		touchviz.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	host, err := tcellhost.New(screen)
	if err != nil {
		return err
	}
	v, err := touchviz.New(host, cfg.Options()...)
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := host.Run(ctx, v); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
