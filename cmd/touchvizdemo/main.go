// Command touchvizdemo replays a touch gesture through the software host
// and writes every presented frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/gogpu/touchviz"
	"github.com/gogpu/touchviz/internal/config"
	"github.com/gogpu/touchviz/render"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file (default: built-in swipe)")
		output     = flag.String("output", "", "output directory (overrides demo.output)")
		frames     = flag.Int("frames", 0, "number of frames to compose (overrides demo.frames)")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		touchviz.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *output != "" {
		cfg.Demo.Output = *output
	}
	if *frames > 0 {
		cfg.Demo.Frames = *frames
	}

	n, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %d frames to %s\n", n, cfg.Demo.Output)
}

// run replays cfg's script and returns the number of frames written.
func run(cfg config.Config) (int, error) {
	if err := os.MkdirAll(cfg.Demo.Output, 0o750); err != nil {
		return 0, err
	}

	host, err := render.NewSoftwareHost(cfg.SoftwareHost())
	if err != nil {
		return 0, err
	}
	v, err := touchviz.New(host, cfg.Options()...)
	if err != nil {
		return 0, err
	}
	defer func() { _ = v.Close() }()

	for f := 0; f < cfg.Demo.Frames; f++ {
		for _, ev := range cfg.EventsAt(f) {
			deliver(v, ev)
		}
		img := host.Compose(v)

		path := filepath.Join(cfg.Demo.Output, fmt.Sprintf("frame_%03d.png", f))
		if err := gg.FromImage(img).SavePNG(path); err != nil {
			return f, fmt.Errorf("save %s: %w", path, err)
		}
	}
	return cfg.Demo.Frames, nil
}

// deliver sends one scripted event. Protocol errors are logged by touchviz
// and do not stop the replay.
func deliver(v *touchviz.Visualizer, ev config.Event) {
	pos := gg.Pt(ev.X, ev.Y)
	switch ev.Kind {
	case "down":
		_ = v.OnTouchDown(touchviz.TouchDownEvent{ID: ev.ID, Pos: pos})
	case "motion":
		_ = v.OnTouchMotion(touchviz.TouchMotionEvent{ID: ev.ID, Pos: pos})
	case "up":
		_ = v.OnTouchUp(touchviz.TouchUpEvent{ID: ev.ID})
	}
}
