// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the TOML configuration of the touchviz commands.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gogpu/gg"
	"github.com/gogpu/touchviz"
	"github.com/gogpu/touchviz/render"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the full command configuration.
type Config struct {
	Marker   Marker   `toml:"marker"`
	Tracking Tracking `toml:"tracking"`
	Host     Host     `toml:"host"`
	Demo     Demo     `toml:"demo"`
	Events   []Event  `toml:"events"`
}

// Marker configures the marker sprite.
type Marker struct {
	Radius  float64 `toml:"radius"`
	Color   string  `toml:"color"`
	Opacity float32 `toml:"opacity"`
}

// Tracking configures damage tracking.
type Tracking struct {
	HistoryDepth    int    `toml:"history_depth"`
	DuplicatePolicy string `toml:"duplicate_policy"`
	Dedup           bool   `toml:"dedup"`
}

// Host configures the software host used by the demo.
type Host struct {
	Buffers    int      `toml:"buffers"`
	BufferAge  bool     `toml:"buffer_age"`
	Background string   `toml:"background"`
	Outputs    []Output `toml:"outputs"`
}

// Output is one output of the software host.
type Output struct {
	Name   string  `toml:"name"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
}

// Demo configures the gesture replay.
type Demo struct {
	Frames int    `toml:"frames"`
	Output string `toml:"output"`
}

// Event is one scripted touch event, delivered before frame Frame is composed.
type Event struct {
	Frame int     `toml:"frame"`
	Kind  string  `toml:"kind"` // "down", "motion" or "up"
	ID    int32   `toml:"id"`
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
}

// Default returns the built-in configuration: a 320x200 output and a
// two-finger swipe.
func Default() Config {
	return Config{
		Marker: Marker{
			Radius:  touchviz.DefaultRadius,
			Color:   "#cccc1a99",
			Opacity: 1,
		},
		Tracking: Tracking{
			HistoryDepth:    touchviz.DefaultHistoryDepth,
			DuplicatePolicy: touchviz.DuplicateReset.String(),
			Dedup:           true,
		},
		Host: Host{
			Buffers:    2,
			Background: "#1e1e28",
			Outputs:    []Output{{Name: "virtual-1", Width: 320, Height: 200}},
		},
		Demo: Demo{
			Frames: 16,
			Output: "frames",
		},
		Events: DefaultScript(),
	}
}

// DefaultScript is a two-finger left-to-right swipe.
func DefaultScript() []Event {
	events := []Event{
		{Frame: 0, Kind: "down", ID: 1, X: 0.15, Y: 0.3},
		{Frame: 2, Kind: "down", ID: 2, X: 0.15, Y: 0.7},
	}
	for f := 1; f <= 8; f++ {
		x := 0.15 + 0.7*float64(f)/8
		events = append(events, Event{Frame: f, Kind: "motion", ID: 1, X: x, Y: 0.3})
		if f >= 3 {
			events = append(events, Event{Frame: f, Kind: "motion", ID: 2, X: x - 0.1, Y: 0.7})
		}
	}
	return append(events,
		Event{Frame: 10, Kind: "up", ID: 1},
		Event{Frame: 12, Kind: "up", ID: 2},
	)
}

// Load reads the file at path over the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
// Events and outputs set by the file replace the defaults.
func Decode(r io.Reader) (Config, error) {
	base := Default()
	cfg := base
	cfg.Events = nil
	cfg.Host.Outputs = nil

	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Events == nil {
		cfg.Events = base.Events
	}
	if cfg.Host.Outputs == nil {
		cfg.Host.Outputs = base.Host.Outputs
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and event kinds and sorts events by frame.
func (c *Config) Validate() error {
	if c.Marker.Radius <= 0 {
		return fmt.Errorf("%w: marker.radius must be positive, got %v", ErrInvalid, c.Marker.Radius)
	}
	if c.Marker.Opacity < 0 || c.Marker.Opacity > 1 {
		return fmt.Errorf("%w: marker.opacity must be in [0, 1], got %v", ErrInvalid, c.Marker.Opacity)
	}
	if d := c.Tracking.HistoryDepth; d < 0 || d > touchviz.MaxHistoryDepth {
		return fmt.Errorf("%w: tracking.history_depth must be in [0, %d], got %d",
			ErrInvalid, touchviz.MaxHistoryDepth, d)
	}
	if _, ok := touchviz.ParseDuplicatePolicy(c.Tracking.DuplicatePolicy); !ok {
		return fmt.Errorf("%w: unknown tracking.duplicate_policy %q", ErrInvalid, c.Tracking.DuplicatePolicy)
	}
	if c.Host.Buffers < 1 {
		return fmt.Errorf("%w: host.buffers must be at least 1, got %d", ErrInvalid, c.Host.Buffers)
	}
	if len(c.Host.Outputs) == 0 {
		return fmt.Errorf("%w: host.outputs is empty", ErrInvalid)
	}
	for i, o := range c.Host.Outputs {
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("%w: host.outputs[%d] has size %vx%v", ErrInvalid, i, o.Width, o.Height)
		}
	}
	if c.Demo.Frames < 1 {
		return fmt.Errorf("%w: demo.frames must be at least 1, got %d", ErrInvalid, c.Demo.Frames)
	}
	for i, ev := range c.Events {
		switch ev.Kind {
		case "down", "motion", "up":
		default:
			return fmt.Errorf("%w: events[%d] has unknown kind %q", ErrInvalid, i, ev.Kind)
		}
		if ev.Frame < 0 {
			return fmt.Errorf("%w: events[%d] has negative frame %d", ErrInvalid, i, ev.Frame)
		}
	}
	sort.SliceStable(c.Events, func(i, j int) bool { return c.Events[i].Frame < c.Events[j].Frame })
	return nil
}

// Options returns the visualizer options for the configuration.
func (c *Config) Options() []touchviz.Option {
	policy, _ := touchviz.ParseDuplicatePolicy(c.Tracking.DuplicatePolicy)
	return []touchviz.Option{
		touchviz.WithRadius(c.Marker.Radius),
		touchviz.WithColor(gg.Hex(c.Marker.Color)),
		touchviz.WithOpacity(c.Marker.Opacity),
		touchviz.WithHistoryDepth(c.Tracking.HistoryDepth),
		touchviz.WithDuplicatePolicy(policy),
		touchviz.WithDedup(c.Tracking.Dedup),
	}
}

// SoftwareHost returns the software host configuration.
func (c *Config) SoftwareHost() render.SoftwareHostConfig {
	outputs := make([]render.Output, len(c.Host.Outputs))
	for i, o := range c.Host.Outputs {
		outputs[i] = render.Output{
			Name:     o.Name,
			Size:     gg.Pt(o.Width, o.Height),
			Position: gg.Pt(o.X, o.Y),
		}
	}
	return render.SoftwareHostConfig{
		Outputs:      outputs,
		Buffers:      c.Host.Buffers,
		UseBufferAge: c.Host.BufferAge,
		Background:   gg.Hex(c.Host.Background).Color(),
	}
}

// EventsAt returns the scripted events for frame f.
func (c *Config) EventsAt(f int) []Event {
	var out []Event
	for _, ev := range c.Events {
		if ev.Frame == f {
			out = append(out, ev)
		}
	}
	return out
}
