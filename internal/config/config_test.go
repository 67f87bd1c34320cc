// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gg"
	"github.com/pelletier/go-toml/v2"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Marker.Radius != 15 {
		t.Errorf("Marker.Radius = %v, want 15", cfg.Marker.Radius)
	}
	if len(cfg.Host.Outputs) != 1 || cfg.Host.Outputs[0].Width != 320 {
		t.Errorf("Host.Outputs = %+v, want one 320 wide output", cfg.Host.Outputs)
	}
}

func TestDefaultScript(t *testing.T) {
	down := map[int32]bool{}
	for _, ev := range DefaultScript() {
		switch ev.Kind {
		case "down":
			down[ev.ID] = true
		case "motion":
			if !down[ev.ID] {
				t.Errorf("frame %d: motion for contact %d before down", ev.Frame, ev.ID)
			}
		case "up":
			if !down[ev.ID] {
				t.Errorf("frame %d: up for contact %d before down", ev.Frame, ev.ID)
			}
			delete(down, ev.ID)
		}
	}
	if len(down) != 0 {
		t.Errorf("contacts %v are never lifted", down)
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	const doc = `
[marker]
radius = 20.0
color = "#ff0000"

[tracking]
history_depth = 3
duplicate_policy = "reject"

[host]
buffers = 3

[[host.outputs]]
name = "left"
width = 100.0
height = 80.0

[[host.outputs]]
name = "right"
width = 100.0
height = 80.0
x = 100.0

[[events]]
frame = 4
kind = "up"
id = 7

[[events]]
frame = 1
kind = "down"
id = 7
x = 0.5
y = 0.5
`
	cfg, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}

	if cfg.Marker.Radius != 20 {
		t.Errorf("Marker.Radius = %v, want 20", cfg.Marker.Radius)
	}
	if cfg.Marker.Opacity != 1 {
		t.Errorf("Marker.Opacity = %v, want default 1", cfg.Marker.Opacity)
	}
	if cfg.Tracking.HistoryDepth != 3 || cfg.Tracking.DuplicatePolicy != "reject" {
		t.Errorf("Tracking = %+v", cfg.Tracking)
	}
	if !cfg.Tracking.Dedup {
		t.Error("Tracking.Dedup should keep its default")
	}
	if len(cfg.Host.Outputs) != 2 || cfg.Host.Outputs[1].X != 100 {
		t.Errorf("Host.Outputs = %+v, want the two outputs from the file", cfg.Host.Outputs)
	}
	if len(cfg.Events) != 2 {
		t.Fatalf("Events = %+v, want the two events from the file", cfg.Events)
	}
	if cfg.Events[0].Kind != "down" || cfg.Events[1].Kind != "up" {
		t.Errorf("Events not sorted by frame: %+v", cfg.Events)
	}
	if got := cfg.EventsAt(4); len(got) != 1 || got[0].ID != 7 {
		t.Errorf("EventsAt(4) = %+v", got)
	}

	host := cfg.SoftwareHost()
	if host.Buffers != 3 || len(host.Outputs) != 2 {
		t.Errorf("SoftwareHost() = %+v", host)
	}
	if host.Outputs[1].Position != gg.Pt(100, 0) {
		t.Errorf("right output position = %v, want (100,0)", host.Outputs[1].Position)
	}
	if n := len(cfg.Options()); n != 6 {
		t.Errorf("len(Options()) = %d, want 6", n)
	}
}

func TestDecodeKeepsDefaultLists(t *testing.T) {
	cfg, err := Decode(strings.NewReader("[demo]\nframes = 4\n"))
	if err != nil {
		t.Fatalf("Decode() = %v", err)
	}
	if cfg.Demo.Frames != 4 {
		t.Errorf("Demo.Frames = %d, want 4", cfg.Demo.Frames)
	}
	if len(cfg.Events) != len(DefaultScript()) {
		t.Errorf("len(Events) = %d, want the default script", len(cfg.Events))
	}
	if len(cfg.Host.Outputs) != 1 {
		t.Errorf("len(Host.Outputs) = %d, want the default output", len(cfg.Host.Outputs))
	}
}

func TestDecodeUnknownKey(t *testing.T) {
	_, err := Decode(strings.NewReader("[marker]\nradious = 3\n"))
	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		t.Errorf("Decode() = %v, want *toml.StrictMissingError", err)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"radius", "[marker]\nradius = 0.0\n"},
		{"opacity", "[marker]\nopacity = 1.5\n"},
		{"history depth", "[tracking]\nhistory_depth = 9\n"},
		{"policy", "[tracking]\nduplicate_policy = \"ignore\"\n"},
		{"buffers", "[host]\nbuffers = 0\n"},
		{"output size", "[[host.outputs]]\nname = \"x\"\nwidth = 0.0\nheight = 10.0\n"},
		{"frames", "[demo]\nframes = 0\n"},
		{"event kind", "[[events]]\nframe = 0\nkind = \"tap\"\n"},
		{"event frame", "[[events]]\nframe = -1\nkind = \"down\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.doc)); !errors.Is(err, ErrInvalid) {
				t.Errorf("Decode() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "touchviz.toml")
	if err := os.WriteFile(path, []byte("[marker]\nradius = 8.0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Marker.Radius != 8 {
		t.Errorf("Marker.Radius = %v, want 8", cfg.Marker.Radius)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want os.ErrNotExist", err)
	}
}
