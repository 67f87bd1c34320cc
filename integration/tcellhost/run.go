// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tcellhost

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/gogpu/touchviz"
)

// buttonContacts maps mouse buttons to touch contact ids.
var buttonContacts = []struct {
	button tcell.ButtonMask
	id     int32
}{
	{tcell.Button1, 0},
	{tcell.Button2, 1},
	{tcell.Button3, 2},
}

// pointer tracks which buttons are held and where they were last seen.
type pointer struct {
	down map[int32]bool
	x, y int
}

// Run feeds terminal mouse input to v and composes frames on request
// until Esc, Ctrl-C or q is pressed or ctx is done.
func (h *Host) Run(ctx context.Context, v *touchviz.Visualizer) error {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	defer h.screen.DisableMouse()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go h.screen.ChannelEvents(events, quit)

	p := pointer{down: make(map[int32]bool)}
	h.InvalidateAll()
	h.Compose(v)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.frames:
			h.Compose(v)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
			case *tcell.EventResize:
				h.screen.Sync()
				h.InvalidateAll()
				h.ScheduleFrame()
			case *tcell.EventMouse:
				h.handleMouse(v, &p, ev)
			}
		}
	}
}

// handleMouse turns one mouse event into touch events.
func (h *Host) handleMouse(v *touchviz.Visualizer, p *pointer, ev *tcell.EventMouse) {
	x, y := ev.Position()
	moved := x != p.x || y != p.y
	p.x, p.y = x, y

	out, ok := h.ActiveOutput()
	if !ok {
		return
	}
	// Cell centers, normalized to the terminal.
	pos := gg.Pt((float64(x)+0.5)/out.Size.X, (float64(y)+0.5)/out.Size.Y)

	buttons := ev.Buttons()
	for _, bc := range buttonContacts {
		pressed := buttons&bc.button != 0
		switch {
		case pressed && !p.down[bc.id]:
			p.down[bc.id] = true
			_ = v.OnTouchDown(touchviz.TouchDownEvent{ID: bc.id, Pos: pos})
		case pressed && moved:
			_ = v.OnTouchMotion(touchviz.TouchMotionEvent{ID: bc.id, Pos: pos})
		case !pressed && p.down[bc.id]:
			delete(p.down, bc.id)
			_ = v.OnTouchUp(touchviz.TouchUpEvent{ID: bc.id})
		}
	}
}
