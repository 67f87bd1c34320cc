// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// DirtyRect represents a region of output pixels that needs redraw.
// Coordinates are in output (screen) space and may be fractional.
type DirtyRect struct {
	X, Y, Width, Height float64
}

// BoxAround returns the square region of side 2*radius centered on center.
func BoxAround(center gg.Point, radius float64) DirtyRect {
	return DirtyRect{
		X:      center.X - radius,
		Y:      center.Y - radius,
		Width:  2 * radius,
		Height: 2 * radius,
	}
}

// Empty reports whether the rect covers no area.
func (r DirtyRect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the center of the rect.
func (r DirtyRect) Center() gg.Point {
	return gg.Pt(r.X+r.Width/2, r.Y+r.Height/2)
}

// Rect returns the smallest integer rectangle containing r.
func (r DirtyRect) Rect() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)),
		int(math.Ceil(r.Y+r.Height)),
	)
}

// Translate returns r moved by d.
func (r DirtyRect) Translate(d gg.Point) DirtyRect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// maxDirtyRects is the threshold after which Damage switches to full redraw.
// When more than this many rects accumulate, it's cheaper to redraw everything.
const maxDirtyRects = 16

// Damage accumulates dirty regions for one composition pass.
//
// The zero value is ready to use and switches to full redraw after
// 16 rects. Damage is not safe for concurrent use.
type Damage struct {
	rects      []DirtyRect
	fullRedraw bool
	limit      int
}

// NewDamage creates a Damage list that switches to full redraw once more
// than limit rects are accumulated. A limit <= 0 selects the default.
func NewDamage(limit int) *Damage {
	if limit <= 0 {
		limit = maxDirtyRects
	}
	return &Damage{
		rects: make([]DirtyRect, 0, limit),
		limit: limit,
	}
}

// Invalidate marks a rectangular region as needing redraw.
// Rects with non-positive dimensions are ignored. If the accumulated rects
// exceed the limit, the list switches to full redraw mode.
func (d *Damage) Invalidate(rect DirtyRect) {
	if d.fullRedraw {
		return
	}
	if rect.Empty() {
		return
	}

	d.rects = append(d.rects, rect)

	limit := d.limit
	if limit <= 0 {
		limit = maxDirtyRects
	}
	if len(d.rects) > limit {
		d.fullRedraw = true
		d.rects = d.rects[:0]
	}
}

// InvalidateAll forces a full redraw on the next pass.
func (d *Damage) InvalidateAll() {
	d.fullRedraw = true
	d.rects = d.rects[:0]
}

// DirtyRects returns the accumulated dirty rectangles.
// Returns nil in full redraw mode (check NeedsFullRedraw first).
// The returned slice should not be modified by the caller.
func (d *Damage) DirtyRects() []DirtyRect {
	if d.fullRedraw {
		return nil
	}
	return d.rects
}

// Clear resets the damage state after a pass.
func (d *Damage) Clear() {
	d.rects = d.rects[:0]
	d.fullRedraw = false
}

// NeedsFullRedraw returns true if the whole output must be redrawn.
func (d *Damage) NeedsFullRedraw() bool {
	return d.fullRedraw
}

// HasDirtyRegions returns true if there is anything to redraw.
func (d *Damage) HasDirtyRegions() bool {
	return d.fullRedraw || len(d.rects) > 0
}

// Mask returns the pixel rectangles covered by the damage, clipped to bounds.
// In full redraw mode the result is bounds itself.
func (d *Damage) Mask(bounds image.Rectangle) []image.Rectangle {
	if d.fullRedraw {
		return []image.Rectangle{bounds}
	}
	out := make([]image.Rectangle, 0, len(d.rects))
	for _, r := range d.rects {
		clip := r.Rect().Intersect(bounds)
		if !clip.Empty() {
			out = append(out, clip)
		}
	}
	return out
}
