// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// DamageSink receives dirty regions for the next composition pass.
//
// DamageBox may be called many times per frame. Overlapping or duplicate
// submissions must be harmless: they may cost extra redraw work but never
// produce an incorrect image.
type DamageSink interface {
	DamageBox(box DirtyRect)
}

// FrameScheduler asks the host to schedule a new composition pass.
type FrameScheduler interface {
	ScheduleFrame()
}

// Output describes the geometry of a host output in pixels.
type Output struct {
	// Name identifies the output in logs.
	Name string

	// Size is the output's pixel size.
	Size gg.Point

	// Position is the output's top-left corner in the global layout.
	Position gg.Point
}

// Map converts a normalized point (0..1 on both axes) to output space.
func (o Output) Map(p gg.Point) gg.Point {
	return gg.Pt(p.X*o.Size.X+o.Position.X, p.Y*o.Size.Y+o.Position.Y)
}

// OutputProvider reports the currently active output.
//
// ActiveOutput is queried on every touch event because the active output
// may change between events. ok is false when no output is active.
type OutputProvider interface {
	ActiveOutput() (out Output, ok bool)
}

// TextureUploader creates host textures from CPU pixel data.
type TextureUploader interface {
	// UploadTexture creates a texture of the given size from pix, which holds
	// width*height texels laid out in format with no row padding.
	UploadTexture(pix []byte, width, height int, format gputypes.TextureFormat) (Texture, error)
}

// TextureDrawer blits textures during composition.
type TextureDrawer interface {
	// DrawTexture draws tex scaled into box at the given opacity (0..1).
	DrawTexture(tex Texture, box DirtyRect, alpha float32) error
}

// Host is the full set of primitives the overlay needs from a compositor.
//
// Thread Safety: the overlay calls Host methods from whichever goroutine
// delivers the event or frame hook. Hosts that deliver input and frames on
// different goroutines must make their own methods safe for that.
type Host interface {
	DamageSink
	FrameScheduler
	OutputProvider
	TextureUploader
	TextureDrawer
}

// FrameHooks is implemented by overlays that take part in composition.
type FrameHooks interface {
	// OnPreRender runs before composition; overlays submit damage here.
	OnPreRender()

	// OnRender runs during composition; overlays draw here.
	OnRender()
}
