// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the compositor primitives a touchviz overlay needs
// and provides a CPU compositor implementing them.
//
// # Key Principle
//
// The overlay RECEIVES every resource from the host compositor, it does NOT
// create its own. The host owns the outputs, the swapchain and the GPU
// device; the overlay only submits damage, uploads one texture and draws it.
//
// # Core Interfaces
//
//   - DamageSink: accepts dirty regions for the next composition pass
//   - FrameScheduler: requests a composition pass
//   - OutputProvider: reports the active output's geometry
//   - TextureUploader, TextureDrawer: create and blit the marker texture
//   - Host: all of the above
//   - FrameHooks: the pre-render and render callbacks an overlay implements
//   - DeviceHandleProvider: optional, exposes the host's GPU device
//
// # Damage
//
// DirtyRect is a region in output pixels. Damage accumulates the rects of
// one pass and switches to a full redraw once too many accumulate.
//
// # Software Host
//
// SoftwareHost composes on the CPU into a swapchain of Framebuffers that
// keep their pixels between frames. Each pass repaints only the damaged
// regions, either of the current frame or, with buffer age enabled, of
// every frame since the back buffer was last shown:
//
//	host, _ := render.NewSoftwareHost(render.SoftwareHostConfig{
//	    Outputs: []render.Output{{Name: "screen", Size: gg.Pt(320, 200)}},
//	    Buffers: 2,
//	})
//	v, _ := touchviz.New(host)
//	img := host.Compose(v)
//
// Draws are clipped to the repainted regions, so an overlay that damages
// too little leaves stale pixels in the presented image.
//
// # Thread Safety
//
// SoftwareHost methods are safe for concurrent use, except that Compose
// must not be called from more than one goroutine at a time. Damage and
// Framebuffer are not safe for concurrent use.
package render
