// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gputypes"
)

// Framebuffer is a CPU-backed swapchain image using *image.RGBA.
//
// A Framebuffer keeps its contents between frames: only the regions a
// compositor repaints change. This is what makes stale overlay pixels
// observable when damage is missing.
type Framebuffer struct {
	img *image.RGBA

	// age is the number of frames presented since this buffer was last
	// presented, or 0 if it was never presented.
	age int
}

// NewFramebuffer creates a framebuffer of the given size, cleared to transparent.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// NewFramebufferFromImage wraps an existing *image.RGBA.
// The image is used directly without copying.
func NewFramebufferFromImage(img *image.RGBA) *Framebuffer {
	return &Framebuffer{img: img}
}

// Width returns the framebuffer width in pixels.
func (f *Framebuffer) Width() int {
	return f.img.Bounds().Dx()
}

// Height returns the framebuffer height in pixels.
func (f *Framebuffer) Height() int {
	return f.img.Bounds().Dy()
}

// Bounds returns the framebuffer bounds.
func (f *Framebuffer) Bounds() image.Rectangle {
	return f.img.Bounds()
}

// Format returns the pixel format (RGBA8).
func (f *Framebuffer) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data.
func (f *Framebuffer) Pixels() []byte {
	return f.img.Pix
}

// Stride returns the number of bytes per row.
func (f *Framebuffer) Stride() int {
	return f.img.Stride
}

// Image returns the underlying *image.RGBA.
// The returned image shares memory with the framebuffer.
func (f *Framebuffer) Image() *image.RGBA {
	return f.img
}

// Age returns the buffer age: frames presented since this buffer was last
// presented, 0 if never presented.
func (f *Framebuffer) Age() int {
	return f.age
}

// Clear fills the entire framebuffer with c.
func (f *Framebuffer) Clear(c color.Color) {
	f.Fill(f.img.Bounds(), c)
}

// Fill fills r (clipped to the bounds) with c, replacing existing pixels.
func (f *Framebuffer) Fill(r image.Rectangle, c color.Color) {
	draw.Draw(f.img, r.Intersect(f.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// CopyFrom replaces r with the same region of src.
func (f *Framebuffer) CopyFrom(src image.Image, r image.Rectangle) {
	r = r.Intersect(f.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(f.img, r, src, r.Min, draw.Src)
}

// GetPixel returns the color at the given coordinates.
func (f *Framebuffer) GetPixel(x, y int) color.RGBA {
	return f.img.RGBAAt(x, y)
}

// Snapshot returns a copy of the framebuffer contents.
func (f *Framebuffer) Snapshot() *image.RGBA {
	out := image.NewRGBA(f.img.Bounds())
	copy(out.Pix, f.img.Pix)
	return out
}

// Resize replaces the contents with a transparent image of the new size.
func (f *Framebuffer) Resize(width, height int) {
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
	f.age = 0
}
