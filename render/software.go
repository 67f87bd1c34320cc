// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// Software host errors.
var (
	// ErrNoOutputs is returned when a SoftwareHost is configured without outputs.
	ErrNoOutputs = errors.New("render: software host needs at least one output")

	// ErrInvalidTexture is returned when texture data does not match its size or format.
	ErrInvalidTexture = errors.New("render: invalid texture data")

	// ErrForeignTexture is returned when a texture from another host is drawn.
	ErrForeignTexture = errors.New("render: texture was not created by this host")

	// ErrTextureDestroyed is returned when drawing a destroyed texture.
	ErrTextureDestroyed = errors.New("render: texture destroyed")

	// ErrNotComposing is returned when DrawTexture is called outside OnRender.
	ErrNotComposing = errors.New("render: draw outside composition pass")
)

// SoftwareHostConfig configures a SoftwareHost.
type SoftwareHostConfig struct {
	// Outputs lists the outputs in the global layout. The first one is active.
	Outputs []Output

	// Buffers is the swapchain length (default 2).
	Buffers int

	// Background is the color under the overlay (default opaque black).
	Background color.Color

	// UseBufferAge makes composition repaint the damage of every frame
	// presented since the back buffer was last shown, as EGL_EXT_buffer_age
	// compositors do. When false, only the current frame's damage is
	// repainted, the worst case an overlay has to survive.
	UseBufferAge bool

	// MaxDirtyRects is the per-frame rect count that triggers full redraw
	// (default 16).
	MaxDirtyRects int
}

// SoftwareHost is a CPU compositor implementing Host.
//
// It keeps a swapchain of Framebuffers that retain their pixels between
// frames and repaints only damaged regions, scissoring draws to the damage.
// Missing damage therefore shows up as stale or missing overlay pixels in
// the presented image.
//
// SoftwareHost methods other than Compose are safe for concurrent use.
type SoftwareHost struct {
	mu sync.Mutex

	outputs []Output
	active  int

	bounds     image.Rectangle
	background *image.RGBA
	buffers    []*Framebuffer
	back       int
	bufferAge  bool

	damage    *Damage
	submitted []DirtyRect
	history   [][]image.Rectangle

	composing bool
	scissor   []image.Rectangle
	draws     []DirtyRect

	pendingFrames int
	frames        int
	presented     *image.RGBA
}

// NewSoftwareHost creates a software host from cfg.
func NewSoftwareHost(cfg SoftwareHostConfig) (*SoftwareHost, error) {
	if len(cfg.Outputs) == 0 {
		return nil, ErrNoOutputs
	}
	n := cfg.Buffers
	if n <= 0 {
		n = 2
	}
	bg := cfg.Background
	if bg == nil {
		bg = color.Black
	}

	var bounds image.Rectangle
	for i, out := range cfg.Outputs {
		r := outputRect(out)
		if r.Empty() {
			return nil, fmt.Errorf("render: output %d (%q) has empty size", i, out.Name)
		}
		bounds = bounds.Union(r)
	}

	h := &SoftwareHost{
		outputs:    append([]Output(nil), cfg.Outputs...),
		bounds:     bounds,
		background: image.NewRGBA(bounds),
		buffers:    make([]*Framebuffer, n),
		bufferAge:  cfg.UseBufferAge,
		damage:     NewDamage(cfg.MaxDirtyRects),
	}
	draw.Draw(h.background, bounds, image.NewUniform(bg), image.Point{}, draw.Src)
	for i := range h.buffers {
		fb := NewFramebufferFromImage(image.NewRGBA(bounds))
		fb.CopyFrom(h.background, bounds)
		h.buffers[i] = fb
	}
	return h, nil
}

func outputRect(o Output) image.Rectangle {
	x, y := int(o.Position.X), int(o.Position.Y)
	return image.Rect(x, y, x+int(o.Size.X), y+int(o.Size.Y))
}

// Bounds returns the global layout rectangle covered by the framebuffers.
func (h *SoftwareHost) Bounds() image.Rectangle {
	return h.bounds
}

// Background returns the image the compositor repaints damaged regions from.
func (h *SoftwareHost) Background() *image.RGBA {
	return h.background
}

// DeviceHandle returns a null device advertising an RGBA surface.
func (h *SoftwareHost) DeviceHandle() DeviceHandle {
	return NullDeviceHandle{}
}

// ActiveOutput returns the active output.
func (h *SoftwareHost) ActiveOutput() (Output, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active < 0 || h.active >= len(h.outputs) {
		return Output{}, false
	}
	return h.outputs[h.active], true
}

// SetActiveOutput makes the output with the given name active.
func (h *SoftwareHost) SetActiveOutput(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, out := range h.outputs {
		if out.Name == name {
			h.active = i
			return nil
		}
	}
	return fmt.Errorf("render: unknown output %q", name)
}

// ClearActiveOutput leaves the host without an active output.
func (h *SoftwareHost) ClearActiveOutput() {
	h.mu.Lock()
	h.active = -1
	h.mu.Unlock()
}

// ScheduleFrame records a frame request.
func (h *SoftwareHost) ScheduleFrame() {
	h.mu.Lock()
	h.pendingFrames++
	h.mu.Unlock()
}

// PendingFrames returns the number of frame requests since the last Compose.
func (h *SoftwareHost) PendingFrames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pendingFrames
}

// Frames returns the number of composed frames.
func (h *SoftwareHost) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// DamageBox adds box to the damage of the next composition pass.
func (h *SoftwareHost) DamageBox(box DirtyRect) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.damage.Invalidate(box)
	h.submitted = append(h.submitted, box)
}

// Damaged returns the boxes submitted since the last Compose, in order.
func (h *SoftwareHost) Damaged() []DirtyRect {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]DirtyRect(nil), h.submitted...)
}

// Draws returns the boxes drawn during the last composed frame.
func (h *SoftwareHost) Draws() []DirtyRect {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]DirtyRect(nil), h.draws...)
}

// Presented returns the image shown by the last Compose, or nil.
func (h *SoftwareHost) Presented() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presented
}

// softTexture is the texture type created by SoftwareHost.
type softTexture struct {
	host      *SoftwareHost
	img       *image.RGBA
	format    gputypes.TextureFormat
	destroyed atomic.Bool
}

func (t *softTexture) Width() uint32                  { return uint32(t.img.Bounds().Dx()) } //nolint:gosec // bounded by upload size
func (t *softTexture) Height() uint32                 { return uint32(t.img.Bounds().Dy()) } //nolint:gosec // bounded by upload size
func (t *softTexture) Format() gputypes.TextureFormat { return t.format }
func (t *softTexture) Destroy()                       { t.destroyed.Store(true) }

// UploadTexture copies pix into a new texture. BGRA data is swizzled to the
// framebuffer's RGBA layout.
func (h *SoftwareHost) UploadTexture(pix []byte, width, height int, format gputypes.TextureFormat) (Texture, error) {
	bpp := BytesPerPixel(format)
	if width <= 0 || height <= 0 || bpp == 0 {
		return nil, fmt.Errorf("%w: %dx%d format %v", ErrInvalidTexture, width, height, format)
	}
	if len(pix) < width*height*bpp {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrInvalidTexture, len(pix), width*height*bpp)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pix[:width*height*bpp])
	if format == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
		}
	}

	desc := SpriteTextureDescriptor(uint32(width), uint32(height), format) //nolint:gosec // checked positive above
	logger().Debug("render: texture uploaded", "label", desc.Label, "width", desc.Width, "height", desc.Height)

	return &softTexture{host: h, img: img, format: format}, nil
}

// DrawTexture scales tex into box with nearest-neighbour sampling and
// blends it over the back buffer at alpha. Pixels outside the current
// frame's repaint region are left untouched.
func (h *SoftwareHost) DrawTexture(tex Texture, box DirtyRect, alpha float32) error {
	st, ok := tex.(*softTexture)
	if !ok || st.host != h {
		return ErrForeignTexture
	}
	if st.destroyed.Load() {
		return ErrTextureDestroyed
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.composing {
		return ErrNotComposing
	}
	h.draws = append(h.draws, box)

	dr := box.Rect()
	if dr.Empty() {
		return nil
	}

	scaled := image.NewRGBA(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), st.img, st.img.Bounds(), draw.Src, nil)

	a := uint8(clampUnit(alpha) * 255)
	mask := image.NewAlpha(dr)
	for _, s := range h.scissor {
		clip := s.Intersect(dr)
		if clip.Empty() {
			continue
		}
		draw.Draw(mask, clip, image.NewUniform(color.Alpha{A: a}), image.Point{}, draw.Src)
	}

	back := h.buffers[h.back]
	draw.DrawMask(back.Image(), dr, scaled, image.Point{}, mask, dr.Min, draw.Over)
	return nil
}

func clampUnit(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Compose runs one composition pass with hooks and presents the result.
//
// The pass calls hooks.OnPreRender, repaints the damaged regions of the
// back buffer from the background, calls hooks.OnRender with draws
// scissored to the repainted regions, then presents the back buffer and
// rotates the swapchain. The returned image is a copy of the presented frame.
//
// Compose must not be called concurrently with itself.
func (h *SoftwareHost) Compose(hooks FrameHooks) *image.RGBA {
	h.mu.Lock()
	h.pendingFrames = 0
	h.mu.Unlock()

	if hooks != nil {
		hooks.OnPreRender()
	}

	h.mu.Lock()
	back := h.buffers[h.back]
	frameMask := h.damage.Mask(h.bounds)
	repaint := h.repaintRegion(back, frameMask)
	for _, r := range repaint {
		back.CopyFrom(h.background, r)
	}
	h.scissor = repaint
	h.draws = h.draws[:0]
	h.composing = true
	h.mu.Unlock()

	if hooks != nil {
		hooks.OnRender()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.composing = false
	h.scissor = nil

	h.history = append([][]image.Rectangle{frameMask}, h.history...)
	if len(h.history) > len(h.buffers) {
		h.history = h.history[:len(h.buffers)]
	}
	for _, fb := range h.buffers {
		if fb.age > 0 {
			fb.age++
		}
	}
	back.age = 1
	h.back = (h.back + 1) % len(h.buffers)

	h.damage.Clear()
	h.submitted = h.submitted[:0]
	h.frames++
	h.presented = back.Snapshot()

	logger().Debug("render: frame presented",
		"frame", h.frames, "repaint", len(repaint), "draws", len(h.draws))
	return h.presented
}

// repaintRegion returns the rects to repaint in back for this frame.
func (h *SoftwareHost) repaintRegion(back *Framebuffer, frameMask []image.Rectangle) []image.Rectangle {
	if !h.bufferAge {
		return frameMask
	}
	age := back.Age()
	if age == 0 || age-1 > len(h.history) {
		return []image.Rectangle{h.bounds}
	}
	out := append([]image.Rectangle(nil), frameMask...)
	for _, past := range h.history[:age-1] {
		out = append(out, past...)
	}
	return out
}
