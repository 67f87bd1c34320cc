// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tcellhost

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/touchviz/render"
)

// Host errors.
var (
	// ErrNilScreen is returned by New for a nil screen.
	ErrNilScreen = errors.New("tcellhost: nil screen")

	// ErrForeignTexture is returned when drawing a texture this host did not create.
	ErrForeignTexture = errors.New("tcellhost: texture was not created by this host")
)

// alphaThreshold is the minimum sampled marker alpha that colors a cell.
const alphaThreshold = 0.25

// Host is a render.Host drawing into a tcell.Screen.
type Host struct {
	mu        sync.Mutex
	screen    tcell.Screen
	style     tcell.Style
	damage    *render.Damage
	scissor   []image.Rectangle
	composing bool

	frames chan struct{}
}

// New creates a host on screen. The screen must already be initialized.
func New(screen tcell.Screen) (*Host, error) {
	if screen == nil {
		return nil, ErrNilScreen
	}
	return &Host{
		screen: screen,
		style:  tcell.StyleDefault,
		damage: render.NewDamage(0),
		frames: make(chan struct{}, 1),
	}, nil
}

// SetBackground sets the style damaged cells are reset to.
func (h *Host) SetBackground(style tcell.Style) {
	h.mu.Lock()
	h.style = style
	h.mu.Unlock()
}

// bounds returns the screen rectangle in cells.
func (h *Host) bounds() image.Rectangle {
	w, hh := h.screen.Size()
	return image.Rect(0, 0, w, hh)
}

// ActiveOutput reports the whole terminal as one output.
func (h *Host) ActiveOutput() (render.Output, bool) {
	w, hh := h.screen.Size()
	if w <= 0 || hh <= 0 {
		return render.Output{}, false
	}
	return render.Output{Name: "terminal", Size: gg.Pt(float64(w), float64(hh))}, true
}

// ScheduleFrame requests a Compose. Requests coalesce until the next frame.
func (h *Host) ScheduleFrame() {
	select {
	case h.frames <- struct{}{}:
	default:
	}
}

// FrameRequests delivers one value per coalesced frame request.
func (h *Host) FrameRequests() <-chan struct{} {
	return h.frames
}

// DamageBox marks the cells under box dirty.
func (h *Host) DamageBox(box render.DirtyRect) {
	h.mu.Lock()
	h.damage.Invalidate(box)
	h.mu.Unlock()
}

// InvalidateAll forces the next Compose to repaint every cell.
func (h *Host) InvalidateAll() {
	h.mu.Lock()
	h.damage.InvalidateAll()
	h.mu.Unlock()
}

type cellTexture struct {
	host   *Host
	img    *image.RGBA
	format gputypes.TextureFormat
}

func (t *cellTexture) Width() uint32                  { return uint32(t.img.Bounds().Dx()) } //nolint:gosec // positive upload size
func (t *cellTexture) Height() uint32                 { return uint32(t.img.Bounds().Dy()) } //nolint:gosec // positive upload size
func (t *cellTexture) Format() gputypes.TextureFormat { return t.format }
func (t *cellTexture) Destroy()                       {}

// UploadTexture keeps a CPU copy of pix to sample from when drawing.
func (h *Host) UploadTexture(pix []byte, width, height int, format gputypes.TextureFormat) (render.Texture, error) {
	if width <= 0 || height <= 0 || render.BytesPerPixel(format) != 4 || len(pix) < width*height*4 {
		return nil, fmt.Errorf("tcellhost: invalid texture %dx%d (%d bytes, format %v)", width, height, len(pix), format)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pix)
	if format == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
		}
	}
	return &cellTexture{host: h, img: img, format: format}, nil
}

// DrawTexture paints the background of every cell in box whose sampled
// texel is visible. Cells outside the frame's damage are left alone.
func (h *Host) DrawTexture(tex render.Texture, box render.DirtyRect, alpha float32) error {
	ct, ok := tex.(*cellTexture)
	if !ok || ct.host != h {
		return ErrForeignTexture
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.composing || box.Empty() {
		return nil
	}

	tw, th := ct.img.Bounds().Dx(), ct.img.Bounds().Dy()
	area := box.Rect().Intersect(h.bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if !inAny(h.scissor, x, y) {
				continue
			}
			sx := int((float64(x) + 0.5 - box.X) / box.Width * float64(tw))
			sy := int((float64(y) + 0.5 - box.Y) / box.Height * float64(th))
			if sx < 0 || sy < 0 || sx >= tw || sy >= th {
				continue
			}
			c := ct.img.RGBAAt(sx, sy)
			if float64(c.A)/255*float64(alpha) < alphaThreshold {
				continue
			}
			h.screen.SetContent(x, y, ' ', nil, h.style.Background(cellColor(c)))
		}
	}
	return nil
}

// cellColor converts a premultiplied texel to an opaque terminal color.
func cellColor(c color.RGBA) tcell.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

func inAny(rects []image.Rectangle, x, y int) bool {
	p := image.Pt(x, y)
	for _, r := range rects {
		if p.In(r) {
			return true
		}
	}
	return false
}

// Compose runs one frame: pre-render hooks, reset of damaged cells,
// render hooks, then Show.
func (h *Host) Compose(hooks render.FrameHooks) {
	hooks.OnPreRender()

	h.mu.Lock()
	repaint := h.damage.Mask(h.bounds())
	for _, r := range repaint {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				h.screen.SetContent(x, y, ' ', nil, h.style)
			}
		}
	}
	h.scissor = repaint
	h.composing = true
	h.mu.Unlock()

	hooks.OnRender()

	h.mu.Lock()
	h.composing = false
	h.scissor = nil
	h.damage.Clear()
	h.mu.Unlock()

	h.screen.Show()
}
