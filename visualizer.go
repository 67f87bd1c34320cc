package touchviz

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/touchviz/render"
)

// Visualizer draws a marker under every active touch contact.
//
// It owns the marker texture, the contact store, the damage tracker and
// the overlay. The host calls the OnTouch* methods from its input stream
// and OnPreRender/OnRender from its render loop. Each call is serialized
// with the others, so the host may use different goroutines for input and
// frames. No method blocks or starts goroutines.
type Visualizer struct {
	mu sync.Mutex

	host    render.Host
	opts    options
	store   *Store
	tracker *Tracker
	overlay *Overlay
	texture render.Texture

	closeOnce sync.Once
	closed    bool
}

// Ensure Visualizer takes part in composition.
var _ render.FrameHooks = (*Visualizer)(nil)

// New creates a Visualizer and uploads its marker texture to host.
//
// If host implements render.DeviceHandleProvider and advertises a BGRA
// surface, the sprite is uploaded as BGRA. A failed upload is the only
// hard error: it is returned wrapped in ErrTextureUpload.
func New(host render.Host, opts ...Option) (*Visualizer, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	sprite, err := NewMarkerSprite(o.radius, o.color)
	if err != nil {
		return nil, err
	}
	if render.SurfaceFormat(host) == gputypes.TextureFormatBGRA8Unorm {
		if sprite, err = sprite.Convert(gputypes.TextureFormatBGRA8Unorm); err != nil {
			return nil, err
		}
	}

	tex, err := host.UploadTexture(sprite.Pix, sprite.Width, sprite.Height, sprite.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTextureUpload, err)
	}
	if tex == nil {
		return nil, fmt.Errorf("%w: host returned no texture", ErrTextureUpload)
	}
	Logger().Info("touchviz: marker texture uploaded",
		"width", sprite.Width, "height", sprite.Height, "format", sprite.Format)

	return &Visualizer{
		host:    host,
		opts:    o,
		store:   NewStore(o.depth),
		tracker: NewTracker(o.radius, o.dedup),
		overlay: NewOverlay(tex, o.radius, o.opacity),
		texture: tex,
	}, nil
}

// Store returns the contact store. Mutating it directly bypasses damage
// tracking; use it for inspection.
func (v *Visualizer) Store() *Store { return v.store }

// Tracker returns the damage tracker.
func (v *Visualizer) Tracker() *Tracker { return v.tracker }

// Radius returns the marker radius.
func (v *Visualizer) Radius() float64 { return v.opts.radius }

// OnPreRender submits this frame's damage and advances contact history.
// Call it once per frame before composition. After Close it keeps erasing
// the markers removed by Close.
func (v *Visualizer) OnPreRender() {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := v.tracker.PreRender(v.store, v.host)
	if n > 0 {
		Logger().Debug("touchviz: damage submitted", "boxes", n, "contacts", v.store.Len())
	}
}

// OnRender draws the markers. Call it once per frame during composition.
func (v *Visualizer) OnRender() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.overlay.Render(v.store, v.host)
}

// Close destroys the marker texture. Markers still on screen are damaged
// so the next frame erases them. Close is idempotent.
func (v *Visualizer) Close() error {
	v.closeOnce.Do(func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		for _, id := range v.store.IDs() {
			if c, err := v.store.Remove(id); err == nil {
				v.tracker.Flush(c, v.host)
			}
		}
		v.closed = true
		v.texture.Destroy()
		v.host.ScheduleFrame()
		Logger().Info("touchviz: closed")
	})
	return nil
}
