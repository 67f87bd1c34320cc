package touchviz

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/touchviz/render"
)

// DefaultRadius is the default marker radius in output pixels.
const DefaultRadius = 15

// DefaultColor is the default marker color: a translucent yellow.
var DefaultColor = gg.RGBA2(0.8, 0.8, 0.1, 0.6)

// Sprite is a marker bitmap ready for texture upload.
type Sprite struct {
	Width, Height int

	// Pix holds Width*Height premultiplied texels laid out in Format.
	Pix []byte

	Format gputypes.TextureFormat
}

// NewMarkerSprite rasterizes a filled, anti-aliased circle of the given
// radius into a square RGBA sprite of side ceil(2*radius).
func NewMarkerSprite(radius float64, c gg.RGBA) (*Sprite, error) {
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	size := int(math.Ceil(2 * radius))

	dc := gg.NewContext(size, size)
	defer func() { _ = dc.Close() }()

	center := float64(size) / 2
	dc.SetRGBA(c.R, c.G, c.B, c.A)
	dc.DrawCircle(center, center, radius)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("touchviz: rasterize marker: %w", err)
	}
	_ = dc.FlushGPU()

	pm := dc.ResizeTarget()
	return &Sprite{
		Width:  size,
		Height: size,
		Pix:    append([]byte(nil), pm.Data()...),
		Format: gputypes.TextureFormatRGBA8Unorm,
	}, nil
}

// Convert returns the sprite laid out in format. Only RGBA8 and BGRA8 are
// supported.
func (s *Sprite) Convert(format gputypes.TextureFormat) (*Sprite, error) {
	if render.BytesPerPixel(format) == 0 {
		return nil, fmt.Errorf("touchviz: unsupported sprite format %v", format)
	}
	out := &Sprite{
		Width:  s.Width,
		Height: s.Height,
		Pix:    append([]byte(nil), s.Pix...),
		Format: format,
	}
	if format != s.Format {
		// RGBA8 and BGRA8 differ only by the red and blue channels.
		for i := 0; i+3 < len(out.Pix); i += 4 {
			out.Pix[i], out.Pix[i+2] = out.Pix[i+2], out.Pix[i]
		}
	}
	return out, nil
}

// Image returns the sprite as an *image.RGBA, converting from BGRA if needed.
func (s *Sprite) Image() *image.RGBA {
	src := s
	if s.Format != gputypes.TextureFormatRGBA8Unorm {
		if c, err := s.Convert(gputypes.TextureFormatRGBA8Unorm); err == nil {
			src = c
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	copy(img.Pix, src.Pix)
	return img
}
