package touchviz

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

func TestNewMarkerSpriteSize(t *testing.T) {
	tests := []struct {
		radius float64
		want   int
	}{
		{15, 30},
		{1, 2},
		{2.5, 5},
		{7.2, 15},
	}

	for _, tt := range tests {
		s, err := NewMarkerSprite(tt.radius, DefaultColor)
		if err != nil {
			t.Fatalf("NewMarkerSprite(%v) = %v", tt.radius, err)
		}
		if s.Width != tt.want || s.Height != tt.want {
			t.Errorf("NewMarkerSprite(%v) size = %dx%d, want %dx%d", tt.radius, s.Width, s.Height, tt.want, tt.want)
		}
		if len(s.Pix) != tt.want*tt.want*4 {
			t.Errorf("NewMarkerSprite(%v) len(Pix) = %d, want %d", tt.radius, len(s.Pix), tt.want*tt.want*4)
		}
		if s.Format != gputypes.TextureFormatRGBA8Unorm {
			t.Errorf("NewMarkerSprite(%v) Format = %v, want RGBA8Unorm", tt.radius, s.Format)
		}
	}
}

func TestNewMarkerSpriteInvalidRadius(t *testing.T) {
	for _, r := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		if _, err := NewMarkerSprite(r, DefaultColor); !errors.Is(err, ErrInvalidRadius) {
			t.Errorf("NewMarkerSprite(%v) = %v, want ErrInvalidRadius", r, err)
		}
	}
}

func TestNewMarkerSpriteCoverage(t *testing.T) {
	s, err := NewMarkerSprite(DefaultRadius, DefaultColor)
	if err != nil {
		t.Fatalf("NewMarkerSprite() = %v", err)
	}
	img := s.Image()

	center := img.RGBAAt(15, 15)
	if center.A < 150 || center.A > 156 {
		t.Errorf("center alpha = %d, want about 153", center.A)
	}
	// Premultiplied: red is 0.8 * 0.6 of full scale.
	if center.R < 118 || center.R > 126 {
		t.Errorf("center red = %d, want about 122", center.R)
	}
	if center.B > center.R {
		t.Errorf("center = %v, want a yellow texel", center)
	}

	for _, p := range [][2]int{{0, 0}, {29, 0}, {0, 29}, {29, 29}} {
		if a := img.RGBAAt(p[0], p[1]).A; a != 0 {
			t.Errorf("corner %v alpha = %d, want 0", p, a)
		}
	}
}

func TestSpriteConvert(t *testing.T) {
	s := &Sprite{
		Width:  1,
		Height: 1,
		Pix:    []byte{10, 20, 30, 40},
		Format: gputypes.TextureFormatRGBA8Unorm,
	}

	bgra, err := s.Convert(gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("Convert(BGRA) = %v", err)
	}
	if want := []byte{30, 20, 10, 40}; string(bgra.Pix) != string(want) {
		t.Errorf("Convert(BGRA).Pix = %v, want %v", bgra.Pix, want)
	}
	if string(s.Pix) != string([]byte{10, 20, 30, 40}) {
		t.Errorf("Convert modified the source sprite: %v", s.Pix)
	}

	same, _ := s.Convert(gputypes.TextureFormatRGBA8Unorm)
	if string(same.Pix) != string(s.Pix) {
		t.Errorf("Convert(RGBA) of RGBA sprite = %v, want unchanged", same.Pix)
	}

	if got := bgra.Image().RGBAAt(0, 0); got.R != 10 || got.B != 30 {
		t.Errorf("BGRA Image() texel = %v, want R=10 B=30", got)
	}

	if _, err := s.Convert(gputypes.TextureFormatR8Unorm); err == nil {
		t.Error("Convert(R8Unorm) should fail")
	}
}

func TestDefaultColor(t *testing.T) {
	want := gg.RGBA{R: 0.8, G: 0.8, B: 0.1, A: 0.6}
	if DefaultColor != want {
		t.Errorf("DefaultColor = %+v, want %+v", DefaultColor, want)
	}
}
