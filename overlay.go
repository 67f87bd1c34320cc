package touchviz

import (
	"github.com/gogpu/touchviz/render"
)

// Overlay draws the marker texture at every tracked contact.
// It only reads the store.
type Overlay struct {
	texture render.Texture
	radius  float64
	opacity float32
}

// NewOverlay creates an overlay drawing tex as a square of side 2*radius.
func NewOverlay(tex render.Texture, radius float64, opacity float32) *Overlay {
	return &Overlay{texture: tex, radius: radius, opacity: opacity}
}

// Render draws one marker per contact, centered on its current position.
// It makes no draw calls for an empty store. A failed draw is logged and
// does not stop the remaining contacts. It returns the number of markers drawn.
func (o *Overlay) Render(s *Store, d render.TextureDrawer) int {
	contacts := s.snapshots()
	if len(contacts) == 0 {
		return 0
	}

	drawn := 0
	for _, c := range contacts {
		box := render.BoxAround(c.Current, o.radius)
		if err := d.DrawTexture(o.texture, box, o.opacity); err != nil {
			Logger().Warn("touchviz: draw marker failed", "id", c.ID, "err", err)
			continue
		}
		drawn++
	}
	return drawn
}
