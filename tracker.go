package touchviz

import (
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/touchviz/render"
)

// Tracker computes the damage that keeps markers correct on screen.
//
// For every contact it damages each retained rendered position, oldest
// first, then the current position. With the default depth that is
// lastRendered2, lastRendered and current: the two afterimages a double
// buffered host may still show, and the marker about to be drawn.
//
// Removed contacts are flushed at once and, when they had been rendered,
// kept as retired entries whose rendered positions are damaged again on
// the following frames until every buffer of a depth-long swapchain has
// been repainted.
type Tracker struct {
	radius float64
	dedup  bool

	mu      sync.Mutex
	retired []retiredContact
}

type retiredContact struct {
	id        int32
	positions []gg.Point
	// frames left before the entry is dropped; the first frame after
	// removal is covered by Flush itself.
	frames int
	fresh  bool
}

// NewTracker creates a tracker for markers of the given radius. With dedup,
// a position is damaged at most once per contact per pass.
func NewTracker(radius float64, dedup bool) *Tracker {
	return &Tracker{radius: radius, dedup: dedup}
}

// Radius returns the marker radius boxes are built with.
func (t *Tracker) Radius() float64 { return t.radius }

// appendBoxes appends a box for each point to dst, skipping repeats when
// dedup is enabled.
func (t *Tracker) appendBoxes(dst []render.DirtyRect, points ...gg.Point) []render.DirtyRect {
	for i, p := range points {
		if t.dedup && containsPoint(points[:i], p) {
			continue
		}
		dst = append(dst, render.BoxAround(p, t.radius))
	}
	return dst
}

func containsPoint(points []gg.Point, p gg.Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}

// damagePoints returns c's rendered positions oldest first, then current.
func damagePoints(c *Contact) []gg.Point {
	n := c.history.Len()
	points := make([]gg.Point, 0, n+1)
	for i := n - 1; i >= 0; i-- {
		p, _ := c.history.At(i)
		points = append(points, p)
	}
	return append(points, c.Current)
}

// Regions returns the damage the next PreRender will submit, without
// changing any state. Calling it twice on unchanged state yields the same
// regions.
func (t *Tracker) Regions(s *Store) []render.DirtyRect {
	var out []render.DirtyRect
	for _, c := range s.snapshots() {
		out = t.appendBoxes(out, damagePoints(&c)...)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.retired {
		if !r.fresh {
			out = t.appendBoxes(out, r.positions...)
		}
	}
	return out
}

// PreRender submits the damage for the next frame to sink and shifts every
// contact's history by one slot, recording the current position as the
// last rendered one. It must run exactly once per composed frame.
// It returns the number of boxes submitted.
func (t *Tracker) PreRender(s *Store, sink render.DamageSink) int {
	var boxes []render.DirtyRect
	s.advance(func(c *Contact) {
		boxes = t.appendBoxes(boxes, damagePoints(c)...)
		c.history.Push(c.Current)
	})
	boxes = t.advanceRetired(boxes)

	for _, b := range boxes {
		sink.DamageBox(b)
	}
	return len(boxes)
}

func (t *Tracker) advanceRetired(boxes []render.DirtyRect) []render.DirtyRect {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.retired[:0]
	for _, r := range t.retired {
		if r.fresh {
			r.fresh = false
		} else {
			boxes = t.appendBoxes(boxes, r.positions...)
		}
		r.frames--
		if r.frames > 0 {
			kept = append(kept, r)
			continue
		}
		Logger().Debug("touchviz: retired contact erased", "id", r.id)
	}
	clear(t.retired[len(kept):])
	t.retired = kept
	return boxes
}

// Flush damages everything c may have left on screen: its current
// position and every retained rendered position. Used when a contact is
// removed and will not be drawn again. It returns the number of boxes
// submitted now.
func (t *Tracker) Flush(c Contact, sink render.DamageSink) int {
	boxes := t.appendBoxes(nil, damagePoints(&c)...)
	for _, b := range boxes {
		sink.DamageBox(b)
	}

	rendered := c.History()
	if depth := c.history.Depth(); len(rendered) > 0 && depth > 1 {
		t.mu.Lock()
		t.retired = append(t.retired, retiredContact{
			id:        c.ID,
			positions: rendered,
			frames:    depth,
			fresh:     true,
		})
		t.mu.Unlock()
	}
	return len(boxes)
}

// Retired returns the number of removed contacts still being erased.
func (t *Tracker) Retired() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.retired)
}
