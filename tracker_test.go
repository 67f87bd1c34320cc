package touchviz

import (
	"slices"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/touchviz/render"
)

// recordSink records damage in submission order.
type recordSink struct {
	boxes []render.DirtyRect
}

func (s *recordSink) DamageBox(box render.DirtyRect) { s.boxes = append(s.boxes, box) }

func (s *recordSink) take() []render.DirtyRect {
	out := s.boxes
	s.boxes = nil
	return out
}

func boxes(radius float64, points ...gg.Point) []render.DirtyRect {
	out := make([]render.DirtyRect, 0, len(points))
	for _, p := range points {
		out = append(out, render.BoxAround(p, radius))
	}
	return out
}

func TestTrackerSingleContact(t *testing.T) {
	s := NewStore(DefaultHistoryDepth)
	tr := NewTracker(DefaultRadius, true)
	sink := &recordSink{}

	_ = s.Insert(1, gg.Pt(10, 10))
	tr.PreRender(s, sink)
	if got, want := sink.take(), boxes(DefaultRadius, gg.Pt(10, 10)); !slices.Equal(got, want) {
		t.Errorf("frame 1 damage = %v, want %v", got, want)
	}

	_ = s.Update(1, gg.Pt(20, 10))
	tr.PreRender(s, sink)
	if got, want := sink.take(), boxes(DefaultRadius, gg.Pt(10, 10), gg.Pt(20, 10)); !slices.Equal(got, want) {
		t.Errorf("frame 2 damage = %v, want %v", got, want)
	}

	// No motion: lastRendered2 is still the old position.
	tr.PreRender(s, sink)
	if got, want := sink.take(), boxes(DefaultRadius, gg.Pt(10, 10), gg.Pt(20, 10)); !slices.Equal(got, want) {
		t.Errorf("frame 3 damage = %v, want %v", got, want)
	}

	tr.PreRender(s, sink)
	if got, want := sink.take(), boxes(DefaultRadius, gg.Pt(20, 10)); !slices.Equal(got, want) {
		t.Errorf("frame 4 damage = %v, want %v", got, want)
	}

	c, _ := s.Get(1)
	if p, _ := c.LastRendered(); p != gg.Pt(20, 10) {
		t.Errorf("LastRendered() = %v, want (20,10)", p)
	}
	if p, _ := c.LastRendered2(); p != gg.Pt(20, 10) {
		t.Errorf("LastRendered2() = %v, want (20,10)", p)
	}
}

func TestTrackerWithoutDedup(t *testing.T) {
	s := NewStore(DefaultHistoryDepth)
	tr := NewTracker(DefaultRadius, false)
	sink := &recordSink{}

	_ = s.Insert(1, gg.Pt(10, 10))
	tr.PreRender(s, sink)
	sink.take()
	_ = s.Update(1, gg.Pt(20, 10))
	tr.PreRender(s, sink)
	sink.take()

	n := tr.PreRender(s, sink)
	want := boxes(DefaultRadius, gg.Pt(10, 10), gg.Pt(20, 10), gg.Pt(20, 10))
	if got := sink.take(); !slices.Equal(got, want) {
		t.Errorf("damage = %v, want %v", got, want)
	}
	if n != len(want) {
		t.Errorf("PreRender() = %d, want %d", n, len(want))
	}
}

func TestTrackerRegionsIsPure(t *testing.T) {
	s := NewStore(DefaultHistoryDepth)
	tr := NewTracker(DefaultRadius, true)
	_ = s.Insert(1, gg.Pt(10, 10))
	_ = s.Insert(2, gg.Pt(100, 50))
	tr.PreRender(s, &recordSink{})
	_ = s.Update(1, gg.Pt(30, 10))

	first := tr.Regions(s)
	second := tr.Regions(s)
	if !slices.Equal(first, second) {
		t.Errorf("Regions() changed between calls: %v then %v", first, second)
	}

	sink := &recordSink{}
	tr.PreRender(s, sink)
	if !slices.Equal(sink.boxes, first) {
		t.Errorf("PreRender() submitted %v, Regions() predicted %v", sink.boxes, first)
	}
}

func TestTrackerFlushUnrendered(t *testing.T) {
	s := NewStore(DefaultHistoryDepth)
	tr := NewTracker(DefaultRadius, true)
	sink := &recordSink{}

	_ = s.Insert(2, gg.Pt(40, 40))
	c, _ := s.Remove(2)
	n := tr.Flush(c, sink)

	if got, want := sink.take(), boxes(DefaultRadius, gg.Pt(40, 40)); !slices.Equal(got, want) {
		t.Errorf("Flush() damage = %v, want %v", got, want)
	}
	if n != 1 {
		t.Errorf("Flush() = %d, want 1", n)
	}
	if tr.Retired() != 0 {
		t.Errorf("Retired() = %d, want 0 for a contact never rendered", tr.Retired())
	}

	drawer := &recordDrawer{}
	if drawn := NewOverlay(nil, DefaultRadius, 1).Render(s, drawer); drawn != 0 || len(drawer.boxes) != 0 {
		t.Errorf("Render() after removal drew %d markers", drawn)
	}
}

func TestTrackerFlushRetiresRenderedContact(t *testing.T) {
	s := NewStore(DefaultHistoryDepth)
	tr := NewTracker(DefaultRadius, true)
	sink := &recordSink{}

	_ = s.Insert(1, gg.Pt(10, 10))
	tr.PreRender(s, sink)
	_ = s.Update(1, gg.Pt(20, 10))
	tr.PreRender(s, sink)
	sink.take()

	c, _ := s.Remove(1)
	tr.Flush(c, sink)
	want := boxes(DefaultRadius, gg.Pt(10, 10), gg.Pt(20, 10))
	if got := sink.take(); !slices.Equal(got, want) {
		t.Errorf("Flush() damage = %v, want %v", got, want)
	}
	if tr.Retired() != 1 {
		t.Fatalf("Retired() = %d, want 1", tr.Retired())
	}

	// The first frame after removal is covered by Flush.
	if got := tr.Regions(s); len(got) != 0 {
		t.Errorf("Regions() right after Flush = %v, want none", got)
	}
	if n := tr.PreRender(s, sink); n != 0 {
		t.Errorf("PreRender() frame 1 after removal = %d boxes, want 0", n)
	}

	tr.PreRender(s, sink)
	if got, want := sink.take(), boxes(DefaultRadius, gg.Pt(20, 10), gg.Pt(10, 10)); !slices.Equal(got, want) {
		t.Errorf("PreRender() frame 2 after removal = %v, want %v", got, want)
	}
	if tr.Retired() != 0 {
		t.Errorf("Retired() = %d, want 0 once every buffer was repainted", tr.Retired())
	}

	if n := tr.PreRender(s, sink); n != 0 {
		t.Errorf("PreRender() frame 3 after removal = %d boxes, want 0", n)
	}
}

func TestTrackerDepthOneDoesNotRetire(t *testing.T) {
	s := NewStore(1)
	tr := NewTracker(DefaultRadius, true)
	sink := &recordSink{}

	_ = s.Insert(1, gg.Pt(10, 10))
	tr.PreRender(s, sink)
	c, _ := s.Remove(1)
	tr.Flush(c, sink)

	if tr.Retired() != 0 {
		t.Errorf("Retired() = %d, want 0 with depth 1", tr.Retired())
	}
}

func TestTrackerContactsAreIndependent(t *testing.T) {
	s := NewStore(DefaultHistoryDepth)
	tr := NewTracker(DefaultRadius, true)
	sink := &recordSink{}

	_ = s.Insert(1, gg.Pt(10, 10))
	_ = s.Insert(2, gg.Pt(200, 200))
	tr.PreRender(s, sink)
	tr.PreRender(s, sink)
	sink.take()

	_ = s.Update(1, gg.Pt(50, 10))
	tr.PreRender(s, sink)

	want := append(
		boxes(DefaultRadius, gg.Pt(10, 10), gg.Pt(50, 10)),
		boxes(DefaultRadius, gg.Pt(200, 200))...,
	)
	if got := sink.take(); !slices.Equal(got, want) {
		t.Errorf("damage = %v, want %v", got, want)
	}

	c2, _ := s.Get(2)
	if got := c2.History(); !slices.Equal(got, []gg.Point{gg.Pt(200, 200), gg.Pt(200, 200)}) {
		t.Errorf("contact 2 history = %v, want it untouched by contact 1", got)
	}

	c1, _ := s.Remove(1)
	tr.Flush(c1, sink)
	for _, b := range sink.take() {
		if b == render.BoxAround(gg.Pt(200, 200), DefaultRadius) {
			t.Error("flushing contact 1 damaged contact 2")
		}
	}
	if _, ok := s.Get(2); !ok {
		t.Error("removing contact 1 removed contact 2")
	}
}

func TestTrackerEmptyStore(t *testing.T) {
	tr := NewTracker(DefaultRadius, true)
	if n := tr.PreRender(NewStore(DefaultHistoryDepth), &recordSink{}); n != 0 {
		t.Errorf("PreRender() on empty store = %d, want 0", n)
	}
}
