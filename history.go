package touchviz

import "github.com/gogpu/gg"

// DefaultHistoryDepth is the number of previously rendered positions kept
// per contact and damaged every frame.
//
// A marker drawn in frame N stays in that frame's buffer until the buffer
// is repainted. A host that repaints only the current frame's damage needs
// a depth of at least its swapchain length: two covers double buffering.
// Hosts that accumulate damage by buffer age need only one.
const DefaultHistoryDepth = 2

// MaxHistoryDepth bounds WithHistoryDepth.
const MaxHistoryDepth = 8

// History is a fixed-size ring of rendered positions, newest first.
//
// Push shifts every entry one slot older and drops the oldest once the
// ring is full. The zero value has depth 0 and never stores anything.
type History struct {
	slots []gg.Point
	head  int // index of the newest entry
	n     int
}

// NewHistory returns an empty history of the given depth.
func NewHistory(depth int) History {
	if depth < 0 {
		depth = 0
	}
	return History{slots: make([]gg.Point, depth)}
}

// Depth returns the ring capacity.
func (h *History) Depth() int { return len(h.slots) }

// Len returns the number of stored positions.
func (h *History) Len() int { return h.n }

// At returns the i-th most recent position: 0 is the last rendered
// position, 1 the one before it.
func (h *History) At(i int) (gg.Point, bool) {
	if i < 0 || i >= h.n {
		return gg.Point{}, false
	}
	return h.slots[(h.head+i)%len(h.slots)], true
}

// Push records p as the newest rendered position.
func (h *History) Push(p gg.Point) {
	if len(h.slots) == 0 {
		return
	}
	h.head = (h.head - 1 + len(h.slots)) % len(h.slots)
	h.slots[h.head] = p
	if h.n < len(h.slots) {
		h.n++
	}
}

// Reset empties the history, keeping its depth.
func (h *History) Reset() {
	h.head, h.n = 0, 0
}

// Points returns the stored positions, newest first.
func (h *History) Points() []gg.Point {
	out := make([]gg.Point, h.n)
	for i := range out {
		out[i], _ = h.At(i)
	}
	return out
}

func (h *History) clone() History {
	c := *h
	c.slots = append([]gg.Point(nil), h.slots...)
	return c
}
