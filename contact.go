package touchviz

import "github.com/gogpu/gg"

// Contact is one active touch point.
//
// Contacts handed out by Store are snapshots; changing them does not
// affect the store.
type Contact struct {
	// ID is assigned by the input source and unique among active contacts.
	ID int32

	// Current is the live position in output coordinates.
	Current gg.Point

	history History
}

func newContact(id int32, p gg.Point, depth int) *Contact {
	return &Contact{ID: id, Current: p, history: NewHistory(depth)}
}

// LastRendered returns the position drawn in the previous composed frame.
func (c Contact) LastRendered() (gg.Point, bool) {
	return c.history.At(0)
}

// LastRendered2 returns the position drawn in the frame before that.
func (c Contact) LastRendered2() (gg.Point, bool) {
	return c.history.At(1)
}

// History returns every retained rendered position, newest first.
func (c Contact) History() []gg.Point {
	return c.history.Points()
}

func (c *Contact) snapshot() Contact {
	s := *c
	s.history = c.history.clone()
	return s
}
