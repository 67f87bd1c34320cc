package touchviz

import (
	"cmp"
	"slices"
	"sync"

	"github.com/gogpu/gg"
)

// Store maps contact ids to their state.
//
// Every method holds the store's mutex for the duration of the call only,
// so hosts may deliver touch events and frames on different goroutines.
// Callbacks run outside the lock on snapshots.
type Store struct {
	mu       sync.Mutex
	depth    int
	contacts map[int32]*Contact
}

// NewStore creates an empty store whose contacts keep depth rendered positions.
func NewStore(depth int) *Store {
	return &Store{
		depth:    depth,
		contacts: make(map[int32]*Contact),
	}
}

// HistoryDepth returns the per-contact history depth.
func (s *Store) HistoryDepth() int { return s.depth }

// Insert adds a contact at p with empty history.
// It fails with ErrDuplicateContact if id is already tracked.
func (s *Store) Insert(id int32, p gg.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; ok {
		return contactError("insert", id, ErrDuplicateContact)
	}
	s.contacts[id] = newContact(id, p, s.depth)
	return nil
}

// Reset replaces the contact for id with a fresh one at p, tracked or not.
// It returns the replaced contact, if any.
func (s *Store) Reset(id int32, p gg.Point) (prev Contact, replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.contacts[id]; ok {
		prev, replaced = old.snapshot(), true
	}
	s.contacts[id] = newContact(id, p, s.depth)
	return prev, replaced
}

// Update moves an existing contact to p without touching its history.
func (s *Store) Update(id int32, p gg.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return contactError("update", id, ErrUnknownContact)
	}
	c.Current = p
	return nil
}

// Remove deletes a contact and returns its last state.
func (s *Store) Remove(id int32) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return Contact{}, contactError("remove", id, ErrUnknownContact)
	}
	delete(s.contacts, id)
	return c.snapshot(), nil
}

// Get returns a snapshot of the contact for id.
func (s *Store) Get(id int32) (Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return Contact{}, false
	}
	return c.snapshot(), true
}

// Len returns the number of tracked contacts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}

// IDs returns the tracked ids in ascending order.
func (s *Store) IDs() []int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int32, 0, len(s.contacts))
	for id := range s.contacts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ForEach calls fn with a snapshot of every contact, in ascending id order.
func (s *Store) ForEach(fn func(Contact)) {
	for _, c := range s.snapshots() {
		fn(c)
	}
}

func (s *Store) snapshots() []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c.snapshot())
	}
	slices.SortFunc(out, func(a, b Contact) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// advance calls fn on every contact under the lock, in ascending id order.
// fn must not block or call back into the store.
func (s *Store) advance(fn func(*Contact)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ordered := make([]*Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		ordered = append(ordered, c)
	}
	slices.SortFunc(ordered, func(a, b *Contact) int { return cmp.Compare(a.ID, b.ID) })
	for _, c := range ordered {
		fn(c)
	}
}
