// Package todo owns the in-memory todo list of a session.
//
// A Store is not safe for concurrent use: it belongs to the view that
// created it, and every call runs to completion before the next one.
package todo

import (
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

// IDSource hands out item ids. Ids are never reused within a session.
type IDSource struct {
	last int64
}

// Next returns the next id, starting at 1.
func (s *IDSource) Next() int64 {
	s.last++
	return s.last
}

// Seed is an item to pre-populate a store with.
type Seed struct {
	Text      string
	Completed bool
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithSeed appends the given seeds, in order, when the store is created.
// Seeds with blank text are skipped, the same way Add skips them.
func WithSeed(seeds []Seed) Option {
	return func(s *Store) {
		for _, sd := range seeds {
			if it, ok := s.Add(sd.Text); ok && sd.Completed {
				s.Toggle(it.ID)
			}
		}
	}
}

// Store is the ordered list of todo items plus its mutation entry points.
type Store struct {
	items []model.Item
	ids   IDSource
}

// New creates an empty store and applies opts.
func New(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add trims raw and appends a new open item. Blank input is ignored and
// reported with ok == false.
func (s *Store) Add(raw string) (it model.Item, ok bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return model.Item{}, false
	}
	it = model.Item{ID: s.ids.Next(), Text: text}
	s.items = append(s.items, it)
	return it, true
}

// Toggle flips the completed flag of the item with the given id.
// Unknown ids are ignored.
func (s *Store) Toggle(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items[i].Completed = !s.items[i].Completed
	return true
}

// Remove deletes the item with the given id, keeping the order of the rest.
// Unknown ids are ignored.
func (s *Store) Remove(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Get returns the item with the given id.
func (s *Store) Get(id int64) (model.Item, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

// Items returns a copy of the list in insertion order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// Remaining counts open items.
func (s *Store) Remaining() int {
	n := 0
	for _, it := range s.items {
		if !it.Completed {
			n++
		}
	}
	return n
}

// CompletedCount counts completed items.
func (s *Store) CompletedCount() int {
	return len(s.items) - s.Remaining()
}

func (s *Store) index(id int64) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
