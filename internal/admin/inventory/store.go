package inventory

import (
	"sort"
	"sync"
)

// Store owns the locally cached inventory snapshot. It is the single writer:
// consumers read copies via Snapshot and never push mutated copies back —
// quantities change only through Replace (a fresh backend list) or Apply
// (the optimistic post-reconciliation update).
type Store struct {
	mu    sync.RWMutex
	items []Item
	byID  map[string]int
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{byID: map[string]int{}}
}

// Replace swaps the cached snapshot with a freshly fetched list. The last
// completed fetch wins; there is no merging of overlapping refreshes.
func (s *Store) Replace(items []Item) {
	next := make([]Item, len(items))
	copy(next, items)
	byID := make(map[string]int, len(next))
	for i, item := range next {
		byID[item.ID] = i
	}

	s.mu.Lock()
	s.items = next
	s.byID = byID
	s.mu.Unlock()
}

// Apply adjusts cached quantities to match a bulk update that the backend
// accepted, clamping at zero. Unknown ids are ignored.
func (s *Store) Apply(updates []Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, update := range updates {
		idx, ok := s.byID[update.ID]
		if !ok {
			continue
		}
		quantity := update.Quantity
		if quantity < 0 {
			quantity = 0
		}
		s.items[idx].Quantity = quantity
	}
}

// Snapshot returns a copy of the cached items, sorted by name for stable display.
func (s *Store) Snapshot() []Item {
	s.mu.RLock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the cached item with the given id.
func (s *Store) Lookup(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return Item{}, false
	}
	return s.items[idx], true
}

// Len reports the number of cached items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
