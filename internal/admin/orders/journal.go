package orders

import "sync"

// Journal is the console's in-memory record of orders submitted during the
// session. The backend exposes no order listing, so the journal is what the
// status board and the daily summary work from.
type Journal struct {
	mu     sync.RWMutex
	byID   map[string]Order
	newest []string
}

// NewJournal returns an empty journal.
func NewJournal() *Journal {
	return &Journal{byID: make(map[string]Order)}
}

// Record stores a freshly committed order.
func (j *Journal) Record(order Order) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, seen := j.byID[order.LaundryID]; !seen {
		j.newest = append([]string{order.LaundryID}, j.newest...)
	}
	j.byID[order.LaundryID] = order
}

// Update replaces a recorded order after a status change. Unknown ids are
// recorded as new entries.
func (j *Journal) Update(order Order) {
	j.Record(order)
}

// Get returns the recorded order with the given laundry id.
func (j *Journal) Get(laundryID string) (Order, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	order, ok := j.byID[laundryID]
	return order, ok
}

// List returns recorded orders, most recent first.
func (j *Journal) List() []Order {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := make([]Order, 0, len(j.newest))
	for _, id := range j.newest {
		out = append(out, j.byID[id])
	}
	return out
}

// Len returns the number of recorded orders.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.byID)
}
