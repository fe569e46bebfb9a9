package inventory

import (
	"context"
	"fmt"
	"sync"
)

// StaticService provides deterministic inventory data suitable for local development and tests.
type StaticService struct {
	mu    sync.Mutex
	items []Item
}

// NewStaticService returns a StaticService populated with representative stock.
func NewStaticService() *StaticService {
	return &StaticService{
		items: []Item{
			{ID: "inv-detergent", Name: "Detergent", UnitPrice: 15, Quantity: 5},
			{ID: "inv-softener", Name: "Fabric Softener", UnitPrice: 12, Quantity: 8},
			{ID: "inv-bleach", Name: "Bleach", UnitPrice: 10, Quantity: 3},
			{ID: "inv-bag", Name: "Laundry Bag", UnitPrice: 25, Quantity: 20},
		},
	}
}

// List returns a copy of the configured stock.
func (s *StaticService) List(ctx context.Context, token, shopID string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// BulkUpdate applies absolute quantities to the static stock, mirroring the
// backend clamp-at-zero behaviour.
func (s *StaticService) BulkUpdate(ctx context.Context, token string, updates []Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, update := range updates {
		found := false
		for i := range s.items {
			if s.items[i].ID == update.ID {
				quantity := update.Quantity
				if quantity < 0 {
					quantity = 0
				}
				s.items[i].Quantity = quantity
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("inventory: bulk update: unknown item %s", update.ID)
		}
	}
	return nil
}
