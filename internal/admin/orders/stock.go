package orders

import (
	"fmt"

	"finitefield.org/laundry-admin/internal/admin/inventory"
)

// InsufficientStockError reports a product line that cannot be covered by
// the inventory snapshot it was validated against.
type InsufficientStockError struct {
	Item      string
	Available int
	Requested int
}

// Error implements the error interface.
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("orders: insufficient stock for %s: requested %d, available %d", e.Item, e.Requested, e.Available)
}

// ValidateStock checks every product line against an inventory snapshot.
// A line fails when its quantity is not positive, when the item is missing
// from the snapshot, or when the requested quantity exceeds the on-hand
// quantity. The first failing line is reported.
//
// The snapshot is whatever the console last fetched; stock may have moved
// on the backend since, and that window is accepted.
func ValidateStock(lines []Line, snapshot []inventory.Item) error {
	onHand := make(map[string]int, len(snapshot))
	for _, item := range snapshot {
		onHand[item.ID] = item.Quantity
	}
	for _, line := range lines {
		available := onHand[line.ItemID]
		if line.Quantity <= 0 || line.Quantity > available {
			return &InsufficientStockError{
				Item:      line.Name,
				Available: available,
				Requested: line.Quantity,
			}
		}
	}
	return nil
}
