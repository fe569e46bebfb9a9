package inventory

import (
	"context"
	"errors"
)

// ErrNotConfigured indicates the inventory service dependency has not been provided.
var ErrNotConfigured = errors.New("inventory: service not configured")

// Service supplies the stock list for a shop and the single bulk-update
// operation through which quantities are mutated.
type Service interface {
	// List returns the current stock for the shop.
	List(ctx context.Context, token, shopID string) ([]Item, error)

	// BulkUpdate adjusts on-hand quantities for a set of items in one request.
	BulkUpdate(ctx context.Context, token string, updates []Update) error
}

// Item is a sellable stock keeping unit. Quantity is never negative after a
// successful update; over-deductions clamp at zero.
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// Update carries the new absolute quantity for one item, plus a marker set
// when the item has drained and should be reordered.
type Update struct {
	ID            string `json:"id"`
	Quantity      int    `json:"quantity"`
	ReorderMarker bool   `json:"reorderMarker"`
}
