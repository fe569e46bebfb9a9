package catalog

import (
	"context"
	"errors"
)

// ErrNotConfigured indicates the catalog service dependency has not been provided.
var ErrNotConfigured = errors.New("catalog: service not configured")

// Service supplies the sellable service categories and displayed services for a shop.
// Both lists are read-only and refreshed on demand.
type Service interface {
	// Services returns the discrete laundry services displayed on the order form.
	Services(ctx context.Context, token, shopID string) ([]DisplayedService, error)

	// Prices returns the priced service categories for the shop.
	Prices(ctx context.Context, token, shopID string) ([]ServiceCategory, error)
}

// DisplayedService is a named service an order can flag as selected.
type DisplayedService struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ServiceCategory is a priced category applied to the batch portion of an order.
// Immutable once fetched.
type ServiceCategory struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
}
