package customers

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotConfigured indicates the customer directory dependency has not been provided.
	ErrNotConfigured = errors.New("customers: service not configured")
	// ErrNotFound is returned when a customer id cannot be resolved.
	ErrNotFound = errors.New("customers: not found")
)

// Service resolves customer identifiers to contact/profile fields and supports
// prefix/substring search.
type Service interface {
	// Search returns customers whose id or name matches the query. An empty
	// query lists every customer of the shop.
	Search(ctx context.Context, token, shopID, query string) ([]Customer, error)
}

// Customer holds the contact/profile fields used by the order form and the
// notification composer.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Resolve finds the customer with the exact id via a directory search.
func Resolve(ctx context.Context, svc Service, token, shopID, customerID string) (Customer, error) {
	if svc == nil {
		return Customer{}, ErrNotConfigured
	}
	id := strings.TrimSpace(customerID)
	if id == "" {
		return Customer{}, ErrNotFound
	}
	matches, err := svc.Search(ctx, token, shopID, id)
	if err != nil {
		return Customer{}, err
	}
	for _, c := range matches {
		if c.ID == id {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}
