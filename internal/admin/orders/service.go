package orders

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingCustomer is returned when a draft has no customer attached.
	ErrMissingCustomer = errors.New("orders: customer is required")
	// ErrEmptyOrder is returned when a draft carries no garments and no line items.
	ErrEmptyOrder = errors.New("orders: order has no items")
	// ErrMissingPaymentMethod is returned when neither pay-now nor pay-later is chosen.
	ErrMissingPaymentMethod = errors.New("orders: payment method is required")
	// ErrMissingCategory is returned when no service category is chosen.
	ErrMissingCategory = errors.New("orders: service category is required")
)

// PaymentStatus is the backend's view of how an order will be settled.
type PaymentStatus string

const (
	// PaymentPaid marks an order settled at drop-off.
	PaymentPaid PaymentStatus = "PAID"
	// PaymentPending marks an order to be settled at pick-up.
	PaymentPending PaymentStatus = "PENDING"
)

// API is the subset of the shop backend used to persist orders and advance
// their service status.
type API interface {
	// Create persists a new order and returns the server-assigned laundry id.
	Create(ctx context.Context, token string, req CreateOrderRequest) (string, error)

	// UpdateStatus persists a service status transition for an existing order.
	UpdateStatus(ctx context.Context, token, laundryID string, status Status) error
}

// CreateOrderRequest is the order persistence payload. Line items are not
// sent individually; the backend stores the cleaning-product summary string.
type CreateOrderRequest struct {
	ShopID         string        `json:"shopId"`
	CustomerID     string        `json:"customerId"`
	Shirts         int           `json:"shirts"`
	Pants          int           `json:"pants"`
	Jeans          int           `json:"jeans"`
	Shorts         int           `json:"shorts"`
	Towels         int           `json:"towels"`
	PillowCases    int           `json:"pillowCases"`
	BedSheets      int           `json:"bedSheets"`
	WeightKL       float64       `json:"kl"`
	Services       []string      `json:"services"`
	ItemCount      int           `json:"itemCount"`
	ProductSummary string        `json:"cleaningProducts"`
	TotalAmount    float64       `json:"totalAmount"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	Origin         string        `json:"origin"`
}

// Order is a persisted laundry order as the console tracks it after
// submission. Only the status lifecycle mutates it.
type Order struct {
	LaundryID      string        `json:"laundryId"`
	ShopID         string        `json:"shopId"`
	CustomerID     string        `json:"customerId"`
	CustomerName   string        `json:"customerName"`
	CustomerPhone  string        `json:"customerPhone"`
	Garments       GarmentCounts `json:"garments"`
	WeightKL       float64       `json:"kl"`
	Services       []string      `json:"services"`
	ItemCount      int           `json:"itemCount"`
	ProductSummary string        `json:"cleaningProducts"`
	TotalAmount    float64       `json:"totalAmount"`
	PaymentStatus  PaymentStatus `json:"paymentStatus"`
	Status         Status        `json:"status"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// PersistenceError wraps a failed backend write. It is terminal for the
// operation that produced it.
type PersistenceError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("orders: %s failed: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error.
func (e *PersistenceError) Unwrap() error { return e.Err }

// ReconciliationError reports a failed post-commit inventory adjustment. The
// order it accompanies is already committed and is never rolled back.
type ReconciliationError struct {
	Err error
}

// Error implements the error interface.
func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("orders: order saved, inventory reconciliation failed: %v", e.Err)
}

// Unwrap exposes the underlying error.
func (e *ReconciliationError) Unwrap() error { return e.Err }
