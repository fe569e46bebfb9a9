package dashboard

import (
	"time"

	"finitefield.org/laundry-admin/internal/admin/orders"
)

// Summary is the session-level overview shown on the console landing view.
// It is computed from orders submitted through this console; the backend
// exposes no reporting endpoints.
type Summary struct {
	GeneratedAt time.Time `json:"generatedAt"`

	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`

	OnService     int `json:"onService"`
	ReadyToPickup int `json:"readyToPickup"`
	Completed     int `json:"completed"`

	// PendingPayments counts pay-later orders not yet settled.
	PendingPayments int `json:"pendingPayments"`
}

// StockAlert flags an inventory item at or below the reorder level.
type StockAlert struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Activity is one entry in the recent-orders feed.
type Activity struct {
	LaundryID    string        `json:"laundryId"`
	CustomerName string        `json:"customerName"`
	Status       orders.Status `json:"status"`
	TotalAmount  float64       `json:"totalAmount"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}
