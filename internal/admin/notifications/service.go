package notifications

import (
	"context"
	"errors"
)

// ErrNotConfigured indicates the notifications sender dependency has not been provided.
var ErrNotConfigured = errors.New("notifications: sender not configured")

// Sender delivers a text message to a customer's contact number via the
// backend SMS gateway.
type Sender interface {
	Send(ctx context.Context, token string, msg Message) (Delivery, error)
}

// Message is a single outbound SMS.
type Message struct {
	Recipient string `json:"recipient"`
	Body      string `json:"message"`
}

// Delivery reports the gateway's view of an accepted message.
type Delivery struct {
	ProviderStatus string `json:"providerStatus"`
}
