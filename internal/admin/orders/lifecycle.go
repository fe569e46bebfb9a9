package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"finitefield.org/laundry-admin/internal/admin/notifications"
	"finitefield.org/laundry-admin/internal/platform/requestctx"
)

// ErrNoRecipient is returned when a notification is requested for an order
// whose customer has no phone number on file.
var ErrNoRecipient = errors.New("orders: customer has no phone number")

// Lifecycle advances persisted orders through the service status sequence
// and notifies the customer after each committed transition.
type Lifecycle struct {
	api     API
	sender  notifications.Sender
	journal *Journal
	now     func() time.Time
}

// NewLifecycle constructs a Lifecycle. The sender may be nil, in which case
// transitions commit without customer notifications.
func NewLifecycle(api API, sender notifications.Sender, journal *Journal) (*Lifecycle, error) {
	if api == nil {
		return nil, errors.New("orders: API is required")
	}
	if journal == nil {
		journal = NewJournal()
	}
	return &Lifecycle{
		api:     api,
		sender:  sender,
		journal: journal,
		now:     time.Now,
	}, nil
}

// AdvanceResult reports the outcome of one Advance call. Changed is false
// when the order was already terminal. NotificationErr is set when the
// transition committed but the customer SMS failed; the transition stands.
type AdvanceResult struct {
	Order           Order
	Changed         bool
	NotificationErr error
}

// Advance moves the order to the next status. At the terminal status it is
// a no-op and issues no backend request. A failed backend write leaves the
// local record unchanged and returns a *PersistenceError.
func (l *Lifecycle) Advance(ctx context.Context, token string, order Order) (AdvanceResult, error) {
	ctx, span := tracer.Start(ctx, "orders.Advance")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.laundry_id", order.LaundryID),
		attribute.String("order.status", string(order.Status)),
	)

	if !order.Status.Valid() {
		return AdvanceResult{Order: order}, fmt.Errorf("orders: unknown status %q", order.Status)
	}
	next, ok := order.Status.Next()
	if !ok {
		return AdvanceResult{Order: order}, nil
	}

	if err := l.api.UpdateStatus(ctx, token, order.LaundryID, next); err != nil {
		return AdvanceResult{Order: order}, &PersistenceError{Op: "status update", Err: err}
	}

	order.Status = next
	order.UpdatedAt = l.now()
	l.journal.Update(order)

	result := AdvanceResult{Order: order, Changed: true}
	if err := l.notify(ctx, token, order); err != nil {
		requestctx.Logger(ctx).Warn("status notification failed",
			zap.String("laundry_id", order.LaundryID),
			zap.String("status", string(order.Status)),
			zap.Error(err),
		)
		result.NotificationErr = err
	}
	return result, nil
}

// Notify re-sends the status SMS for an order's current status. Used after
// a failed automatic notification.
func (l *Lifecycle) Notify(ctx context.Context, token string, order Order) error {
	return l.notify(ctx, token, order)
}

func (l *Lifecycle) notify(ctx context.Context, token string, order Order) error {
	if l.sender == nil {
		return nil
	}
	if order.CustomerPhone == "" {
		return ErrNoRecipient
	}
	_, err := l.sender.Send(ctx, token, notifications.Message{
		Recipient: order.CustomerPhone,
		Body:      notifications.StatusMessage(order.LaundryID, string(order.Status), order.UpdatedAt),
	})
	return err
}
