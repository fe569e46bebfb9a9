package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/laundry-admin/internal/admin/notifications"
	"finitefield.org/laundry-admin/internal/admin/orders"
)

func seededOrder(t *testing.T, api *orders.StaticAPI) orders.Order {
	t.Helper()

	id, err := api.Create(context.Background(), "token", orders.CreateOrderRequest{ShopID: "shop-001"})
	require.NoError(t, err)
	return orders.Order{
		LaundryID:     id,
		ShopID:        "shop-001",
		CustomerName:  "Maria Santos",
		CustomerPhone: "+63-917-555-0101",
		Status:        orders.StatusOnService,
		UpdatedAt:     time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestAdvanceWalksTheFullSequence(t *testing.T) {
	t.Parallel()

	api := orders.NewStaticAPI()
	sender := notifications.NewStaticSender()
	lc, err := orders.NewLifecycle(api, sender, orders.NewJournal())
	require.NoError(t, err)

	order := seededOrder(t, api)

	result, err := lc.Advance(context.Background(), "token", order)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, orders.StatusReadyToPickup, result.Order.Status)

	result, err = lc.Advance(context.Background(), "token", result.Order)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Equal(t, orders.StatusLaundryDone, result.Order.Status)

	// Terminal: no transition and no backend request.
	final, err := lc.Advance(context.Background(), "token", result.Order)
	require.NoError(t, err)
	require.False(t, final.Changed)
	require.Equal(t, orders.StatusLaundryDone, final.Order.Status)

	status, ok := api.StatusOf(order.LaundryID)
	require.True(t, ok)
	require.Equal(t, orders.StatusLaundryDone, status)

	// One SMS per committed transition, none for the terminal no-op.
	sent := sender.Sent()
	require.Len(t, sent, 2)
	require.Contains(t, sent[0].Body, `"Ready to pick up"`)
	require.Contains(t, sent[1].Body, `"Laundry Done"`)
	require.Equal(t, "+63-917-555-0101", sent[0].Recipient)
}

func TestAdvanceTerminalIssuesNoRequest(t *testing.T) {
	t.Parallel()

	api := orders.NewStaticAPI()
	api.UpdateErr = errors.New("should not be called")
	lc, err := orders.NewLifecycle(api, nil, nil)
	require.NoError(t, err)

	result, err := lc.Advance(context.Background(), "token", orders.Order{
		LaundryID: "L-1001",
		Status:    orders.StatusLaundryDone,
	})
	require.NoError(t, err)
	require.False(t, result.Changed)
}

func TestAdvanceRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	api := orders.NewStaticAPI()
	api.UpdateErr = errors.New("should not be called")
	lc, err := orders.NewLifecycle(api, nil, nil)
	require.NoError(t, err)

	// A corrupt status is an error, not a quiet terminal no-op.
	result, err := lc.Advance(context.Background(), "token", orders.Order{
		LaundryID: "L-1001",
		Status:    orders.Status("Folded"),
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Folded")
	require.False(t, result.Changed)
}

func TestAdvanceBackendFailureLeavesStatus(t *testing.T) {
	t.Parallel()

	api := orders.NewStaticAPI()
	sender := notifications.NewStaticSender()
	lc, err := orders.NewLifecycle(api, sender, nil)
	require.NoError(t, err)

	order := seededOrder(t, api)
	api.UpdateErr = errors.New("backend unavailable")

	result, err := lc.Advance(context.Background(), "token", order)

	var persistErr *orders.PersistenceError
	require.ErrorAs(t, err, &persistErr)
	require.Equal(t, orders.StatusOnService, result.Order.Status)
	require.Empty(t, sender.Sent())
}

func TestAdvanceNotificationFailureKeepsTransition(t *testing.T) {
	t.Parallel()

	api := orders.NewStaticAPI()
	sender := notifications.NewStaticSender()
	sender.Err = errors.New("gateway down")
	journal := orders.NewJournal()
	lc, err := orders.NewLifecycle(api, sender, journal)
	require.NoError(t, err)

	order := seededOrder(t, api)
	journal.Record(order)

	result, err := lc.Advance(context.Background(), "token", order)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.Error(t, result.NotificationErr)
	require.Equal(t, orders.StatusReadyToPickup, result.Order.Status)

	// The journal reflects the committed transition despite the failed SMS.
	recorded, ok := journal.Get(order.LaundryID)
	require.True(t, ok)
	require.Equal(t, orders.StatusReadyToPickup, recorded.Status)
}

func TestAdvanceWithoutPhoneReportsNoRecipient(t *testing.T) {
	t.Parallel()

	api := orders.NewStaticAPI()
	lc, err := orders.NewLifecycle(api, notifications.NewStaticSender(), nil)
	require.NoError(t, err)

	order := seededOrder(t, api)
	order.CustomerPhone = ""

	result, err := lc.Advance(context.Background(), "token", order)
	require.NoError(t, err)
	require.True(t, result.Changed)
	require.ErrorIs(t, result.NotificationErr, orders.ErrNoRecipient)
}

func TestNotifyResend(t *testing.T) {
	t.Parallel()

	api := orders.NewStaticAPI()
	sender := notifications.NewStaticSender()
	lc, err := orders.NewLifecycle(api, sender, nil)
	require.NoError(t, err)

	order := seededOrder(t, api)
	order.Status = orders.StatusReadyToPickup

	require.NoError(t, lc.Notify(context.Background(), "token", order))
	sent := sender.Sent()
	require.Len(t, sent, 1)
	require.Contains(t, sent[0].Body, order.LaundryID)
}
