package orders_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/laundry-admin/internal/admin/orders"
)

func TestStatusSequence(t *testing.T) {
	t.Parallel()

	next, ok := orders.StatusOnService.Next()
	require.True(t, ok)
	require.Equal(t, orders.StatusReadyToPickup, next)

	next, ok = orders.StatusReadyToPickup.Next()
	require.True(t, ok)
	require.Equal(t, orders.StatusLaundryDone, next)

	_, ok = orders.StatusLaundryDone.Next()
	require.False(t, ok)
	require.True(t, orders.StatusLaundryDone.Terminal())
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	status, err := orders.ParseStatus("On Service")
	require.NoError(t, err)
	require.Equal(t, orders.StatusOnService, status)

	_, err = orders.ParseStatus("on service")
	require.Error(t, err)
}

func TestJournalOrdering(t *testing.T) {
	t.Parallel()

	journal := orders.NewJournal()
	journal.Record(orders.Order{LaundryID: "L-1", Status: orders.StatusOnService})
	journal.Record(orders.Order{LaundryID: "L-2", Status: orders.StatusOnService})
	journal.Update(orders.Order{LaundryID: "L-1", Status: orders.StatusReadyToPickup})

	list := journal.List()
	require.Len(t, list, 2)
	require.Equal(t, "L-2", list[0].LaundryID)
	require.Equal(t, "L-1", list[1].LaundryID)
	require.Equal(t, orders.StatusReadyToPickup, list[1].Status)
	require.Equal(t, 2, journal.Len())
}
