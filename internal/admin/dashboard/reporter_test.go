package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/laundry-admin/internal/admin/dashboard"
	"finitefield.org/laundry-admin/internal/admin/inventory"
	"finitefield.org/laundry-admin/internal/admin/orders"
)

func newReporterFixture(t *testing.T) (*dashboard.Reporter, *orders.Journal, *inventory.Store) {
	t.Helper()

	journal := orders.NewJournal()
	store := inventory.NewStore()
	reporter, err := dashboard.NewReporter(journal, store, 3)
	require.NoError(t, err)
	return reporter, journal, store
}

func TestSummaryTallies(t *testing.T) {
	t.Parallel()

	reporter, journal, _ := newReporterFixture(t)
	journal.Record(orders.Order{LaundryID: "L-1", TotalAmount: 310, Status: orders.StatusOnService, PaymentStatus: orders.PaymentPaid})
	journal.Record(orders.Order{LaundryID: "L-2", TotalAmount: 140.555, Status: orders.StatusReadyToPickup, PaymentStatus: orders.PaymentPending})
	journal.Record(orders.Order{LaundryID: "L-3", TotalAmount: 200, Status: orders.StatusLaundryDone, PaymentStatus: orders.PaymentPending})

	s := reporter.Summary()
	require.Equal(t, 3, s.Orders)
	require.InDelta(t, 650.56, s.Revenue, 1e-9)
	require.Equal(t, 1, s.OnService)
	require.Equal(t, 1, s.ReadyToPickup)
	require.Equal(t, 1, s.Completed)
	require.Equal(t, 2, s.PendingPayments)
}

func TestSummaryEmptyJournal(t *testing.T) {
	t.Parallel()

	reporter, _, _ := newReporterFixture(t)
	s := reporter.Summary()
	require.Zero(t, s.Orders)
	require.Zero(t, s.Revenue)
}

func TestLowStockSortsByQuantity(t *testing.T) {
	t.Parallel()

	reporter, _, store := newReporterFixture(t)
	store.Replace([]inventory.Item{
		{ID: "inv-bag", Name: "Laundry Bag", Quantity: 20},
		{ID: "inv-bleach", Name: "Bleach", Quantity: 3},
		{ID: "inv-detergent", Name: "Detergent", Quantity: 0},
		{ID: "inv-softener", Name: "Fabric Softener", Quantity: 3},
	})

	alerts := reporter.LowStock()
	require.Len(t, alerts, 3)
	require.Equal(t, "inv-detergent", alerts[0].ItemID)
	require.Equal(t, "Bleach", alerts[1].Name)
	require.Equal(t, "Fabric Softener", alerts[2].Name)
}

func TestRecentActivityLimit(t *testing.T) {
	t.Parallel()

	reporter, journal, _ := newReporterFixture(t)
	journal.Record(orders.Order{LaundryID: "L-1", CustomerName: "Maria Santos", Status: orders.StatusOnService})
	journal.Record(orders.Order{LaundryID: "L-2", CustomerName: "Jose Ramirez", Status: orders.StatusOnService})
	journal.Record(orders.Order{LaundryID: "L-3", CustomerName: "Ana dela Cruz", Status: orders.StatusOnService})

	feed := reporter.RecentActivity(2)
	require.Len(t, feed, 2)
	require.Equal(t, "L-3", feed[0].LaundryID)
	require.Equal(t, "L-2", feed[1].LaundryID)

	require.Len(t, reporter.RecentActivity(0), 3)
}
