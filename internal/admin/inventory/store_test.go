package inventory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/laundry-admin/internal/admin/inventory"
)

func TestStoreReplaceAndSnapshot(t *testing.T) {
	t.Parallel()

	store := inventory.NewStore()
	store.Replace([]inventory.Item{
		{ID: "inv-softener", Name: "Fabric Softener", UnitPrice: 12, Quantity: 8},
		{ID: "inv-detergent", Name: "Detergent", UnitPrice: 15, Quantity: 5},
	})

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 2)
	require.Equal(t, "Detergent", snapshot[0].Name, "snapshot is sorted by name")

	// Mutating the returned copy never reaches the store.
	snapshot[0].Quantity = 0
	item, ok := store.Lookup("inv-detergent")
	require.True(t, ok)
	require.Equal(t, 5, item.Quantity)
}

func TestStoreApplyClampsAtZero(t *testing.T) {
	t.Parallel()

	store := inventory.NewStore()
	store.Replace([]inventory.Item{
		{ID: "inv-detergent", Name: "Detergent", UnitPrice: 15, Quantity: 5},
	})

	store.Apply([]inventory.Update{{ID: "inv-detergent", Quantity: -2}})

	item, ok := store.Lookup("inv-detergent")
	require.True(t, ok)
	require.Equal(t, 0, item.Quantity)
}

func TestStoreApplyIgnoresUnknownIDs(t *testing.T) {
	t.Parallel()

	store := inventory.NewStore()
	store.Replace([]inventory.Item{
		{ID: "inv-detergent", Name: "Detergent", UnitPrice: 15, Quantity: 5},
	})

	store.Apply([]inventory.Update{{ID: "inv-unknown", Quantity: 1}})
	require.Equal(t, 1, store.Len())
}

func TestStoreLastReplaceWins(t *testing.T) {
	t.Parallel()

	// Two refreshes racing: whichever Replace lands last defines the
	// snapshot wholesale. There is no merge of overlapping responses.
	store := inventory.NewStore()
	store.Replace([]inventory.Item{{ID: "inv-a", Name: "A", Quantity: 1}})
	store.Replace([]inventory.Item{{ID: "inv-b", Name: "B", Quantity: 2}})

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 1)
	require.Equal(t, "inv-b", snapshot[0].ID)
}

func TestPollerRefresh(t *testing.T) {
	t.Parallel()

	svc := inventory.NewStaticService()
	store := inventory.NewStore()
	poller := inventory.NewPoller(svc, store, "token", "shop-1", time.Minute, nil)

	require.NoError(t, poller.Refresh(context.Background()))
	require.Equal(t, 4, store.Len())
}

func TestPollerRefreshFailureKeepsSnapshot(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	svc, err := inventory.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	store := inventory.NewStore()
	store.Replace([]inventory.Item{{ID: "inv-a", Name: "A", Quantity: 1}})

	poller := inventory.NewPoller(svc, store, "token", "shop-1", time.Minute, nil)
	require.Error(t, poller.Refresh(context.Background()))
	require.Equal(t, 1, store.Len(), "stale snapshot survives a failed refresh")
}
