package orders_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/laundry-admin/internal/admin/catalog"
	"finitefield.org/laundry-admin/internal/admin/inventory"
	"finitefield.org/laundry-admin/internal/admin/orders"
)

func regularCategory() *catalog.ServiceCategory {
	return &catalog.ServiceCategory{
		ID:       "cat-regular",
		Category: "Regular",
		Price:    140,
		Unit:     "per load",
	}
}

func TestComputeTotalsCategoryTimesBatch(t *testing.T) {
	t.Parallel()

	draft := orders.NewDraft("draft-1")
	draft.Category = regularCategory()
	require.NoError(t, draft.SetBatch("2"))
	draft.Garments.Shirts = 5
	draft.Garments.Pants = 3

	totals := orders.ComputeTotals(draft)
	require.InDelta(t, 280.0, totals.Amount, 1e-9)
	require.Equal(t, 8, totals.ItemCount)
	require.InDelta(t, 14.0, draft.WeightKL(), 1e-9)
}

func TestComputeTotalsIncludesProductLines(t *testing.T) {
	t.Parallel()

	draft := orders.NewDraft("draft-2")
	draft.Category = regularCategory()
	require.NoError(t, draft.SetBatch("1"))
	draft.Garments.Towels = 2
	draft.SelectLine(inventory.Item{ID: "inv-detergent", Name: "Detergent", UnitPrice: 15, Quantity: 5}, 2)
	draft.SelectLine(inventory.Item{ID: "inv-bleach", Name: "Bleach", UnitPrice: 10, Quantity: 3}, 1)

	totals := orders.ComputeTotals(draft)
	require.InDelta(t, 140+30+10, totals.Amount, 1e-9)
	require.Equal(t, 2+2+1, totals.ItemCount)
}

func TestComputeTotalsWithoutBatchSkipsCategory(t *testing.T) {
	t.Parallel()

	draft := orders.NewDraft("draft-3")
	draft.Category = regularCategory()
	draft.SelectLine(inventory.Item{ID: "inv-bag", Name: "Laundry Bag", UnitPrice: 25, Quantity: 20}, 1)

	totals := orders.ComputeTotals(draft)
	require.InDelta(t, 25.0, totals.Amount, 1e-9)
	require.Equal(t, 1, totals.ItemCount)
}

func TestComputeTotalsClearedBatchDropsWeight(t *testing.T) {
	t.Parallel()

	draft := orders.NewDraft("draft-4")
	draft.Category = regularCategory()
	require.NoError(t, draft.SetBatch("2.5"))
	require.InDelta(t, 17.5, draft.WeightKL(), 1e-9)

	require.NoError(t, draft.SetBatch(""))
	_, set := draft.Batch()
	require.False(t, set)
	require.Zero(t, draft.WeightKL())
	require.Zero(t, orders.ComputeTotals(draft).Amount)
}

func TestWeightForBatchIdempotent(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 21.0, orders.WeightForBatch(3), 1e-9)
	require.InDelta(t, orders.WeightForBatch(3), orders.WeightForBatch(3), 1e-9)
	require.Zero(t, orders.WeightForBatch(0))
}

func TestRound2(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 280.0, orders.Round2(280.0000000001), 1e-9)
	require.InDelta(t, 10.56, orders.Round2(10.555), 1e-9)
	require.InDelta(t, 0.1, orders.Round2(0.1), 1e-9)
}
