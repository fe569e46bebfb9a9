package orders_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/laundry-admin/internal/admin/inventory"
	"finitefield.org/laundry-admin/internal/admin/orders"
)

func snapshotFixture() []inventory.Item {
	return []inventory.Item{
		{ID: "inv-detergent", Name: "Detergent", UnitPrice: 15, Quantity: 5},
		{ID: "inv-bleach", Name: "Bleach", UnitPrice: 10, Quantity: 3},
	}
}

func TestValidateStockPasses(t *testing.T) {
	t.Parallel()

	lines := []orders.Line{
		{ItemID: "inv-detergent", Name: "Detergent", Quantity: 5},
		{ItemID: "inv-bleach", Name: "Bleach", Quantity: 1},
	}
	require.NoError(t, orders.ValidateStock(lines, snapshotFixture()))
}

func TestValidateStockRejectsOverRequest(t *testing.T) {
	t.Parallel()

	lines := []orders.Line{{ItemID: "inv-detergent", Name: "Detergent", Quantity: 7}}
	err := orders.ValidateStock(lines, snapshotFixture())

	var stockErr *orders.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, "Detergent", stockErr.Item)
	require.Equal(t, 5, stockErr.Available)
	require.Equal(t, 7, stockErr.Requested)
}

func TestValidateStockRejectsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	lines := []orders.Line{{ItemID: "inv-bleach", Name: "Bleach", Quantity: 0}}
	var stockErr *orders.InsufficientStockError
	require.ErrorAs(t, orders.ValidateStock(lines, snapshotFixture()), &stockErr)
}

func TestValidateStockRejectsUnknownItem(t *testing.T) {
	t.Parallel()

	lines := []orders.Line{{ItemID: "inv-ghost", Name: "Ghost", Quantity: 1}}
	var stockErr *orders.InsufficientStockError
	require.ErrorAs(t, orders.ValidateStock(lines, snapshotFixture()), &stockErr)
	require.Zero(t, stockErr.Available)
}
