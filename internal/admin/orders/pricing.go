package orders

import "math"

// KilosPerBatch is the fixed conversion from batch count to load weight.
const KilosPerBatch = 7

// Totals is the derived monetary and count summary of a draft.
type Totals struct {
	Amount    float64
	ItemCount int
}

// WeightForBatch converts a batch count into kilos. Pure and idempotent; the
// console shows it as an estimate, the shop never weighs per garment.
func WeightForBatch(batch float64) float64 {
	return batch * KilosPerBatch
}

// ComputeTotals derives the order total and item count from a draft.
//
// The amount is the category price times the batch count plus the subtotal
// of every attached product line. The item count is the garment tally plus
// the product quantities. Intermediate arithmetic stays unrounded; callers
// round with Round2 only when displaying or submitting.
func ComputeTotals(d *Draft) Totals {
	count := d.Garments.Total()
	var amount float64
	for _, line := range d.lines {
		amount += line.Subtotal
		count += line.Quantity
	}
	if d.Category != nil && d.batchSet {
		amount += d.Category.Price * d.batch
	}
	return Totals{Amount: amount, ItemCount: count}
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
