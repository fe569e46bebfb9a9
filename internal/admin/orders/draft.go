package orders

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"finitefield.org/laundry-admin/internal/admin/catalog"
	"finitefield.org/laundry-admin/internal/admin/inventory"
)

// ErrInvalidBatch is returned when the batch field holds a non-numeric or
// negative value.
var ErrInvalidBatch = errors.New("orders: batch must be a non-negative number")

// GarmentCounts holds the per-garment tallies entered on the order form.
type GarmentCounts struct {
	Shirts      int `json:"shirts"`
	Pants       int `json:"pants"`
	Jeans       int `json:"jeans"`
	Shorts      int `json:"shorts"`
	Towels      int `json:"towels"`
	PillowCases int `json:"pillowCases"`
	BedSheets   int `json:"bedSheets"`
}

// Total sums all garment counts.
func (g GarmentCounts) Total() int {
	return g.Shirts + g.Pants + g.Jeans + g.Shorts + g.Towels + g.PillowCases + g.BedSheets
}

// HasNegative reports whether any tally is below zero. Counts are rejected
// at the input boundary before they reach a draft.
func (g GarmentCounts) HasNegative() bool {
	return g.Shirts < 0 || g.Pants < 0 || g.Jeans < 0 || g.Shorts < 0 ||
		g.Towels < 0 || g.PillowCases < 0 || g.BedSheets < 0
}

// Line is a cleaning product attached to a draft. Subtotal is fixed at
// selection time from the snapshot price the clerk saw.
type Line struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type paymentChoice int

const (
	paymentUnset paymentChoice = iota
	paymentNow
	paymentLater
)

// Draft is an order being assembled in the console. It accumulates form
// input and derives weight, item count and the running total; nothing is
// persisted until the draft goes through a Submitter.
type Draft struct {
	ID         string
	CustomerID string
	Garments   GarmentCounts
	Category   *catalog.ServiceCategory

	batch    float64
	batchSet bool
	weightKL float64

	services map[string]bool
	lines    []Line
	payment  paymentChoice

	// TotalAmount and ItemCount hold the most recent Recalculate result.
	TotalAmount float64
	ItemCount   int
}

// NewDraft returns an empty draft with the given local reference id.
func NewDraft(id string) *Draft {
	return &Draft{
		ID:       id,
		services: make(map[string]bool),
	}
}

// SetBatch parses the batch field. An empty value clears the batch and the
// derived weight; anything non-numeric or negative is rejected and leaves
// the draft untouched.
func (d *Draft) SetBatch(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.batch = 0
		d.batchSet = false
		d.weightKL = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return ErrInvalidBatch
	}
	d.batch = v
	d.batchSet = true
	d.weightKL = WeightForBatch(v)
	return nil
}

// Batch returns the parsed batch value and whether the field is set.
func (d *Draft) Batch() (float64, bool) { return d.batch, d.batchSet }

// WeightKL returns the derived load weight in kilos.
func (d *Draft) WeightKL() float64 { return d.weightKL }

// SelectService toggles one of the displayed service offerings by name.
func (d *Draft) SelectService(name string, selected bool) {
	if d.services == nil {
		d.services = make(map[string]bool)
	}
	if selected {
		d.services[name] = true
		return
	}
	delete(d.services, name)
}

// SelectedServices returns the chosen service names in sorted order.
func (d *Draft) SelectedServices() []string {
	out := make([]string, 0, len(d.services))
	for name := range d.services {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SelectLine attaches a cleaning product to the draft at the unit price from
// the inventory snapshot. Re-selecting an item replaces its quantity and
// re-fixes the subtotal at the item's current snapshot price.
func (d *Draft) SelectLine(item inventory.Item, quantity int) {
	line := Line{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  quantity,
		Subtotal:  item.UnitPrice * float64(quantity),
	}
	for i := range d.lines {
		if d.lines[i].ItemID == item.ID {
			d.lines[i] = line
			return
		}
	}
	d.lines = append(d.lines, line)
}

// DeselectLine removes a cleaning product from the draft.
func (d *Draft) DeselectLine(itemID string) {
	for i := range d.lines {
		if d.lines[i].ItemID == itemID {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the attached product lines in selection order.
func (d *Draft) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// SetPayNow marks the order as settled at drop-off, clearing pay-later.
func (d *Draft) SetPayNow() { d.payment = paymentNow }

// SetPayLater marks the order as settled at pick-up, clearing pay-now.
func (d *Draft) SetPayLater() { d.payment = paymentLater }

// ClearPayment resets the payment choice.
func (d *Draft) ClearPayment() { d.payment = paymentUnset }

// PayNow reports whether pay-now is the chosen settlement.
func (d *Draft) PayNow() bool { return d.payment == paymentNow }

// PayLater reports whether pay-later is the chosen settlement.
func (d *Draft) PayLater() bool { return d.payment == paymentLater }

// PaymentChosen reports whether either settlement option is selected.
func (d *Draft) PaymentChosen() bool { return d.payment != paymentUnset }

// PaymentStatus maps the settlement choice to the backend value. It is only
// meaningful when PaymentChosen is true.
func (d *Draft) PaymentStatus() PaymentStatus {
	if d.payment == paymentNow {
		return PaymentPaid
	}
	return PaymentPending
}

// Empty reports whether the draft carries neither garments nor product lines.
func (d *Draft) Empty() bool {
	return d.Garments.Total() == 0 && len(d.lines) == 0
}

// Recalculate refreshes TotalAmount and ItemCount from the current inputs.
func (d *Draft) Recalculate() {
	totals := ComputeTotals(d)
	d.TotalAmount = totals.Amount
	d.ItemCount = totals.ItemCount
}
