package dashboard

import (
	"errors"
	"sort"
	"time"

	"finitefield.org/laundry-admin/internal/admin/inventory"
	"finitefield.org/laundry-admin/internal/admin/orders"
)

// Reporter derives the console overview from the in-memory order journal
// and the cached inventory snapshot.
type Reporter struct {
	journal   *orders.Journal
	store     *inventory.Store
	threshold int
	now       func() time.Time
}

// NewReporter constructs a Reporter. threshold is the on-hand level at or
// below which an item appears in LowStock.
func NewReporter(journal *orders.Journal, store *inventory.Store, threshold int) (*Reporter, error) {
	if journal == nil {
		return nil, errors.New("dashboard: order journal is required")
	}
	if store == nil {
		return nil, errors.New("dashboard: inventory store is required")
	}
	return &Reporter{
		journal:   journal,
		store:     store,
		threshold: threshold,
		now:       time.Now,
	}, nil
}

// Summary tallies the session's orders by status and payment disposition.
func (r *Reporter) Summary() Summary {
	s := Summary{GeneratedAt: r.now()}
	for _, order := range r.journal.List() {
		s.Orders++
		s.Revenue += order.TotalAmount
		switch order.Status {
		case orders.StatusOnService:
			s.OnService++
		case orders.StatusReadyToPickup:
			s.ReadyToPickup++
		case orders.StatusLaundryDone:
			s.Completed++
		}
		if order.PaymentStatus == orders.PaymentPending {
			s.PendingPayments++
		}
	}
	s.Revenue = orders.Round2(s.Revenue)
	return s
}

// LowStock lists items at or below the reorder level, lowest quantity first.
func (r *Reporter) LowStock() []StockAlert {
	var alerts []StockAlert
	for _, item := range r.store.Snapshot() {
		if item.Quantity <= r.threshold {
			alerts = append(alerts, StockAlert{
				ItemID:   item.ID,
				Name:     item.Name,
				Quantity: item.Quantity,
			})
		}
	}
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Quantity != alerts[j].Quantity {
			return alerts[i].Quantity < alerts[j].Quantity
		}
		return alerts[i].Name < alerts[j].Name
	})
	return alerts
}

// RecentActivity returns the latest journal entries, most recent first.
// A non-positive limit returns everything.
func (r *Reporter) RecentActivity(limit int) []Activity {
	list := r.journal.List()
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]Activity, 0, len(list))
	for _, order := range list {
		out = append(out, Activity{
			LaundryID:    order.LaundryID,
			CustomerName: order.CustomerName,
			Status:       order.Status,
			TotalAmount:  order.TotalAmount,
			UpdatedAt:    order.UpdatedAt,
		})
	}
	return out
}
