package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"finitefield.org/laundry-admin/internal/admin/customers"
	"finitefield.org/laundry-admin/internal/admin/inventory"
	"finitefield.org/laundry-admin/internal/platform/requestctx"
)

var tracer = otel.Tracer("finitefield.org/laundry-admin/internal/admin/orders")

// SubmissionOrigin marks orders created through this console.
const SubmissionOrigin = "admin-console"

// SubmitterDeps carries the collaborators a Submitter needs.
type SubmitterDeps struct {
	API       API
	Directory customers.Service
	Inventory inventory.Service
	Store     *inventory.Store
	Journal   *Journal

	ShopID string
	// LowStockThreshold is the on-hand level at or below which the
	// reconciliation flags an item for reorder.
	LowStockThreshold int

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Submitter runs the order submission workflow: precondition checks, stock
// validation, a pricing recompute, the persistence call, and a best-effort
// inventory reconciliation.
type Submitter struct {
	api       API
	directory customers.Service
	inventory inventory.Service
	store     *inventory.Store
	journal   *Journal
	shopID    string
	lowStock  int
	now       func() time.Time
}

// NewSubmitter validates deps and constructs a Submitter.
func NewSubmitter(deps SubmitterDeps) (*Submitter, error) {
	if deps.API == nil {
		return nil, errors.New("orders: API is required")
	}
	if deps.Directory == nil {
		return nil, errors.New("orders: customer directory is required")
	}
	if deps.Inventory == nil {
		return nil, errors.New("orders: inventory service is required")
	}
	if deps.Store == nil {
		return nil, errors.New("orders: inventory store is required")
	}
	if deps.ShopID == "" {
		return nil, errors.New("orders: shop id is required")
	}
	if deps.Journal == nil {
		deps.Journal = NewJournal()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Submitter{
		api:       deps.API,
		directory: deps.Directory,
		inventory: deps.Inventory,
		store:     deps.Store,
		journal:   deps.Journal,
		shopID:    deps.ShopID,
		lowStock:  deps.LowStockThreshold,
		now:       deps.Now,
	}, nil
}

// SubmissionResult is what Submit returns once the order is committed.
// ReconciliationErr is set when the order saved but the follow-up inventory
// adjustment failed; the order itself stands.
type SubmissionResult struct {
	Order             Order
	Receipt           string
	ReconciliationErr error
}

// Submit runs the workflow for one draft. Any error before the persistence
// call leaves the backend untouched; a persistence failure is terminal and
// is returned as a *PersistenceError. After a successful persistence call
// nothing is rolled back.
func (s *Submitter) Submit(ctx context.Context, token string, draft *Draft) (*SubmissionResult, error) {
	ctx, span := tracer.Start(ctx, "orders.Submit")
	defer span.End()

	if err := s.checkPreconditions(draft); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	customer, err := customers.Resolve(ctx, s.directory, token, s.shopID, draft.CustomerID)
	if err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMissingCustomer, draft.CustomerID)
		}
		return nil, fmt.Errorf("orders: resolve customer: %w", err)
	}

	snapshot := s.store.Snapshot()
	if err := ValidateStock(draft.Lines(), snapshot); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	draft.Recalculate()
	total := Round2(draft.TotalAmount)
	summary := ProductSummary(draft.Lines())

	req := CreateOrderRequest{
		ShopID:         s.shopID,
		CustomerID:     customer.ID,
		Shirts:         draft.Garments.Shirts,
		Pants:          draft.Garments.Pants,
		Jeans:          draft.Garments.Jeans,
		Shorts:         draft.Garments.Shorts,
		Towels:         draft.Garments.Towels,
		PillowCases:    draft.Garments.PillowCases,
		BedSheets:      draft.Garments.BedSheets,
		WeightKL:       draft.WeightKL(),
		Services:       draft.SelectedServices(),
		ItemCount:      draft.ItemCount,
		ProductSummary: summary,
		TotalAmount:    total,
		PaymentStatus:  draft.PaymentStatus(),
		Origin:         SubmissionOrigin,
	}

	laundryID, err := s.api.Create(ctx, token, req)
	if err != nil {
		span.SetStatus(codes.Error, "order persistence failed")
		return nil, &PersistenceError{Op: "order create", Err: err}
	}
	span.SetAttributes(attribute.String("order.laundry_id", laundryID))

	now := s.now()
	order := Order{
		LaundryID:      laundryID,
		ShopID:         s.shopID,
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		CustomerPhone:  customer.Phone,
		Garments:       draft.Garments,
		WeightKL:       draft.WeightKL(),
		Services:       draft.SelectedServices(),
		ItemCount:      draft.ItemCount,
		ProductSummary: summary,
		TotalAmount:    total,
		PaymentStatus:  draft.PaymentStatus(),
		Status:         StatusOnService,
		UpdatedAt:      now,
	}
	s.journal.Record(order)

	result := &SubmissionResult{
		Order:   order,
		Receipt: Receipt(order, now),
	}
	if err := s.reconcile(ctx, token, draft.Lines(), snapshot); err != nil {
		requestctx.Logger(ctx).Warn("inventory reconciliation failed",
			zap.String("laundry_id", laundryID),
			zap.Error(err),
		)
		result.ReconciliationErr = &ReconciliationError{Err: err}
	}
	return result, nil
}

func (s *Submitter) checkPreconditions(draft *Draft) error {
	if draft.CustomerID == "" {
		return ErrMissingCustomer
	}
	if draft.Empty() {
		return ErrEmptyOrder
	}
	if !draft.PaymentChosen() {
		return ErrMissingPaymentMethod
	}
	if draft.Category == nil {
		return ErrMissingCategory
	}
	return nil
}

// reconcile computes the post-sale quantities from the validated snapshot
// and pushes them as one bulk update. The new quantity never goes below
// zero. On success the local store is adjusted optimistically; on failure
// the snapshot is left alone so the next poll resynchronizes it.
func (s *Submitter) reconcile(ctx context.Context, token string, lines []Line, snapshot []inventory.Item) error {
	if len(lines) == 0 {
		return nil
	}
	onHand := make(map[string]int, len(snapshot))
	for _, item := range snapshot {
		onHand[item.ID] = item.Quantity
	}
	updates := make([]inventory.Update, 0, len(lines))
	for _, line := range lines {
		remaining := onHand[line.ItemID] - line.Quantity
		if remaining < 0 {
			remaining = 0
		}
		updates = append(updates, inventory.Update{
			ID:            line.ItemID,
			Quantity:      remaining,
			ReorderMarker: remaining <= s.lowStock,
		})
	}
	if err := s.inventory.BulkUpdate(ctx, token, updates); err != nil {
		return err
	}
	s.store.Apply(updates)
	return nil
}
