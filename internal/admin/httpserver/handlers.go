package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"

	"finitefield.org/laundry-admin/internal/admin/catalog"
	"finitefield.org/laundry-admin/internal/admin/orders"
	"finitefield.org/laundry-admin/internal/platform/httpx"
	"finitefield.org/laundry-admin/internal/platform/requestctx"
)

type handlers struct {
	deps Deps
}

func newHandlers(deps Deps) *handlers {
	return &handlers{deps: deps}
}

// Health reports liveness.
func (h *handlers) Health(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListServices returns the displayed service offerings.
func (h *handlers) ListServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	services, err := h.deps.Catalog.Services(ctx, requestctx.Token(ctx), h.deps.ShopID)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("backend_error", err.Error(), http.StatusBadGateway))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"services": services})
}

// ListPrices returns the priced service categories.
func (h *handlers) ListPrices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	prices, err := h.deps.Catalog.Prices(ctx, requestctx.Token(ctx), h.deps.ShopID)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("backend_error", err.Error(), http.StatusBadGateway))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"prices": prices})
}

// ListInventory serves the cached snapshot; the poller keeps it fresh.
func (h *handlers) ListInventory(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": h.deps.Store.Snapshot()})
}

// RefreshInventory forces a fetch-and-replace cycle outside the poll timer.
func (h *handlers) RefreshInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.deps.Poller.Refresh(ctx); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("backend_error", err.Error(), http.StatusBadGateway))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": h.deps.Store.Snapshot()})
}

// SearchCustomers proxies the directory search. An empty query lists all.
func (h *handlers) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	matches, err := h.deps.Customers.Search(ctx, requestctx.Token(ctx), h.deps.ShopID, query)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("backend_error", err.Error(), http.StatusBadGateway))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"customers": matches})
}

type productSelection struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type submitOrderRequest struct {
	CustomerID string               `json:"customerId"`
	Garments   orders.GarmentCounts `json:"garments"`
	Batch      string               `json:"batch"`
	CategoryID string               `json:"categoryId"`
	Services   []string             `json:"services"`
	Products   []productSelection   `json:"products"`
	// Payment is "now" or "later".
	Payment string `json:"payment"`
}

// SubmitOrder assembles a draft from the request body and runs the
// submission workflow.
func (h *handlers) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer r.Body.Close()
	var body submitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "malformed JSON body", http.StatusBadRequest))
		return
	}

	draft, errResp := h.buildDraft(r, body)
	if errResp != nil {
		httpx.WriteError(ctx, w, *errResp)
		return
	}

	result, err := h.deps.Submitter.Submit(ctx, requestctx.Token(ctx), draft)
	if err != nil {
		httpx.WriteError(ctx, w, submitError(err))
		return
	}

	payload := map[string]any{
		"order":   result.Order,
		"receipt": result.Receipt,
	}
	if result.ReconciliationErr != nil {
		payload["warning"] = result.ReconciliationErr.Error()
	}
	httpx.WriteJSON(w, http.StatusCreated, payload)
}

func (h *handlers) buildDraft(r *http.Request, body submitOrderRequest) (*orders.Draft, *httpx.Error) {
	if body.Garments.HasNegative() {
		e := httpx.NewError("validation_failed", "garment counts must be non-negative", http.StatusUnprocessableEntity)
		return nil, &e
	}

	draft := orders.NewDraft(ulid.Make().String())
	draft.CustomerID = strings.TrimSpace(body.CustomerID)
	draft.Garments = body.Garments

	if err := draft.SetBatch(body.Batch); err != nil {
		e := httpx.NewError("validation_failed", err.Error(), http.StatusUnprocessableEntity)
		return nil, &e
	}

	if categoryID := strings.TrimSpace(body.CategoryID); categoryID != "" {
		category, errResp := h.lookupCategory(r, categoryID)
		if errResp != nil {
			return nil, errResp
		}
		draft.Category = category
	}

	for _, name := range body.Services {
		if name = strings.TrimSpace(name); name != "" {
			draft.SelectService(name, true)
		}
	}

	for _, selection := range body.Products {
		item, ok := h.deps.Store.Lookup(selection.ItemID)
		if !ok {
			e := httpx.NewError("unknown_item", "unknown inventory item", http.StatusUnprocessableEntity).
				WithDetails(map[string]any{"item_id": selection.ItemID})
			return nil, &e
		}
		draft.SelectLine(item, selection.Quantity)
	}

	switch strings.ToLower(strings.TrimSpace(body.Payment)) {
	case "now":
		draft.SetPayNow()
	case "later":
		draft.SetPayLater()
	case "":
	default:
		e := httpx.NewError("validation_failed", "payment must be \"now\" or \"later\"", http.StatusUnprocessableEntity)
		return nil, &e
	}

	return draft, nil
}

func (h *handlers) lookupCategory(r *http.Request, categoryID string) (*catalog.ServiceCategory, *httpx.Error) {
	ctx := r.Context()
	prices, err := h.deps.Catalog.Prices(ctx, requestctx.Token(ctx), h.deps.ShopID)
	if err != nil {
		e := httpx.NewError("backend_error", err.Error(), http.StatusBadGateway)
		return nil, &e
	}
	for i := range prices {
		if prices[i].ID == categoryID {
			return &prices[i], nil
		}
	}
	e := httpx.NewError("unknown_category", "unknown service category", http.StatusUnprocessableEntity).
		WithDetails(map[string]any{"category_id": categoryID})
	return nil, &e
}

func submitError(err error) httpx.Error {
	var stockErr *orders.InsufficientStockError
	if errors.As(err, &stockErr) {
		return httpx.NewError("insufficient_stock", stockErr.Error(), http.StatusConflict).
			WithDetails(map[string]any{
				"item":      stockErr.Item,
				"available": stockErr.Available,
				"requested": stockErr.Requested,
			})
	}
	var persistErr *orders.PersistenceError
	if errors.As(err, &persistErr) {
		return httpx.NewError("backend_error", persistErr.Error(), http.StatusBadGateway)
	}
	switch {
	case errors.Is(err, orders.ErrMissingCustomer),
		errors.Is(err, orders.ErrEmptyOrder),
		errors.Is(err, orders.ErrMissingPaymentMethod),
		errors.Is(err, orders.ErrMissingCategory):
		return httpx.NewError("validation_failed", err.Error(), http.StatusUnprocessableEntity)
	}
	return httpx.NewError("internal_error", err.Error(), http.StatusInternalServerError)
}

// ListOrders returns the session journal, most recent first.
func (h *handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"orders": h.deps.Journal.List()})
}

// GetOrder returns one journal entry.
func (h *handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	order, ok := h.deps.Journal.Get(chi.URLParam(r, "laundryID"))
	if !ok {
		httpx.WriteError(ctx, w, httpx.NewError("order_not_found", "order not found", http.StatusNotFound))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"order": order})
}

// AdvanceOrder moves a journal order to the next service status. Advancing
// a terminal order returns the unchanged record.
func (h *handlers) AdvanceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	order, ok := h.deps.Journal.Get(chi.URLParam(r, "laundryID"))
	if !ok {
		httpx.WriteError(ctx, w, httpx.NewError("order_not_found", "order not found", http.StatusNotFound))
		return
	}

	result, err := h.deps.Lifecycle.Advance(ctx, requestctx.Token(ctx), order)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("backend_error", err.Error(), http.StatusBadGateway))
		return
	}

	payload := map[string]any{
		"order":   result.Order,
		"changed": result.Changed,
	}
	if result.NotificationErr != nil {
		payload["warning"] = result.NotificationErr.Error()
	}
	httpx.WriteJSON(w, http.StatusOK, payload)
}

// NotifyOrder re-sends the status SMS for an order's current status.
func (h *handlers) NotifyOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	order, ok := h.deps.Journal.Get(chi.URLParam(r, "laundryID"))
	if !ok {
		httpx.WriteError(ctx, w, httpx.NewError("order_not_found", "order not found", http.StatusNotFound))
		return
	}

	if err := h.deps.Lifecycle.Notify(ctx, requestctx.Token(ctx), order); err != nil {
		if errors.Is(err, orders.ErrNoRecipient) {
			httpx.WriteError(ctx, w, httpx.NewError("no_recipient", err.Error(), http.StatusUnprocessableEntity))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("notification_failed", err.Error(), http.StatusBadGateway))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"sent": true})
}

// Summary serves the session overview, low-stock alerts and recent orders.
func (h *handlers) Summary(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"summary":  h.deps.Reporter.Summary(),
		"lowStock": h.deps.Reporter.LowStock(),
		"recent":   h.deps.Reporter.RecentActivity(10),
	})
}
