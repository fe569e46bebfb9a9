package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/laundry-admin/internal/admin/catalog"
	"finitefield.org/laundry-admin/internal/admin/customers"
	"finitefield.org/laundry-admin/internal/admin/dashboard"
	"finitefield.org/laundry-admin/internal/admin/inventory"
	"finitefield.org/laundry-admin/internal/admin/orders"
	"finitefield.org/laundry-admin/internal/platform/observability"
)

// Config holds runtime options for the console HTTP server.
type Config struct {
	Address      string
	BasePath     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Deps carries the services the route handlers work with.
type Deps struct {
	Logger *zap.Logger

	Catalog   catalog.Service
	Customers customers.Service
	Inventory inventory.Service
	Store     *inventory.Store
	Poller    *inventory.Poller

	Submitter *orders.Submitter
	Lifecycle *orders.Lifecycle
	Journal   *orders.Journal
	Reporter  *dashboard.Reporter

	ShopID string
}

// New constructs the console HTTP server with its middleware stack.
func New(cfg Config, deps Deps) *http.Server {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(60 * time.Second))
	router.Use(observability.Middleware(deps.Logger))
	router.Use(BearerToken())

	mountRoutes(router, normalizeBasePath(cfg.BasePath), newHandlers(deps))

	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	idleTimeout := cfg.IdleTimeout
	if idleTimeout <= 0 {
		idleTimeout = 60 * time.Second
	}

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// Router builds the routing tree without the outer http.Server, for tests.
func Router(cfg Config, deps Deps) http.Handler {
	return New(cfg, deps).Handler
}

func mountRoutes(router chi.Router, base string, h *handlers) {
	router.Get("/healthz", h.Health)

	router.Route(base, func(r chi.Router) {
		r.Get("/services", h.ListServices)
		r.Get("/prices", h.ListPrices)

		r.Get("/inventory", h.ListInventory)
		r.Post("/inventory/refresh", h.RefreshInventory)

		r.Get("/customers", h.SearchCustomers)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.ListOrders)
			r.Post("/", h.SubmitOrder)
			r.Get("/{laundryID}", h.GetOrder)
			r.Post("/{laundryID}/advance", h.AdvanceOrder)
			r.Post("/{laundryID}/notify", h.NotifyOrder)
		})

		r.Get("/summary", h.Summary)
	})
}

func normalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/admin"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}
