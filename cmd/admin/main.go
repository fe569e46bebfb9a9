package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"finitefield.org/laundry-admin/internal/admin/catalog"
	"finitefield.org/laundry-admin/internal/admin/customers"
	"finitefield.org/laundry-admin/internal/admin/dashboard"
	"finitefield.org/laundry-admin/internal/admin/httpserver"
	"finitefield.org/laundry-admin/internal/admin/inventory"
	"finitefield.org/laundry-admin/internal/admin/notifications"
	"finitefield.org/laundry-admin/internal/admin/orders"
	"finitefield.org/laundry-admin/internal/platform/config"
	"finitefield.org/laundry-admin/internal/platform/observability"
)

// staticBackend selects the in-memory fixtures instead of a remote backend.
const staticBackend = "static"

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		os.Stderr.WriteString("failed to initialise logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration failed", zap.Error(err))
	}

	backends, err := buildBackends(cfg)
	if err != nil {
		logger.Fatal("backend wiring failed", zap.Error(err))
	}

	store := inventory.NewStore()
	journal := orders.NewJournal()
	poller := inventory.NewPoller(
		backends.inventory,
		store,
		cfg.Backend.Token,
		cfg.Shop.ID,
		cfg.Polling.InventoryInterval,
		logger.Named("inventory"),
	)

	submitter, err := orders.NewSubmitter(orders.SubmitterDeps{
		API:               backends.orders,
		Directory:         backends.customers,
		Inventory:         backends.inventory,
		Store:             store,
		Journal:           journal,
		ShopID:            cfg.Shop.ID,
		LowStockThreshold: cfg.Shop.LowStockThreshold,
	})
	if err != nil {
		logger.Fatal("submitter wiring failed", zap.Error(err))
	}

	lifecycle, err := orders.NewLifecycle(backends.orders, backends.sender, journal)
	if err != nil {
		logger.Fatal("lifecycle wiring failed", zap.Error(err))
	}

	reporter, err := dashboard.NewReporter(journal, store, cfg.Shop.LowStockThreshold)
	if err != nil {
		logger.Fatal("reporter wiring failed", zap.Error(err))
	}

	srv := httpserver.New(
		httpserver.Config{
			Address:      cfg.Server.Address,
			BasePath:     cfg.Server.BasePath,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		httpserver.Deps{
			Logger:    logger,
			Catalog:   backends.catalog,
			Customers: backends.customers,
			Inventory: backends.inventory,
			Store:     store,
			Poller:    poller,
			Submitter: submitter,
			Lifecycle: lifecycle,
			Journal:   journal,
			Reporter:  reporter,
			ShopID:    cfg.Shop.ID,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go poller.Run(ctx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("admin console listening",
		zap.String("address", cfg.Server.Address),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("shop_id", cfg.Shop.ID),
	)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("admin console stopped")
}

type backendSet struct {
	catalog   catalog.Service
	customers customers.Service
	inventory inventory.Service
	orders    orders.API
	sender    notifications.Sender
}

// buildBackends wires the remote REST services, or the in-memory fixtures
// when BACKEND_BASE_URL is set to "static".
func buildBackends(cfg config.Config) (backendSet, error) {
	if cfg.Backend.BaseURL == staticBackend {
		return backendSet{
			catalog:   catalog.NewStaticService(),
			customers: customers.NewStaticService(),
			inventory: inventory.NewStaticService(),
			orders:    orders.NewStaticAPI(),
			sender:    notifications.NewStaticSender(),
		}, nil
	}

	client := &http.Client{Timeout: cfg.Backend.Timeout}

	catalogSvc, err := catalog.NewHTTPService(cfg.Backend.BaseURL, client)
	if err != nil {
		return backendSet{}, err
	}
	customerSvc, err := customers.NewHTTPService(cfg.Backend.BaseURL, client)
	if err != nil {
		return backendSet{}, err
	}
	inventorySvc, err := inventory.NewHTTPService(cfg.Backend.BaseURL, client)
	if err != nil {
		return backendSet{}, err
	}
	orderSvc, err := orders.NewHTTPService(cfg.Backend.BaseURL, client)
	if err != nil {
		return backendSet{}, err
	}
	sender, err := notifications.NewHTTPSender(cfg.Backend.BaseURL, client)
	if err != nil {
		return backendSet{}, err
	}

	return backendSet{
		catalog:   catalogSvc,
		customers: customerSvc,
		inventory: inventorySvc,
		orders:    orderSvc,
		sender:    sender,
	}, nil
}
