package inventory

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Poller refreshes the Store on a fixed timer. Refreshes follow
// last-response-wins semantics: a completed fetch replaces the snapshot
// wholesale, and failures leave the previous snapshot in place.
type Poller struct {
	service  Service
	store    *Store
	token    string
	shopID   string
	interval time.Duration
	logger   *zap.Logger
}

// NewPoller constructs a Poller. Interval must be positive.
func NewPoller(service Service, store *Store, token, shopID string, interval time.Duration, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		service:  service,
		store:    store,
		token:    token,
		shopID:   shopID,
		interval: interval,
		logger:   logger,
	}
}

// Run performs an immediate refresh and then polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// Refresh performs one fetch-and-replace cycle, for manual refresh actions.
func (p *Poller) Refresh(ctx context.Context) error {
	items, err := p.service.List(ctx, p.token, p.shopID)
	if err != nil {
		return err
	}
	p.store.Replace(items)
	return nil
}

func (p *Poller) refresh(ctx context.Context) {
	if err := p.Refresh(ctx); err != nil {
		// Keep the stale snapshot; the next tick retries.
		p.logger.Warn("inventory refresh failed", zap.Error(err))
	}
}
