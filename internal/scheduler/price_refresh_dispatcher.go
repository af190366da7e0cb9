package scheduler

import (
	"context"
	"time"

	"partyshop_backend/platform/config"
	"partyshop_backend/platform/logger"
)

// RefSource lists the price references worth keeping warm.
type RefSource interface {
	PriceRefs() []string
}

// PriceRefreshDispatcher periodically enqueues a cache warm for every
// catalog price reference.
type PriceRefreshDispatcher struct {
	client   *Client
	refs     RefSource
	interval time.Duration
	log      *logger.Logger
}

func NewPriceRefreshDispatcher(cfg config.SchedulerConfig, refs RefSource, log *logger.Logger) (*PriceRefreshDispatcher, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	interval := cfg.GetPriceRefreshInterval()
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &PriceRefreshDispatcher{
		client:   client,
		refs:     refs,
		interval: interval,
		log:      log,
	}, nil
}

func (d *PriceRefreshDispatcher) Close() error {
	if d == nil {
		return nil
	}
	return d.client.Close()
}

func (d *PriceRefreshDispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil || d.refs == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	// Warm the cache once at startup rather than waiting a full interval.
	d.dispatch(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		d.dispatch(ctx)
	}
}

func (d *PriceRefreshDispatcher) dispatch(ctx context.Context) {
	refs := d.refs.PriceRefs()
	if len(refs) == 0 {
		return
	}
	if err := d.client.EnqueuePriceRefresh(ctx, refs); err != nil {
		d.log.Warn("price refresh enqueue failed", "error", err)
	}
}
