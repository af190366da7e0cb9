package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"partyshop_backend/internal/pricing"
	"partyshop_backend/platform/config"
	"partyshop_backend/platform/logger"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	prices *pricing.Service
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, prices *pricing.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		prices: prices,
		log:    log,
	}

	mux.HandleFunc(TaskPriceRefresh, w.handlePriceRefresh)

	return w, nil
}

// handlePriceRefresh re-fetches every reference in the payload. The
// pricing service writes each resolved price through to the display
// cache, so a fetch is also a warm.
func (w *Worker) handlePriceRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParsePriceRefreshPayload(task)
	if err != nil {
		return err
	}

	resolved := w.prices.RefreshPrices(ctx, payload.PriceRefs)
	w.log.Info("price cache refreshed",
		"requested", len(payload.PriceRefs),
		"resolved", resolved,
	)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
