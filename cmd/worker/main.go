package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"partyshop_backend/internal/payments"
	"partyshop_backend/internal/pricing"
	"partyshop_backend/internal/scheduler"
	"partyshop_backend/platform/config"
	"partyshop_backend/platform/db"
	"partyshop_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := payments.NewClient(cfg, log)
	if !provider.Configured() {
		log.Warn("STRIPE_SECRET_KEY not configured; price refreshes will fail")
	}

	redisClient, err := db.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	defer redisClient.Close()

	cache := pricing.NewCache(redisClient, cfg.GetPriceCacheTTL(), log)
	prices := pricing.NewService(provider, cache, log)

	worker, err := scheduler.NewWorker(cfg, prices, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	log.Info("worker listening for tasks")
	worker.Run(ctx)
	log.Info("worker stopped")
}
