package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"partyshop_backend/internal/cart"
	cartservice "partyshop_backend/internal/cart/service"
	"partyshop_backend/internal/catalog"
	"partyshop_backend/internal/checkout"
	apphttp "partyshop_backend/internal/http"
	"partyshop_backend/internal/http/router"
	"partyshop_backend/internal/payments"
	"partyshop_backend/internal/pricing"
	"partyshop_backend/internal/scheduler"
	"partyshop_backend/platform/config"
	"partyshop_backend/platform/db"
	"partyshop_backend/platform/logger"
	"partyshop_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	var redisClient *redis.Client
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		c, err := db.NewRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		redisClient = c
		return nil
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	defer redisClient.Close()
	log.Info("redis connection established")

	// Shared validator instance for dependency injection
	val := validator.New()

	// Payment provider adapter. A missing secret key is allowed here:
	// browsing and cart work without it, checkout reports 503.
	provider := payments.NewClient(cfg, log)
	if !provider.Configured() {
		log.Warn("STRIPE_SECRET_KEY not configured; checkout disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	catalogModule, err := catalog.NewModule(ctx, pool, val, log)
	if err != nil {
		log.Error("failed to load catalog", "error", err)
		panic("failed to load catalog: " + err.Error())
	}

	pricingModule := pricing.NewModule(provider, redisClient, cfg.GetPriceCacheTTL(), val, log)

	rates := cartservice.Rates{
		TaxRateBps:        cfg.GetTaxRateBps(),
		ShippingFlatCents: cfg.GetShippingFlatCents(),
	}
	cartModule := cart.NewModule(redisClient, catalogModule.Store(), pricingModule.Service(), cfg, rates, val, log)

	checkoutModule := checkout.NewModule(provider, cfg, cfg, val, log)

	// Background price-cache warmer keeps storefront views off the
	// provider's latency. Skipped when checkout is disabled anyway.
	if provider.Configured() {
		dispatcher, err := scheduler.NewPriceRefreshDispatcher(cfg, catalogModule.Store(), log)
		if err != nil {
			log.Warn("price refresh dispatcher disabled", "error", err)
		} else {
			defer dispatcher.Close()
			go dispatcher.Run(ctx)
		}
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: db.NewPoolAdapter(pool),
		Modules: []apphttp.Module{
			catalogModule,
			pricingModule,
			cartModule,
			checkoutModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
