// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RedisConfig provides settings for the Redis connection used by the cart
// store, the price display cache, and the task queue.
type RedisConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
}

// ProviderConfig provides settings for the payment provider.
// An empty secret key is not a load error: checkout surfaces a
// configuration error per request instead of failing startup.
type ProviderConfig interface {
	GetStripeSecretKey() string
	GetSiteBaseURL() string
}

// PricingConfig provides the informational tax/shipping figures shown in the
// cart. These never reach the provider; Stripe computes authoritative
// amounts if configured.
type PricingConfig interface {
	GetTaxRateBps() int
	GetShippingFlatCents() int64
	GetPriceCacheTTL() time.Duration
}

// CartConfig provides settings for cart session handling.
type CartConfig interface {
	GetCartCookieName() string
	GetCartCookieMaxAge() time.Duration
	GetCartCookieSecure() bool
}

// SchedulerConfig provides settings for the asynq worker and scheduler.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetPriceRefreshInterval() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	DatabaseURL          string
	RedisURL             string
	RedisTLSInsecure     bool
	StripeSecretKey      string
	SiteBaseURL          string
	TaxRateBps           int
	ShippingFlatCents    int64
	PriceCacheTTL        time.Duration
	CartCookieName       string
	CartCookieMaxAge     time.Duration
	CartCookieSecure     bool
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	AsynqQueueName       string
	AsynqConcurrency     int
	PriceRefreshInterval time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RedisConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }

// ProviderConfig implementation
func (c *Config) GetStripeSecretKey() string { return c.StripeSecretKey }
func (c *Config) GetSiteBaseURL() string     { return c.SiteBaseURL }

// PricingConfig implementation
func (c *Config) GetTaxRateBps() int              { return c.TaxRateBps }
func (c *Config) GetShippingFlatCents() int64     { return c.ShippingFlatCents }
func (c *Config) GetPriceCacheTTL() time.Duration { return c.PriceCacheTTL }

// CartConfig implementation
func (c *Config) GetCartCookieName() string          { return c.CartCookieName }
func (c *Config) GetCartCookieMaxAge() time.Duration { return c.CartCookieMaxAge }
func (c *Config) GetCartCookieSecure() bool          { return c.CartCookieSecure }

// SchedulerConfig implementation
func (c *Config) GetAsynqQueueName() string              { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int               { return c.AsynqConcurrency }
func (c *Config) GetPriceRefreshInterval() time.Duration { return c.PriceRefreshInterval }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cartCookieSecure := strings.EqualFold(getEnv("CART_COOKIE_SECURE", ""), "true")
	if getEnv("CART_COOKIE_SECURE", "") == "" {
		cartCookieSecure = strings.EqualFold(getEnv("APP_ENV", "development"), "production")
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		RedisTLSInsecure:     strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		SiteBaseURL:          strings.TrimRight(getEnv("SITE_URL", "http://localhost:5173"), "/"),
		TaxRateBps:           mustInt(getEnv("TAX_RATE_BPS", "825")),
		ShippingFlatCents:    mustInt64(getEnv("SHIPPING_FLAT_CENTS", "699")),
		PriceCacheTTL:        mustDuration(getEnv("PRICE_CACHE_TTL", "5m")),
		CartCookieName:       getEnv("CART_COOKIE_NAME", "cart_session"),
		CartCookieMaxAge:     mustDuration(getEnv("CART_COOKIE_MAX_AGE", "720h")),
		CartCookieSecure:     cartCookieSecure,
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AsynqQueueName:       getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:     mustInt(getEnv("ASYNQ_CONCURRENCY", "5")),
		PriceRefreshInterval: mustDuration(getEnv("PRICE_REFRESH_INTERVAL", "10m")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.TaxRateBps < 0 || cfg.TaxRateBps > 10000 {
		return nil, fmt.Errorf("TAX_RATE_BPS must be between 0 and 10000")
	}
	if cfg.ShippingFlatCents < 0 {
		return nil, fmt.Errorf("SHIPPING_FLAT_CENTS cannot be negative")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
