// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// ProviderError logs a failed call to the payment provider.
func (l *Logger) ProviderError(operation, priceRef string, err error) {
	l.Error("provider_error",
		slog.String("operation", operation),
		slog.String("price_ref", priceRef),
		slog.String("error", err.Error()),
	)
}

// CheckoutEvent logs checkout attempt transitions.
func (l *Logger) CheckoutEvent(cartID, state string, lineCount int) {
	l.Info("checkout_event",
		slog.String("cart_id", cartID),
		slog.String("state", state),
		slog.Int("line_count", lineCount),
	)
}

// CartSaveError logs a failed durable cart save.
func (l *Logger) CartSaveError(cartID string, err error) {
	l.Error("cart_save_error",
		slog.String("cart_id", cartID),
		slog.String("error", err.Error()),
	)
}

// StaleCartLine logs a cart line whose product no longer exists in the catalog.
func (l *Logger) StaleCartLine(productID string) {
	l.Warn("stale_cart_line",
		slog.String("product_id", productID),
	)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
