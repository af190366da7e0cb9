package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"partyshop_backend/platform/logger"
)

const cartKeyPrefix = "cart:"

// Store persists carts in Redis, one named record per cart. Every mutation
// rewrites the full record (last-write-wins), so a crash between mutation
// and save loses at most that one operation.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewStore creates a cart store. The TTL bounds how long an abandoned cart
// record lives in Redis; it is refreshed on every save.
func NewStore(client *redis.Client, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{client: client, ttl: ttl, log: log}
}

// Get loads the cart. A corrupt or absent record yields an empty cart,
// never an error: losing a display cart must not break the page.
func (s *Store) Get(ctx context.Context, cartID string) []Line {
	raw, err := s.client.Get(ctx, cartKeyPrefix+cartID).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("cart load failed, starting empty", "cart_id", cartID, "error", err)
		}
		return []Line{}
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.log.Warn("cart record corrupt, starting empty", "cart_id", cartID, "error", err)
		return []Line{}
	}
	return sanitize(lines)
}

// Add increments the quantity for productID, creating the line at quantity
// 1 when absent, and persists the cart.
func (s *Store) Add(ctx context.Context, cartID, productID string) ([]Line, error) {
	lines := s.Get(ctx, cartID)

	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, Line{ProductID: productID, Quantity: 1})
	}

	return s.save(ctx, cartID, lines)
}

// Remove deletes the line for productID unconditionally and persists.
func (s *Store) Remove(ctx context.Context, cartID, productID string) ([]Line, error) {
	lines := s.Get(ctx, cartID)

	out := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			out = append(out, line)
		}
	}

	return s.save(ctx, cartID, out)
}

// SetQuantity sets the quantity for productID when qty >= 1 and otherwise
// behaves as Remove. Setting a quantity on an absent product creates the
// line.
func (s *Store) SetQuantity(ctx context.Context, cartID, productID string, qty int64) ([]Line, error) {
	if qty < 1 {
		return s.Remove(ctx, cartID, productID)
	}

	lines := s.Get(ctx, cartID)
	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = qty
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, Line{ProductID: productID, Quantity: qty})
	}

	return s.save(ctx, cartID, lines)
}

// save overwrites the durable record. A failed save is returned as an
// error so the in-memory mutation is never reported as success.
func (s *Store) save(ctx context.Context, cartID string, lines []Line) ([]Line, error) {
	raw, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("marshal cart: %w", err)
	}

	if err := s.client.Set(ctx, cartKeyPrefix+cartID, raw, s.ttl).Err(); err != nil {
		s.log.CartSaveError(cartID, err)
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return lines, nil
}
