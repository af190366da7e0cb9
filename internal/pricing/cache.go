package pricing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"partyshop_backend/platform/logger"
)

const cacheKeyPrefix = "price:"

// Cache is the Redis-backed display cache for price records. It only ever
// shortens the path to the provider; a cache failure is logged and treated
// as a miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewCache creates a price cache with the given TTL.
func NewCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// GetMany returns the cached records for refs and the refs that missed.
func (c *Cache) GetMany(ctx context.Context, refs []string) (map[string]PriceRecord, []string) {
	found := make(map[string]PriceRecord, len(refs))
	var missing []string

	for _, ref := range refs {
		raw, err := c.client.Get(ctx, cacheKeyPrefix+ref).Bytes()
		if err != nil {
			if err != redis.Nil {
				c.log.Debug("price cache read failed", "ref", ref, "error", err)
			}
			missing = append(missing, ref)
			continue
		}

		var rec PriceRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			c.log.Debug("price cache corrupt entry", "ref", ref, "error", err)
			missing = append(missing, ref)
			continue
		}
		found[ref] = rec
	}

	return found, missing
}

// Set stores one record until the TTL expires.
func (c *Cache) Set(ctx context.Context, rec PriceRecord) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+rec.Ref, raw, c.ttl).Err(); err != nil {
		c.log.Debug("price cache write failed", "ref", rec.Ref, "error", err)
	}
}
