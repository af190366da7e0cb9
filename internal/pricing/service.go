package pricing

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"partyshop_backend/platform/logger"
)

// fetchConcurrency bounds the provider fan-out for one lookup.
const fetchConcurrency = 4

// Service resolves price references to records, read-through cached.
type Service struct {
	provider ProviderClient
	cache    *Cache
	log      *logger.Logger
}

// NewService creates the pricing service. The cache may be nil, in which
// case every lookup goes to the provider.
func NewService(provider ProviderClient, cache *Cache, log *logger.Logger) *Service {
	return &Service{provider: provider, cache: cache, log: log}
}

// FetchPrices resolves the given refs to price records. Refs are
// deduplicated before querying, and an empty input returns an empty map
// without touching the provider. Resolution is partial by design: a ref the
// provider rejects is logged and omitted from the result, and callers must
// treat an absent ref as "price unknown", never as zero.
func (s *Service) FetchPrices(ctx context.Context, refs []string) map[string]PriceRecord {
	deduped := dedupe(refs)
	if len(deduped) == 0 {
		return map[string]PriceRecord{}
	}

	result := make(map[string]PriceRecord, len(deduped))
	toFetch := deduped
	if s.cache != nil {
		var cached map[string]PriceRecord
		cached, toFetch = s.cache.GetMany(ctx, deduped)
		for ref, rec := range cached {
			result[ref] = rec
		}
	}
	if len(toFetch) == 0 {
		return result
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for _, ref := range toFetch {
		g.Go(func() error {
			rec, err := s.provider.GetPrice(gctx, ref)
			if err != nil {
				s.log.ProviderError("price.get", ref, err)
				return nil
			}

			mu.Lock()
			result[ref] = rec
			mu.Unlock()

			if s.cache != nil {
				s.cache.Set(gctx, rec)
			}
			return nil
		})
	}
	_ = g.Wait()

	return result
}

// RefreshPrices re-fetches every ref from the provider, skipping the
// cache read so stale entries get overwritten. It returns how many refs
// resolved. Used by the background cache warmer.
func (s *Service) RefreshPrices(ctx context.Context, refs []string) int {
	deduped := dedupe(refs)
	if len(deduped) == 0 {
		return 0
	}

	var mu sync.Mutex
	resolved := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for _, ref := range deduped {
		g.Go(func() error {
			rec, err := s.provider.GetPrice(gctx, ref)
			if err != nil {
				s.log.ProviderError("price.refresh", ref, err)
				return nil
			}

			if s.cache != nil {
				s.cache.Set(gctx, rec)
			}

			mu.Lock()
			resolved++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return resolved
}

func dedupe(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
