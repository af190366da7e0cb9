package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"partyshop_backend/platform/logger"
)

type fakeProvider struct {
	mu      sync.Mutex
	calls   int
	byRef   map[string]PriceRecord
	failRef map[string]error
}

func (f *fakeProvider) GetPrice(_ context.Context, ref string) (PriceRecord, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err, ok := f.failRef[ref]; ok {
		return PriceRecord{}, err
	}
	if rec, ok := f.byRef[ref]; ok {
		return rec, nil
	}
	return PriceRecord{}, errors.New("no such price")
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		byRef: map[string]PriceRecord{
			"price_kitty":  {Ref: "price_kitty", UnitAmount: 1200, Currency: "usd"},
			"price_castle": {Ref: "price_castle", UnitAmount: 3500, Currency: "usd"},
		},
		failRef: map[string]error{},
	}
}

func TestFetchPricesEmptyInputMakesNoProviderCall(t *testing.T) {
	provider := newFakeProvider()
	svc := NewService(provider, nil, logger.New("development"))

	result := svc.FetchPrices(context.Background(), nil)

	if len(result) != 0 {
		t.Fatalf("expected empty map, got %d entries", len(result))
	}
	if provider.callCount() != 0 {
		t.Fatalf("expected 0 provider calls, got %d", provider.callCount())
	}
}

func TestFetchPricesDeduplicatesRefs(t *testing.T) {
	provider := newFakeProvider()
	svc := NewService(provider, nil, logger.New("development"))

	result := svc.FetchPrices(context.Background(), []string{
		"price_kitty", "price_kitty", "", "price_kitty",
	})

	if provider.callCount() != 1 {
		t.Fatalf("expected 1 provider call, got %d", provider.callCount())
	}
	if rec, ok := result["price_kitty"]; !ok || rec.UnitAmount != 1200 {
		t.Fatalf("expected price_kitty=1200, got %+v", result)
	}
}

func TestFetchPricesPartialSuccessOmitsFailedRef(t *testing.T) {
	provider := newFakeProvider()
	provider.failRef["price_gone"] = errors.New("resource_missing")
	svc := NewService(provider, nil, logger.New("development"))

	result := svc.FetchPrices(context.Background(), []string{"price_kitty", "price_gone", "price_castle"})

	if len(result) != 2 {
		t.Fatalf("expected 2 resolved prices, got %d", len(result))
	}
	if _, ok := result["price_gone"]; ok {
		t.Fatalf("expected failed ref to be absent, got %+v", result["price_gone"])
	}
	if result["price_castle"].UnitAmount != 3500 {
		t.Fatalf("expected castle=3500, got %d", result["price_castle"].UnitAmount)
	}
}

func TestFetchPricesReadsThroughCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	log := logger.New("development")
	provider := newFakeProvider()
	cache := NewCache(client, time.Minute, log)
	svc := NewService(provider, cache, log)

	first := svc.FetchPrices(context.Background(), []string{"price_kitty"})
	if first["price_kitty"].UnitAmount != 1200 {
		t.Fatalf("expected 1200 on first fetch, got %+v", first)
	}
	if provider.callCount() != 1 {
		t.Fatalf("expected 1 provider call after first fetch, got %d", provider.callCount())
	}

	second := svc.FetchPrices(context.Background(), []string{"price_kitty"})
	if second["price_kitty"].UnitAmount != 1200 {
		t.Fatalf("expected 1200 on cached fetch, got %+v", second)
	}
	if provider.callCount() != 1 {
		t.Fatalf("expected cached fetch to make no provider call, got %d calls", provider.callCount())
	}
}

func TestFetchPricesCacheExpiryFallsBackToProvider(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	log := logger.New("development")
	provider := newFakeProvider()
	svc := NewService(provider, NewCache(client, time.Minute, log), log)

	svc.FetchPrices(context.Background(), []string{"price_kitty"})
	mr.FastForward(2 * time.Minute)
	svc.FetchPrices(context.Background(), []string{"price_kitty"})

	if provider.callCount() != 2 {
		t.Fatalf("expected provider re-fetch after TTL, got %d calls", provider.callCount())
	}
}

func TestCacheCorruptEntryTreatedAsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	mr.Set("price:price_kitty", "{not json")

	cache := NewCache(client, time.Minute, logger.New("development"))
	found, missing := cache.GetMany(context.Background(), []string{"price_kitty"})

	if len(found) != 0 {
		t.Fatalf("expected corrupt entry to miss, got %+v", found)
	}
	if len(missing) != 1 || missing[0] != "price_kitty" {
		t.Fatalf("expected price_kitty in missing, got %v", missing)
	}
}

func TestRefreshPricesOverwritesCachedEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	log := logger.New("development")
	provider := newFakeProvider()
	cache := NewCache(client, time.Minute, log)
	svc := NewService(provider, cache, log)

	cache.Set(context.Background(), PriceRecord{Ref: "price_kitty", UnitAmount: 999, Currency: "usd"})

	resolved := svc.RefreshPrices(context.Background(), []string{"price_kitty", "price_castle", "price_unknown"})
	if resolved != 2 {
		t.Fatalf("expected 2 resolved refs, got %d", resolved)
	}
	if provider.callCount() != 3 {
		t.Fatalf("refresh must bypass the cache read, got %d provider calls", provider.callCount())
	}

	fetched := svc.FetchPrices(context.Background(), []string{"price_kitty"})
	if fetched["price_kitty"].UnitAmount != 1200 {
		t.Fatalf("stale cache entry must be overwritten, got %+v", fetched["price_kitty"])
	}
	if provider.callCount() != 3 {
		t.Fatalf("fetch after refresh must be served from cache, got %d calls", provider.callCount())
	}
}
