package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"partyshop_backend/internal/payments"
	"partyshop_backend/platform/apperr"
	"partyshop_backend/platform/logger"
)

type fakeProvider struct {
	mu           sync.Mutex
	configured   bool
	staleRefs    map[string]bool
	sessionErr   error
	checkCalls   int
	sessionCalls int
	lastLines    []payments.SessionLine
	lastSuccess  string
	lastCancel   string

	// When set, CheckPrice blocks until released. Used to hold an
	// attempt in flight.
	block chan struct{}
}

func newConfiguredProvider() *fakeProvider {
	return &fakeProvider{configured: true, staleRefs: map[string]bool{}}
}

func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) CheckPrice(_ context.Context, ref string) error {
	f.mu.Lock()
	f.checkCalls++
	stale := f.staleRefs[ref]
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if stale {
		return apperr.Reference("price reference does not resolve")
	}
	return nil
}

func (f *fakeProvider) CreateSession(_ context.Context, lines []payments.SessionLine, successURL, cancelURL string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionCalls++
	f.lastLines = lines
	f.lastSuccess = successURL
	f.lastCancel = cancelURL
	if f.sessionErr != nil {
		return "", f.sessionErr
	}
	return "https://pay.example.com/session/abc", nil
}

func (f *fakeProvider) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checkCalls, f.sessionCalls
}

func TestStartCheckoutEmptyCartFailsWithoutProviderCall(t *testing.T) {
	provider := newConfiguredProvider()
	svc := NewService(provider, logger.New("development"))

	_, err := svc.StartCheckout(context.Background(), "c1", nil, "https://shop.test/success", "https://shop.test/cart")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if checks, sessions := provider.counts(); checks != 0 || sessions != 0 {
		t.Fatalf("no provider call may happen on invalid input, got %d checks %d sessions", checks, sessions)
	}
}

func TestStartCheckoutZeroQuantityFailsLocally(t *testing.T) {
	provider := newConfiguredProvider()
	svc := NewService(provider, logger.New("development"))

	lines := []payments.SessionLine{{PriceRef: "price_kitty", Quantity: 0}}
	_, err := svc.StartCheckout(context.Background(), "c1", lines, "https://shop.test/success", "https://shop.test/cart")
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if checks, sessions := provider.counts(); checks != 0 || sessions != 0 {
		t.Fatalf("no provider call may happen on invalid input, got %d checks %d sessions", checks, sessions)
	}
}

func TestStartCheckoutSubmitsOnlyRefsAndQuantities(t *testing.T) {
	provider := newConfiguredProvider()
	svc := NewService(provider, logger.New("development"))

	lines := []payments.SessionLine{{PriceRef: "price_kitty", Quantity: 2}}
	url, err := svc.StartCheckout(context.Background(), "c1", lines, "https://shop.test/success", "https://shop.test/cart")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if url != "https://pay.example.com/session/abc" {
		t.Fatalf("unexpected redirect url %q", url)
	}

	if _, sessions := provider.counts(); sessions != 1 {
		t.Fatalf("expected exactly one session call, got %d", sessions)
	}
	if len(provider.lastLines) != 1 || provider.lastLines[0] != (payments.SessionLine{PriceRef: "price_kitty", Quantity: 2}) {
		t.Fatalf("unexpected submitted lines: %+v", provider.lastLines)
	}
	if provider.lastSuccess != "https://shop.test/success" || provider.lastCancel != "https://shop.test/cart" {
		t.Fatalf("unexpected redirect urls: %q %q", provider.lastSuccess, provider.lastCancel)
	}
}

func TestStartCheckoutStaleReferenceFailsBeforeSession(t *testing.T) {
	provider := newConfiguredProvider()
	provider.staleRefs["price_gone"] = true
	svc := NewService(provider, logger.New("development"))

	lines := []payments.SessionLine{{PriceRef: "price_gone", Quantity: 1}}
	_, err := svc.StartCheckout(context.Background(), "c1", lines, "https://shop.test/success", "https://shop.test/cart")
	if apperr.GetKind(err) != apperr.KindReference {
		t.Fatalf("expected reference error, got %v", err)
	}
	if _, sessions := provider.counts(); sessions != 0 {
		t.Fatalf("session must not be created after a stale reference, got %d calls", sessions)
	}
}

func TestStartCheckoutUnconfiguredProviderMakesNoCall(t *testing.T) {
	provider := &fakeProvider{configured: false, staleRefs: map[string]bool{}}
	svc := NewService(provider, logger.New("development"))

	lines := []payments.SessionLine{{PriceRef: "price_kitty", Quantity: 1}}
	_, err := svc.StartCheckout(context.Background(), "c1", lines, "https://shop.test/success", "https://shop.test/cart")
	if apperr.GetKind(err) != apperr.KindConfiguration {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if checks, sessions := provider.counts(); checks != 0 || sessions != 0 {
		t.Fatalf("unconfigured provider must never be called, got %d checks %d sessions", checks, sessions)
	}
}

func TestStartCheckoutRejectsConcurrentAttemptForSameCart(t *testing.T) {
	provider := newConfiguredProvider()
	provider.block = make(chan struct{})
	svc := NewService(provider, logger.New("development"))

	lines := []payments.SessionLine{{PriceRef: "price_kitty", Quantity: 1}}

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.StartCheckout(context.Background(), "c1", lines, "https://shop.test/success", "https://shop.test/cart")
		firstDone <- err
	}()

	// Wait until the first attempt is inside the provider call.
	for {
		if checks, _ := provider.counts(); checks > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err := svc.StartCheckout(context.Background(), "c1", lines, "https://shop.test/success", "https://shop.test/cart")
	if apperr.GetKind(err) != apperr.KindConflict {
		t.Fatalf("expected conflict while an attempt is in flight, got %v", err)
	}

	close(provider.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first attempt should have completed: %v", err)
	}

	// The guard releases once the attempt resolves.
	provider.block = nil
	if _, err := svc.StartCheckout(context.Background(), "c1", lines, "https://shop.test/success", "https://shop.test/cart"); err != nil {
		t.Fatalf("checkout after release: %v", err)
	}
}

func TestStartCheckoutDistinctCartsRunIndependently(t *testing.T) {
	provider := newConfiguredProvider()
	provider.block = make(chan struct{})
	svc := NewService(provider, logger.New("development"))

	lines := []payments.SessionLine{{PriceRef: "price_kitty", Quantity: 1}}

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.StartCheckout(context.Background(), "c1", lines, "https://shop.test/success", "https://shop.test/cart")
		firstDone <- err
	}()
	for {
		if checks, _ := provider.counts(); checks > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	// A second cart is not blocked by the first cart's attempt, only by
	// its own. Its CheckPrice also blocks, so release both.
	secondDone := make(chan error, 1)
	go func() {
		_, err := svc.StartCheckout(context.Background(), "c2", lines, "https://shop.test/success", "https://shop.test/cart")
		secondDone <- err
	}()
	for {
		if checks, _ := provider.counts(); checks > 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	close(provider.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first cart: %v", err)
	}
	if err := <-secondDone; err != nil {
		t.Fatalf("second cart: %v", err)
	}
}
