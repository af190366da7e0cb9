// Package checkout orchestrates the handoff of a cart to the payment
// provider's hosted session.
package checkout

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"partyshop_backend/internal/payments"
	"partyshop_backend/platform/apperr"
	"partyshop_backend/platform/logger"
)

// Attempt states, logged as each checkout progresses.
const (
	stateValidating  = "validating"
	stateSubmitting  = "submitting"
	stateRedirecting = "redirecting"
	stateFailed      = "failed"
)

const checkPriceConcurrency = 4

// Provider is the slice of the payment adapter checkout needs.
type Provider interface {
	Configured() bool
	CheckPrice(ctx context.Context, ref string) error
	CreateSession(ctx context.Context, lines []payments.SessionLine, successURL, cancelURL string) (string, error)
}

// Service runs checkout attempts. At most one attempt per cart is in
// flight at any time.
type Service struct {
	provider Provider
	log      *logger.Logger
	inflight sync.Map
}

// NewService creates the checkout service.
func NewService(provider Provider, log *logger.Logger) *Service {
	return &Service{provider: provider, log: log}
}

// StartCheckout validates the submitted lines, re-validates their price
// references at the provider and creates exactly one hosted session,
// returning its redirect URL. Only (price reference, quantity) pairs ever
// reach the provider. Failures are terminal for the attempt; the caller
// decides whether to submit again.
func (s *Service) StartCheckout(ctx context.Context, cartID string, lines []payments.SessionLine, successURL, cancelURL string) (string, error) {
	if _, busy := s.inflight.LoadOrStore(cartID, struct{}{}); busy {
		return "", apperr.Conflict("a checkout for this cart is already in progress")
	}
	defer s.inflight.Delete(cartID)

	s.log.CheckoutEvent(cartID, stateValidating, len(lines))
	if err := validateLines(lines); err != nil {
		s.log.CheckoutEvent(cartID, stateFailed, len(lines))
		return "", err
	}

	if !s.provider.Configured() {
		s.log.CheckoutEvent(cartID, stateFailed, len(lines))
		return "", apperr.Configuration("checkout is not available")
	}

	s.log.CheckoutEvent(cartID, stateSubmitting, len(lines))
	if err := s.checkReferences(ctx, lines); err != nil {
		s.log.CheckoutEvent(cartID, stateFailed, len(lines))
		return "", err
	}

	url, err := s.provider.CreateSession(ctx, lines, successURL, cancelURL)
	if err != nil {
		s.log.CheckoutEvent(cartID, stateFailed, len(lines))
		return "", err
	}

	s.log.CheckoutEvent(cartID, stateRedirecting, len(lines))
	return url, nil
}

// validateLines rejects malformed input before any network traffic.
func validateLines(lines []payments.SessionLine) error {
	if len(lines) == 0 {
		return apperr.Validation("cart is empty")
	}
	for _, line := range lines {
		if line.PriceRef == "" {
			return apperr.Validation("line item is missing a price reference")
		}
		if line.Quantity < 1 {
			return apperr.Validation("line item quantity must be at least 1")
		}
	}
	return nil
}

// checkReferences confirms every distinct price reference still resolves
// at the provider. The first stale reference fails the attempt.
func (s *Service) checkReferences(ctx context.Context, lines []payments.SessionLine) error {
	seen := make(map[string]struct{}, len(lines))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(checkPriceConcurrency)
	for _, line := range lines {
		if _, dup := seen[line.PriceRef]; dup {
			continue
		}
		seen[line.PriceRef] = struct{}{}

		ref := line.PriceRef
		g.Go(func() error {
			return s.provider.CheckPrice(gctx, ref)
		})
	}
	return g.Wait()
}
