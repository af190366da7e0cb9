// Package payments adapts the Stripe API to the interfaces the pricing and
// checkout modules consume. All Stripe types stay inside this package.
package payments

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/price"

	"partyshop_backend/internal/pricing"
	"partyshop_backend/platform/apperr"
	"partyshop_backend/platform/config"
	"partyshop_backend/platform/logger"
)

// SessionLine is one checkout line item: an existing provider price record
// and a quantity. No local amounts cross this boundary.
type SessionLine struct {
	PriceRef string
	Quantity int64
}

// Client is the Stripe adapter. A client built without a secret key stays
// constructable so the rest of the app can boot; calls through it fail
// with a configuration error.
type Client struct {
	configured bool
	log        *logger.Logger
}

// NewClient creates the Stripe client. The secret key is installed
// process-wide, matching how the Stripe SDK binds credentials.
func NewClient(cfg config.ProviderConfig, log *logger.Logger) *Client {
	key := cfg.GetStripeSecretKey()
	if key != "" {
		stripe.Key = key
	}
	return &Client{configured: key != "", log: log}
}

// Configured reports whether a secret key was installed.
func (c *Client) Configured() bool {
	return c.configured
}

// GetPrice resolves one price reference to its current amount.
func (c *Client) GetPrice(ctx context.Context, ref string) (pricing.PriceRecord, error) {
	if !c.configured {
		return pricing.PriceRecord{}, apperr.Configuration("payment provider is not configured")
	}

	params := &stripe.PriceParams{}
	params.Context = ctx

	p, err := price.Get(ref, params)
	if err != nil {
		return pricing.PriceRecord{}, c.mapError("price_get", ref, err)
	}

	return pricing.PriceRecord{
		Ref:        p.ID,
		UnitAmount: p.UnitAmount,
		Currency:   string(p.Currency),
	}, nil
}

// CheckPrice verifies that a price reference still resolves at the
// provider without keeping the returned amount.
func (c *Client) CheckPrice(ctx context.Context, ref string) error {
	_, err := c.GetPrice(ctx, ref)
	return err
}

// CreateSession creates a hosted checkout session and returns its redirect
// URL. Line items carry only price references and quantities; Stripe is
// the sole source of the amounts charged.
func (c *Client) CreateSession(ctx context.Context, lines []SessionLine, successURL, cancelURL string) (string, error) {
	if !c.configured {
		return "", apperr.Configuration("payment provider is not configured")
	}

	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(line.PriceRef),
			Quantity: stripe.Int64(line.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  items,
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return "", c.mapError("session_create", "", err)
	}
	return sess.URL, nil
}

// mapError folds Stripe errors into the app taxonomy. A missing resource
// is a stale reference; everything else from the provider is a transport
// failure.
func (c *Client) mapError(operation, ref string, err error) error {
	c.log.ProviderError(operation, ref, err)

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Code == stripe.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == 404 {
			return apperr.Wrap(apperr.KindReference, "price reference does not resolve", err)
		}
		return apperr.Wrap(apperr.KindTransport, "payment provider rejected the request", err)
	}
	return apperr.Wrap(apperr.KindTransport, "payment provider unreachable", err)
}
