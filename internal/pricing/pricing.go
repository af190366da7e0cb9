// Package pricing fetches authoritative price records from the payment
// provider for display. Records are advisory: the provider's stored price
// remains the only source of truth for what a customer is charged.
package pricing

import "context"

// PriceRecord is a provider price, in the currency's minor units.
type PriceRecord struct {
	Ref        string `json:"ref"`
	UnitAmount int64  `json:"unitAmount"`
	Currency   string `json:"currency"`
}

// ProviderClient retrieves a single price record from the provider.
type ProviderClient interface {
	GetPrice(ctx context.Context, ref string) (PriceRecord, error)
}
