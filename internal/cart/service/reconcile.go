package service

import (
	"math"

	"partyshop_backend/internal/catalog/domain"
	"partyshop_backend/internal/pricing"
	"partyshop_backend/platform/logger"
)

// ProductSource resolves a cart product id to its catalog entry.
type ProductSource interface {
	ByID(id string) (domain.Product, bool)
}

// Rates carries the estimate parameters applied during reconciliation.
// Amounts are integer cents, the tax rate is in basis points.
type Rates struct {
	TaxRateBps        int
	ShippingFlatCents int64
}

// PricedLine is a cart line joined with its catalog product and, when the
// price authority resolved it, a unit amount. Unpriced lines stay visible
// but contribute nothing to the totals.
type PricedLine struct {
	Product    domain.Product
	Quantity   int64
	UnitAmount int64
	LineTotal  int64
	Currency   string
	Priced     bool
}

// Totals is the reconciled money summary of a cart. Tax and shipping are
// estimates for display; the payment provider computes the binding figures
// at checkout.
type Totals struct {
	SubtotalCents          int64
	EstimatedTaxCents      int64
	EstimatedShippingCents int64
	TotalCents             int64
	HasUnpricedLines       bool
}

// Reconcile joins persisted cart lines against the catalog and a price
// lookup and derives display totals. It is a pure computation over its
// inputs: the same lines, catalog and prices always produce the same
// result, and the cart itself is never mutated.
//
// Lines whose product no longer exists in the catalog are dropped from the
// view. Lines whose price reference did not resolve are kept, flagged
// unpriced and excluded from the subtotal. Shipping applies only when the
// priced subtotal is positive.
func Reconcile(lines []Line, products ProductSource, prices map[string]pricing.PriceRecord, rates Rates, log *logger.Logger) ([]PricedLine, Totals) {
	priced := make([]PricedLine, 0, len(lines))
	var subtotal int64
	var hasUnpriced bool

	for _, line := range lines {
		product, ok := products.ByID(line.ProductID)
		if !ok {
			if log != nil {
				log.StaleCartLine(line.ProductID)
			}
			continue
		}

		pl := PricedLine{Product: product, Quantity: line.Quantity}
		if rec, ok := prices[product.PriceRef]; ok {
			pl.UnitAmount = rec.UnitAmount
			pl.LineTotal = rec.UnitAmount * line.Quantity
			pl.Currency = rec.Currency
			pl.Priced = true
			subtotal += pl.LineTotal
		} else {
			hasUnpriced = true
		}
		priced = append(priced, pl)
	}

	totals := Totals{
		SubtotalCents:    subtotal,
		HasUnpricedLines: hasUnpriced,
	}
	totals.EstimatedTaxCents = int64(math.Round(float64(subtotal) * float64(rates.TaxRateBps) / 10000))
	if subtotal > 0 {
		totals.EstimatedShippingCents = rates.ShippingFlatCents
	}
	totals.TotalCents = totals.SubtotalCents + totals.EstimatedTaxCents + totals.EstimatedShippingCents

	return priced, totals
}
