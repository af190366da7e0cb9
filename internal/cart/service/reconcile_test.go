package service

import (
	"reflect"
	"testing"

	"partyshop_backend/internal/catalog/domain"
	"partyshop_backend/internal/pricing"
	"partyshop_backend/platform/logger"
)

type fakeCatalog map[string]domain.Product

func (f fakeCatalog) ByID(id string) (domain.Product, bool) {
	p, ok := f[id]
	return p, ok
}

var testRates = Rates{TaxRateBps: 825, ShippingFlatCents: 699}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		"kitty-box":       {ID: "kitty-box", Title: "Kitty Box", PriceRef: "price_kitty"},
		"princess-castle": {ID: "princess-castle", Title: "Princess Castle", PriceRef: "price_castle"},
	}
}

func TestReconcileEmptyCartHasZeroTotals(t *testing.T) {
	priced, totals := Reconcile(nil, testCatalog(), nil, testRates, logger.New("development"))

	if len(priced) != 0 {
		t.Fatalf("expected no lines, got %d", len(priced))
	}
	if totals != (Totals{}) {
		t.Fatalf("empty cart must produce zero totals, got %+v", totals)
	}
}

func TestReconcileComputesEstimates(t *testing.T) {
	lines := []Line{{ProductID: "kitty-box", Quantity: 2}}
	prices := map[string]pricing.PriceRecord{
		"price_kitty": {Ref: "price_kitty", UnitAmount: 1200, Currency: "usd"},
	}

	priced, totals := Reconcile(lines, testCatalog(), prices, testRates, logger.New("development"))

	if len(priced) != 1 {
		t.Fatalf("expected one priced line, got %d", len(priced))
	}
	if !priced[0].Priced || priced[0].LineTotal != 2400 {
		t.Fatalf("unexpected line: %+v", priced[0])
	}
	if totals.SubtotalCents != 2400 {
		t.Fatalf("subtotal: want 2400, got %d", totals.SubtotalCents)
	}
	if totals.EstimatedTaxCents != 198 {
		t.Fatalf("tax at 825 bps of 2400: want 198, got %d", totals.EstimatedTaxCents)
	}
	if totals.EstimatedShippingCents != 699 {
		t.Fatalf("shipping: want 699, got %d", totals.EstimatedShippingCents)
	}
	if totals.TotalCents != 2400+198+699 {
		t.Fatalf("total: want %d, got %d", 2400+198+699, totals.TotalCents)
	}
}

func TestReconcileIsPureAndRepeatable(t *testing.T) {
	lines := []Line{
		{ProductID: "kitty-box", Quantity: 2},
		{ProductID: "princess-castle", Quantity: 1},
	}
	prices := map[string]pricing.PriceRecord{
		"price_kitty":  {Ref: "price_kitty", UnitAmount: 1200, Currency: "usd"},
		"price_castle": {Ref: "price_castle", UnitAmount: 3500, Currency: "usd"},
	}
	catalog := testCatalog()

	first, firstTotals := Reconcile(lines, catalog, prices, testRates, nil)
	second, secondTotals := Reconcile(lines, catalog, prices, testRates, nil)

	if !reflect.DeepEqual(first, second) || firstTotals != secondTotals {
		t.Fatal("reconcile must be deterministic over identical inputs")
	}
	if lines[0].Quantity != 2 || lines[1].Quantity != 1 {
		t.Fatalf("reconcile must not mutate the cart, got %+v", lines)
	}
}

func TestReconcileDropsStaleProducts(t *testing.T) {
	lines := []Line{
		{ProductID: "discontinued", Quantity: 4},
		{ProductID: "kitty-box", Quantity: 1},
	}
	prices := map[string]pricing.PriceRecord{
		"price_kitty": {Ref: "price_kitty", UnitAmount: 1200, Currency: "usd"},
	}

	priced, totals := Reconcile(lines, testCatalog(), prices, testRates, logger.New("development"))

	if len(priced) != 1 || priced[0].Product.ID != "kitty-box" {
		t.Fatalf("stale line must be dropped from the view, got %+v", priced)
	}
	if totals.SubtotalCents != 1200 {
		t.Fatalf("subtotal: want 1200, got %d", totals.SubtotalCents)
	}
}

func TestReconcileExcludesUnpricedLinesFromSubtotal(t *testing.T) {
	lines := []Line{
		{ProductID: "kitty-box", Quantity: 1},
		{ProductID: "princess-castle", Quantity: 1},
	}
	prices := map[string]pricing.PriceRecord{
		"price_kitty": {Ref: "price_kitty", UnitAmount: 1200, Currency: "usd"},
	}

	priced, totals := Reconcile(lines, testCatalog(), prices, testRates, logger.New("development"))

	if len(priced) != 2 {
		t.Fatalf("unpriced line must stay visible, got %d lines", len(priced))
	}
	if priced[1].Priced {
		t.Fatal("castle line must be flagged unpriced")
	}
	if totals.SubtotalCents != 1200 {
		t.Fatalf("unpriced line must not contribute to subtotal, got %d", totals.SubtotalCents)
	}
	if !totals.HasUnpricedLines {
		t.Fatal("totals must flag the unpriced line")
	}
}

func TestReconcileAllUnpricedSkipsShipping(t *testing.T) {
	lines := []Line{{ProductID: "kitty-box", Quantity: 3}}

	_, totals := Reconcile(lines, testCatalog(), nil, testRates, logger.New("development"))

	if totals.SubtotalCents != 0 || totals.EstimatedShippingCents != 0 || totals.TotalCents != 0 {
		t.Fatalf("zero subtotal must mean zero shipping and total, got %+v", totals)
	}
	if !totals.HasUnpricedLines {
		t.Fatal("totals must flag the unpriced line")
	}
}

func TestReconcileTotalNeverBelowSubtotal(t *testing.T) {
	for qty := int64(1); qty <= 7; qty++ {
		lines := []Line{{ProductID: "kitty-box", Quantity: qty}}
		prices := map[string]pricing.PriceRecord{
			"price_kitty": {Ref: "price_kitty", UnitAmount: 1234, Currency: "usd"},
		}

		_, totals := Reconcile(lines, testCatalog(), prices, testRates, nil)

		if totals.TotalCents < totals.SubtotalCents {
			t.Fatalf("qty %d: total %d below subtotal %d", qty, totals.TotalCents, totals.SubtotalCents)
		}
	}
}
