package service

import (
	"testing"

	"partyshop_backend/internal/catalog/domain"
)

func testProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "princess-castle",
			Title:       "Princess Castle",
			Description: "Cardstock castle centerpiece",
			Tags:        []string{"Centerpieces", "Birthday"},
			PriceRef:    "price_castle",
			Images:      []string{"/biggercastle.jpg"},
		},
		{
			ID:          "kitty-box",
			Title:       "Kitty-Birthday-Party-Goodie-Box",
			Description: "Kitty themed goodie box",
			Tags:        []string{"Party Favors", "Kids", "Handmade"},
			PriceRef:    "price_kitty",
			Images:      []string{"/kittyhat.webp"},
		},
		{
			ID:          "sonic-boxes",
			Title:       "Sonic Inspired Goodie Boxes",
			Description: "Sonic inspired goodie boxes",
			Tags:        []string{"Party Favors", "Kids", "Handmade", "Birthday"},
			PriceRef:    "price_sonic_box",
		},
	}
}

func TestNewStoreSkipsInvalidAndDuplicateEntries(t *testing.T) {
	products := append(testProducts(),
		domain.Product{ID: "", Title: "no id", PriceRef: "price_x"},
		domain.Product{ID: "no-ref", Title: "no price ref"},
		domain.Product{ID: "kitty-box", Title: "duplicate", PriceRef: "price_dup"},
	)

	store := NewStore(products)

	if store.Len() != 3 {
		t.Fatalf("expected 3 products, got %d", store.Len())
	}
	p, ok := store.ByID("kitty-box")
	if !ok {
		t.Fatalf("expected kitty-box present")
	}
	if p.PriceRef != "price_kitty" {
		t.Fatalf("expected first occurrence kept, got priceRef=%q", p.PriceRef)
	}
}

func TestStorePreservesCatalogOrder(t *testing.T) {
	store := NewStore(testProducts())

	all := store.All()
	want := []string{"princess-castle", "kitty-box", "sonic-boxes"}
	for i, id := range want {
		if all[i].ID != id {
			t.Fatalf("expected product %d to be %q, got %q", i, id, all[i].ID)
		}
	}
}

func TestStorePriceRefsDeduplicated(t *testing.T) {
	products := append(testProducts(), domain.Product{
		ID:       "kitty-box-bundle",
		Title:    "Kitty Box Bundle",
		PriceRef: "price_kitty",
	})

	refs := NewStore(products).PriceRefs()

	want := []string{"price_castle", "price_kitty", "price_sonic_box"}
	if len(refs) != len(want) {
		t.Fatalf("expected %d refs, got %d: %v", len(want), len(refs), refs)
	}
	for i := range want {
		if refs[i] != want[i] {
			t.Fatalf("expected ref %d to be %q, got %q", i, want[i], refs[i])
		}
	}
}

func TestStoreFilterByTagAndQuery(t *testing.T) {
	store := NewStore(testProducts())

	if got := store.Filter("", "Party Favors"); len(got) != 2 {
		t.Fatalf("expected 2 favors, got %d", len(got))
	}
	if got := store.Filter("sonic", ""); len(got) != 1 || got[0].ID != "sonic-boxes" {
		t.Fatalf("expected sonic-boxes for query, got %v", got)
	}
	if got := store.Filter("", "All"); len(got) != 3 {
		t.Fatalf("expected All tag to match everything, got %d", len(got))
	}
	if got := store.Filter("castle", "Kids"); len(got) != 0 {
		t.Fatalf("expected no match for castle+Kids, got %d", len(got))
	}
}

func TestStoreTagsSortedUnique(t *testing.T) {
	tags := NewStore(testProducts()).Tags()

	want := []string{"Birthday", "Centerpieces", "Handmade", "Kids", "Party Favors"}
	if len(tags) != len(want) {
		t.Fatalf("expected %d tags, got %d: %v", len(want), len(tags), tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("expected tag %d to be %q, got %q", i, want[i], tags[i])
		}
	}
}
