// Package service provides the in-memory catalog store.
//
// The catalog is read-only at runtime: products are loaded once at startup
// and every lookup after that is served from memory.
package service

import (
	"sort"
	"strings"

	"partyshop_backend/internal/catalog/domain"
)

// Store is the immutable product catalog.
type Store struct {
	products []domain.Product
	byID     map[string]domain.Product
}

// NewStore builds a store from the loaded products, preserving their order.
// A product with a duplicate id or an empty price reference is skipped.
func NewStore(products []domain.Product) *Store {
	s := &Store{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]domain.Product, len(products)),
	}
	for _, p := range products {
		if p.ID == "" || p.PriceRef == "" {
			continue
		}
		if _, exists := s.byID[p.ID]; exists {
			continue
		}
		s.byID[p.ID] = p
		s.products = append(s.products, p)
	}
	return s
}

// All returns every product in catalog order.
func (s *Store) All() []domain.Product {
	return s.products
}

// ByID looks up a product by its identifier.
func (s *Store) ByID(id string) (domain.Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Len returns the number of products.
func (s *Store) Len() int {
	return len(s.products)
}

// PriceRefs returns the deduplicated price references in catalog order.
func (s *Store) PriceRefs() []string {
	seen := make(map[string]struct{}, len(s.products))
	refs := make([]string, 0, len(s.products))
	for _, p := range s.products {
		if _, ok := seen[p.PriceRef]; ok {
			continue
		}
		seen[p.PriceRef] = struct{}{}
		refs = append(refs, p.PriceRef)
	}
	return refs
}

// Tags returns the sorted set of tags used across the catalog.
func (s *Store) Tags() []string {
	seen := make(map[string]struct{})
	for _, p := range s.products {
		for _, tag := range p.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Filter returns products matching the free-text query and tag. An empty
// query matches everything; an empty tag (or "All") matches every tag.
func (s *Store) Filter(query, tag string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	matchAllTags := tag == "" || strings.EqualFold(tag, "All")

	var matched []domain.Product
	for _, p := range s.products {
		if !matchAllTags && !hasTag(p, tag) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

func hasTag(p domain.Product, tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
