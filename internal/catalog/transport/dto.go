// Package transport defines the catalog HTTP request/response shapes.
package transport

import "partyshop_backend/internal/catalog/domain"

// ListProductsRequest carries the optional catalog filters.
type ListProductsRequest struct {
	Query string `form:"q" validate:"omitempty,max=200"`
	Tag   string `form:"tag" validate:"omitempty,max=100"`
}

// ProductResponse is the wire form of a catalog product.
type ProductResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	PriceRef    string   `json:"priceRef"`
	Images      []string `json:"images"`
}

// ListProductsResponse is the catalog listing payload.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Tags     []string          `json:"tags"`
}

// FromDomain converts a product to its wire form.
func FromDomain(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Tags,
		PriceRef:    p.PriceRef,
		Images:      p.Images,
	}
}

// FromDomainList converts a product slice to its wire form.
func FromDomainList(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, FromDomain(p))
	}
	return out
}
