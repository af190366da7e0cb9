// Package domain holds the catalog domain types.
package domain

// Product is a storefront catalog entry. The price reference names the
// provider-side price record; no monetary amount is stored locally.
// Products are immutable after load.
type Product struct {
	ID          string
	Title       string
	Description string
	Tags        []string
	PriceRef    string
	Images      []string
}

// PrimaryImage returns the first image URL, or empty when none exist.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
