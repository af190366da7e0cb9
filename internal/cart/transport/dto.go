// Package transport defines the request and response shapes of the cart
// HTTP surface.
package transport

// AddItemRequest adds one unit of a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// UpdateItemRequest sets the absolute quantity of a cart line. A quantity
// below one removes the line.
type UpdateItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// LineResponse is one cart line joined with catalog and price data. Unit
// amount and line total are omitted when the price reference did not
// resolve; the priced flag tells the two cases apart from a zero price.
type LineResponse struct {
	ProductID  string `json:"productId"`
	Title      string `json:"title"`
	Image      string `json:"image,omitempty"`
	PriceRef   string `json:"priceRef"`
	Quantity   int64  `json:"quantity"`
	UnitAmount *int64 `json:"unitAmount,omitempty"`
	LineTotal  *int64 `json:"lineTotal,omitempty"`
	Currency   string `json:"currency,omitempty"`
	Priced     bool   `json:"priced"`
}

// CartResponse is the full reconciled cart view. All amounts are integer
// cents; tax and shipping are display estimates.
type CartResponse struct {
	Lines                  []LineResponse `json:"lines"`
	SubtotalCents          int64          `json:"subtotalCents"`
	EstimatedTaxCents      int64          `json:"estimatedTaxCents"`
	EstimatedShippingCents int64          `json:"estimatedShippingCents"`
	TotalCents             int64          `json:"totalCents"`
	HasUnpricedLines       bool           `json:"hasUnpricedLines"`
}
