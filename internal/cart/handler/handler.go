// Package handler exposes the cart HTTP endpoints. Every response returns
// the full reconciled cart view so the client never has to derive totals
// itself.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"partyshop_backend/internal/cart/service"
	"partyshop_backend/internal/cart/transport"
	"partyshop_backend/internal/pricing"
	"partyshop_backend/platform/config"
	"partyshop_backend/platform/httpkit"
	"partyshop_backend/platform/logger"
	"partyshop_backend/platform/validator"
)

const (
	msgInvalidRequest  = "invalid request"
	msgProductUnknown  = "unknown product"
	msgCartUnavailable = "cart is temporarily unavailable"
)

// Catalog is the slice of the product store the cart needs.
type Catalog interface {
	service.ProductSource
}

// Handler handles HTTP requests for the cart.
type Handler struct {
	store   *service.Store
	catalog Catalog
	prices  *pricing.Service
	rates   service.Rates
	cookies config.CartConfig
	val     *validator.Validator
	log     *logger.Logger
}

// New creates a new cart handler.
func New(store *service.Store, catalog Catalog, prices *pricing.Service, rates service.Rates, cookies config.CartConfig, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{store: store, catalog: catalog, prices: prices, rates: rates, cookies: cookies, val: val, log: log}
}

// GetCart returns the reconciled cart for the caller's session.
// GET /api/v1/cart
func (h *Handler) GetCart(c *gin.Context) {
	cartID := httpkit.CartID(c, h.cookies)
	lines := h.store.Get(c.Request.Context(), cartID)
	httpkit.OK(c, h.view(c, lines))
}

// AddItem adds one unit of a product to the cart.
// POST /api/v1/cart/items
func (h *Handler) AddItem(c *gin.Context) {
	var req transport.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if _, ok := h.catalog.ByID(req.ProductID); !ok {
		httpkit.Error(c, http.StatusNotFound, msgProductUnknown, nil)
		return
	}

	cartID := httpkit.CartID(c, h.cookies)
	lines, err := h.store.Add(c.Request.Context(), cartID, req.ProductID)
	if err != nil {
		httpkit.Error(c, http.StatusServiceUnavailable, msgCartUnavailable, nil)
		return
	}
	httpkit.OK(c, h.view(c, lines))
}

// UpdateItem sets the absolute quantity of a cart line. A quantity below
// one removes the line.
// PUT /api/v1/cart/items/:productId
func (h *Handler) UpdateItem(c *gin.Context) {
	var req transport.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	productID := c.Param("productId")
	if _, ok := h.catalog.ByID(productID); !ok {
		httpkit.Error(c, http.StatusNotFound, msgProductUnknown, nil)
		return
	}

	cartID := httpkit.CartID(c, h.cookies)
	lines, err := h.store.SetQuantity(c.Request.Context(), cartID, productID, req.Quantity)
	if err != nil {
		httpkit.Error(c, http.StatusServiceUnavailable, msgCartUnavailable, nil)
		return
	}
	httpkit.OK(c, h.view(c, lines))
}

// RemoveItem deletes a cart line. Removing an absent product is a no-op
// and still returns the current cart.
// DELETE /api/v1/cart/items/:productId
func (h *Handler) RemoveItem(c *gin.Context) {
	cartID := httpkit.CartID(c, h.cookies)
	lines, err := h.store.Remove(c.Request.Context(), cartID, c.Param("productId"))
	if err != nil {
		httpkit.Error(c, http.StatusServiceUnavailable, msgCartUnavailable, nil)
		return
	}
	httpkit.OK(c, h.view(c, lines))
}

// view reconciles persisted lines into the response shape, fetching fresh
// prices for the referenced products.
func (h *Handler) view(c *gin.Context, lines []service.Line) transport.CartResponse {
	refs := make([]string, 0, len(lines))
	for _, line := range lines {
		if product, ok := h.catalog.ByID(line.ProductID); ok {
			refs = append(refs, product.PriceRef)
		}
	}
	prices := h.prices.FetchPrices(c.Request.Context(), refs)

	priced, totals := service.Reconcile(lines, h.catalog, prices, h.rates, h.log)

	resp := transport.CartResponse{
		Lines:                  make([]transport.LineResponse, 0, len(priced)),
		SubtotalCents:          totals.SubtotalCents,
		EstimatedTaxCents:      totals.EstimatedTaxCents,
		EstimatedShippingCents: totals.EstimatedShippingCents,
		TotalCents:             totals.TotalCents,
		HasUnpricedLines:       totals.HasUnpricedLines,
	}
	for _, pl := range priced {
		line := transport.LineResponse{
			ProductID: pl.Product.ID,
			Title:     pl.Product.Title,
			Image:     pl.Product.PrimaryImage(),
			PriceRef:  pl.Product.PriceRef,
			Quantity:  pl.Quantity,
			Currency:  pl.Currency,
			Priced:    pl.Priced,
		}
		if pl.Priced {
			unit, total := pl.UnitAmount, pl.LineTotal
			line.UnitAmount = &unit
			line.LineTotal = &total
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}
