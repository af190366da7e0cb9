// Package handler exposes the catalog HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"partyshop_backend/internal/catalog/service"
	"partyshop_backend/internal/catalog/transport"
	"partyshop_backend/platform/httpkit"
	"partyshop_backend/platform/validator"
)

const (
	msgInvalidRequest  = "invalid request"
	msgProductNotFound = "product not found"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	store *service.Store
	val   *validator.Validator
}

// New creates a new catalog handler.
func New(store *service.Store, val *validator.Validator) *Handler {
	return &Handler{store: store, val: val}
}

// ListProducts returns the catalog, optionally filtered by query and tag.
// GET /api/v1/catalog/products
func (h *Handler) ListProducts(c *gin.Context) {
	var req transport.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	products := h.store.Filter(req.Query, req.Tag)
	httpkit.OK(c, transport.ListProductsResponse{
		Products: transport.FromDomainList(products),
		Tags:     h.store.Tags(),
	})
}

// GetProduct returns one product by id.
// GET /api/v1/catalog/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	product, ok := h.store.ByID(c.Param("id"))
	if !ok {
		httpkit.Error(c, http.StatusNotFound, msgProductNotFound, nil)
		return
	}
	httpkit.OK(c, transport.FromDomain(product))
}
