package pricing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"partyshop_backend/platform/httpkit"
	"partyshop_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

// LookupRequest is the price lookup payload.
type LookupRequest struct {
	PriceIDs []string `json:"priceIds" validate:"omitempty,max=100,dive,max=200"`
}

// PriceResponse is the wire form of one resolved price.
type PriceResponse struct {
	UnitAmount int64  `json:"unitAmount"`
	Currency   string `json:"currency"`
}

// Handler handles HTTP requests for price lookups.
type Handler struct {
	svc *Service
	val *validator.Validator
}

// NewHandler creates a new pricing handler.
func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// LookupPrices resolves price references for display.
// POST /api/v1/prices
func (h *Handler) LookupPrices(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	records := h.svc.FetchPrices(c.Request.Context(), req.PriceIDs)

	response := make(map[string]PriceResponse, len(records))
	for ref, rec := range records {
		response[ref] = PriceResponse{UnitAmount: rec.UnitAmount, Currency: rec.Currency}
	}
	httpkit.OK(c, response)
}
