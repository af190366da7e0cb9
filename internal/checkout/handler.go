package checkout

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"partyshop_backend/internal/payments"
	"partyshop_backend/platform/config"
	"partyshop_backend/platform/httpkit"
	"partyshop_backend/platform/validator"
)

// CheckoutItem is one submitted line: an existing provider price reference
// and a quantity.
type CheckoutItem struct {
	Price    string `json:"price" validate:"required"`
	Quantity int64  `json:"quantity" validate:"required,min=1"`
}

// CheckoutRequest starts a checkout. The redirect URLs are optional and
// default to the site's success and cart pages.
type CheckoutRequest struct {
	Items      []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	SuccessURL string         `json:"successUrl" validate:"omitempty,url"`
	CancelURL  string         `json:"cancelUrl" validate:"omitempty,url"`
}

// CheckoutResponse carries the hosted session redirect URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// Handler handles HTTP requests for checkout.
type Handler struct {
	svc     *Service
	siteURL string
	cookies config.CartConfig
	val     *validator.Validator
}

// NewHandler creates the checkout handler.
func NewHandler(svc *Service, provider config.ProviderConfig, cookies config.CartConfig, val *validator.Validator) *Handler {
	return &Handler{svc: svc, siteURL: provider.GetSiteBaseURL(), cookies: cookies, val: val}
}

// CreateSession starts a checkout attempt and returns the redirect URL.
// POST /api/v1/checkout/session
func (h *Handler) CreateSession(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = h.siteURL + "/success"
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = h.siteURL + "/cart"
	}

	lines := make([]payments.SessionLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, payments.SessionLine{PriceRef: item.Price, Quantity: item.Quantity})
	}

	cartID := httpkit.CartID(c, h.cookies)
	url, err := h.svc.StartCheckout(c.Request.Context(), cartID, lines, successURL, cancelURL)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, CheckoutResponse{URL: url})
}
