package checkout

import (
	apphttp "partyshop_backend/internal/http"
	"partyshop_backend/platform/config"
	"partyshop_backend/platform/logger"
	"partyshop_backend/platform/validator"
)

// Module is the checkout module.
type Module struct {
	handler *Handler
}

// NewModule creates the checkout module.
func NewModule(provider Provider, providerCfg config.ProviderConfig, cookies config.CartConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := NewService(provider, log)
	return &Module{handler: NewHandler(svc, providerCfg, cookies, val)}
}

// Name implements the http.Module interface.
func (m *Module) Name() string {
	return "checkout"
}

// RegisterRoutes mounts the session-creation endpoint behind the stricter
// checkout rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/checkout")
	group.POST("/session", ctx.CheckoutRateLimiter.RateLimit(), m.handler.CreateSession)
}
