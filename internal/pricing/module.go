package pricing

import (
	"time"

	"github.com/redis/go-redis/v9"

	apphttp "partyshop_backend/internal/http"
	"partyshop_backend/platform/logger"
	"partyshop_backend/platform/validator"
)

// Module is the pricing bounded context module implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates and initializes the pricing module.
func NewModule(provider ProviderClient, redisClient *redis.Client, cacheTTL time.Duration, val *validator.Validator, log *logger.Logger) *Module {
	var cache *Cache
	if redisClient != nil {
		cache = NewCache(redisClient, cacheTTL, log)
	}

	svc := NewService(provider, cache, log)
	return &Module{
		handler: NewHandler(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pricing"
}

// Service returns the pricing service for other modules.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts pricing routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/prices", m.handler.LookupPrices)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
