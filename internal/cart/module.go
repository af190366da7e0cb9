// Package cart wires the cart store, reconciliation and HTTP surface
// together.
package cart

import (
	"time"

	"github.com/redis/go-redis/v9"

	"partyshop_backend/internal/cart/handler"
	"partyshop_backend/internal/cart/service"
	apphttp "partyshop_backend/internal/http"
	"partyshop_backend/internal/pricing"
	"partyshop_backend/platform/config"
	"partyshop_backend/platform/logger"
	"partyshop_backend/platform/validator"
)

// Abandoned carts linger this long after their last mutation.
const storeTTL = 30 * 24 * time.Hour

// Module is the cart module.
type Module struct {
	store   *service.Store
	handler *handler.Handler
}

// NewModule creates the cart module.
func NewModule(redisClient *redis.Client, catalog handler.Catalog, prices *pricing.Service, cookies config.CartConfig, rates service.Rates, val *validator.Validator, log *logger.Logger) *Module {
	store := service.NewStore(redisClient, storeTTL, log)
	return &Module{
		store:   store,
		handler: handler.New(store, catalog, prices, rates, cookies, val, log),
	}
}

// Name implements the http.Module interface.
func (m *Module) Name() string {
	return "cart"
}

// Store exposes the persistence layer to the checkout module.
func (m *Module) Store() *service.Store {
	return m.store
}

// RegisterRoutes mounts the cart endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/cart")
	group.GET("", m.handler.GetCart)
	group.POST("/items", m.handler.AddItem)
	group.PUT("/items/:productId", m.handler.UpdateItem)
	group.DELETE("/items/:productId", m.handler.RemoveItem)
}
