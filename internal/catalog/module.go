// Package catalog provides the catalog bounded context module.
package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"partyshop_backend/internal/catalog/handler"
	"partyshop_backend/internal/catalog/repository"
	"partyshop_backend/internal/catalog/service"
	apphttp "partyshop_backend/internal/http"
	"partyshop_backend/platform/logger"
	"partyshop_backend/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	store   *service.Store
}

// NewModule loads the catalog from the database and initializes the module.
// The load happens once; the store is read-only afterwards.
func NewModule(ctx context.Context, pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) (*Module, error) {
	repo := repository.New(pool)
	products, err := repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	store := service.NewStore(products)
	log.Info("catalog loaded", "products", store.Len())

	return &Module{
		handler: handler.New(store, val),
		store:   store,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Store returns the in-memory catalog for other modules.
func (m *Module) Store() *service.Store {
	return m.store
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/catalog/products", m.handler.ListProducts)
	ctx.V1.GET("/catalog/products/:id", m.handler.GetProduct)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
