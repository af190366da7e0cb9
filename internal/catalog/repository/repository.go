// Package repository loads the product catalog from Postgres.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"partyshop_backend/internal/catalog/domain"
)

// Repository reads catalog products.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListProducts returns all products in catalog order with their tags and
// image URLs attached.
func (r *Repo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, title, description, price_ref
		FROM products
		ORDER BY position, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	index := make(map[string]int)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.PriceRef); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if err := r.attachTags(ctx, products, index); err != nil {
		return nil, err
	}
	if err := r.attachImages(ctx, products, index); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *Repo) attachTags(ctx context.Context, products []domain.Product, index map[string]int) error {
	query := `
		SELECT product_id, tag
		FROM product_tags
		ORDER BY product_id, tag`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("list product tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID, tag string
		if err := rows.Scan(&productID, &tag); err != nil {
			return fmt.Errorf("scan product tag: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Tags = append(products[i].Tags, tag)
		}
	}
	return rows.Err()
}

func (r *Repo) attachImages(ctx context.Context, products []domain.Product, index map[string]int) error {
	query := `
		SELECT product_id, url
		FROM product_images
		ORDER BY product_id, position`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID, url string
		if err := rows.Scan(&productID, &url); err != nil {
			return fmt.Errorf("scan product image: %w", err)
		}
		if i, ok := index[productID]; ok {
			products[i].Images = append(products[i].Images, url)
		}
	}
	return rows.Err()
}
