package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListProductsQueryHandler struct {
	db *gorm.DB
}

func NewListProductsQueryHandler(db *gorm.DB) ListProductsQueryHandler {
	return ListProductsQueryHandler{db: db}
}

func (h ListProductsQueryHandler) Handle(ctx context.Context, query ListProductsQuery) ([]ProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.Category() == "" {
		return findProducts(ctx, h.db, `SELECT `+productColumns+` FROM products ORDER BY name ASC, id ASC`)
	}

	return findProducts(ctx, h.db, `
		SELECT `+productColumns+`
		FROM products
		WHERE lower(category) = lower(?)
		ORDER BY name ASC, id ASC
	`, query.Category())
}
