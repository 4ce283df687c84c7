package queries

import (
	"context"

	"gorm.io/gorm"
)

type GetLowStockProductsQueryHandler struct {
	db *gorm.DB
}

func NewGetLowStockProductsQueryHandler(db *gorm.DB) GetLowStockProductsQueryHandler {
	return GetLowStockProductsQueryHandler{db: db}
}

// Handle returns low stock products, lowest stock first.
func (h GetLowStockProductsQueryHandler) Handle(
	ctx context.Context,
	query GetLowStockProductsQuery,
) ([]ProductView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return findProducts(ctx, h.db, `
		SELECT `+productColumns+`
		FROM products
		WHERE stock_quantity <= low_stock_threshold
		ORDER BY stock_quantity ASC, name ASC
	`)
}
