package queries

import (
	"context"

	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetProductQueryHandler struct {
	db *gorm.DB
}

func NewGetProductQueryHandler(db *gorm.DB) GetProductQueryHandler {
	return GetProductQueryHandler{db: db}
}

// Handle returns the product or an ObjectNotFoundError.
func (h GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (ProductView, error) {
	if err := query.Validate(); err != nil {
		return ProductView{}, err
	}

	products, err := findProducts(ctx, h.db,
		`SELECT `+productColumns+` FROM products WHERE id = ?`,
		query.ProductID().Bytes(),
	)
	if err != nil {
		return ProductView{}, err
	}

	if len(products) == 0 {
		return ProductView{}, errs.NewObjectNotFoundError("product", query.ProductID().String())
	}
	return products[0], nil
}
