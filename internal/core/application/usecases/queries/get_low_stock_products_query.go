package queries

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrGetLowStockProductsQueryIsNotConstructed = errors.New(
	"GetLowStockProductsQuery must be created via NewGetLowStockProductsQuery constructor",
)

// GetLowStockProductsQuery lists products whose stock is at or below their
// low stock threshold.
type GetLowStockProductsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetLowStockProductsQuery() GetLowStockProductsQuery {
	return GetLowStockProductsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetLowStockProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockProductsQueryIsNotConstructed)
}
