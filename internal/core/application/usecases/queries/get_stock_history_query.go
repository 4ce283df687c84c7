package queries

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetStockHistoryQueryIsNotConstructed = errors.New(
	"GetStockHistoryQuery must be created via NewGetStockHistoryQuery constructor",
)

// GetStockHistoryQuery retrieves the stock ledger of one product, newest
// entry first.
type GetStockHistoryQuery struct {
	productID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetStockHistoryQuery(productID kernel.UUID) (GetStockHistoryQuery, error) {
	if err := productID.Validate(); err != nil {
		return GetStockHistoryQuery{}, err
	}
	return GetStockHistoryQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStockHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetStockHistoryQueryIsNotConstructed)
}

func (q GetStockHistoryQuery) ProductID() kernel.UUID {
	return q.productID
}
