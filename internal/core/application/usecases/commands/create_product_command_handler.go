package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/inventory"
)

// CreateProductCommandHandler seeds the catalog. The opening stock is not
// recorded in the stock history; later movements are.
type CreateProductCommandHandler struct {
	uowFactory CatalogUoWFactory
	clock      func() time.Time
}

func NewCreateProductCommandHandler(uowFactory CatalogUoWFactory) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

func (h CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*inventory.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	product, err := inventory.NewProduct(
		cmd.ProductID(), cmd.Name(), cmd.Category(), cmd.StockQuantity(), cmd.LowStockThreshold(), cmd.Rate(), h.clock(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ProductRepository().Add(ctx, product); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return product, nil
}
