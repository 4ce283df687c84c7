package commands

import (
	"context"

	"storefront/internal/core/domain/model/inventory"
)

// DeleteProductCommandHandler drops a catalog entry and returns it as it was.
// Stock history and order item snapshots referring to the product stay.
type DeleteProductCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewDeleteProductCommandHandler(uowFactory CatalogUoWFactory) DeleteProductCommandHandler {
	return DeleteProductCommandHandler{uowFactory: uowFactory}
}

func (h DeleteProductCommandHandler) Handle(ctx context.Context, cmd DeleteProductCommand) (*inventory.Product, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ProductRepository()
	product, err := repo.GetForUpdate(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	if err = repo.Delete(ctx, product.ID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return product, nil
}
