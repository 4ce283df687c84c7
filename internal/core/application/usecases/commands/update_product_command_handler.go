package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/inventory"
)

// UpdateProductCommandHandler edits catalog details under the product row lock,
// so a concurrent stock movement cannot write back a stale name or rate.
// Orders placed earlier keep the name and rate they were priced with.
type UpdateProductCommandHandler struct {
	uowFactory CatalogUoWFactory
	clock      func() time.Time
}

func NewUpdateProductCommandHandler(uowFactory CatalogUoWFactory) UpdateProductCommandHandler {
	return UpdateProductCommandHandler{
		uowFactory: uowFactory,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

func (h UpdateProductCommandHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*inventory.Product, error) {
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

	threshold := product.LowStockThreshold()
	if cmd.LowStockThreshold() != nil {
		threshold = *cmd.LowStockThreshold()
	}

	if err = product.UpdateDetails(cmd.Name(), cmd.Category(), threshold, cmd.Rate(), h.clock()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, product); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return product, nil
}
