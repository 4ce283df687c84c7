package commands

import (
	"context"
	"time"

	"storefront/internal/core/application/ledger"
	"storefront/internal/core/domain/model/inventory"
)

type stockMovementFunc func(ctx context.Context, stock ledger.Ledger, now time.Time) (inventory.StockEntry, error)

// stockMovement runs a single ledger operation in its own unit of work.
type stockMovement struct {
	uowFactory StockUoWFactory
	clock      func() time.Time
}

func newStockMovement(uowFactory StockUoWFactory) stockMovement {
	return stockMovement{
		uowFactory: uowFactory,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

func (m stockMovement) run(ctx context.Context, move stockMovementFunc) (inventory.StockEntry, error) {
	uow := m.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return inventory.StockEntry{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	entry, err := move(ctx, ledger.New(uow), m.clock())
	if err != nil {
		return inventory.StockEntry{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return inventory.StockEntry{}, err
	}

	return entry, nil
}
