// Package ledger implements the stock ledger: the only code path that changes
// a product's stock count. Every mutation locks the product row, applies the
// change on the aggregate and appends exactly one stock history entry, all
// through the repositories of the caller's unit of work.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// Store gives the ledger access to the repositories of an open unit of work.
type Store interface {
	ProductRepository() ports.ProductRepository
	StockHistoryRepository() ports.StockHistoryRepository
}

// Ledger records stock movements inside the caller's transaction. It holds no
// state of its own; create one per unit of work.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	stock := ledger.New(uow)
//	if _, err := stock.Deduct(ctx, productID, 2, &orderID, "seller", time.Now()); err != nil {
//	    return err // errs.ErrInsufficientStock leaves nothing written
//	}
//	return uow.Commit(ctx)
type Ledger struct {
	store Store
}

// New binds a ledger to store.
func New(store Store) Ledger {
	return Ledger{store: store}
}

// Deduct removes quantity units of a product for an order.
func (l Ledger) Deduct(
	ctx context.Context,
	productID kernel.UUID,
	quantity int,
	orderID *kernel.UUID,
	actor string,
	now time.Time,
) (inventory.StockEntry, error) {
	note := "Stock deducted"
	if orderID != nil {
		note = "Stock deducted for order #" + orderID.String()
	}

	return l.apply(ctx, productID, orderID, inventory.OrderConfirmed, actor, now, note,
		func(p *inventory.Product) (inventory.Movement, error) {
			return p.Deduct(quantity, now)
		})
}

// Restore returns quantity units of a product, typically from a canceled order.
func (l Ledger) Restore(
	ctx context.Context,
	productID kernel.UUID,
	quantity int,
	orderID *kernel.UUID,
	actor string,
	now time.Time,
) (inventory.StockEntry, error) {
	note := "Stock restored"
	if orderID != nil {
		note = "Stock restored from canceled order #" + orderID.String()
	}

	return l.apply(ctx, productID, orderID, inventory.OrderCanceled, actor, now, note,
		func(p *inventory.Product) (inventory.Movement, error) {
			return p.Restore(quantity, now)
		})
}

// Adjust sets the stock of a product to newQuantity and records the signed delta.
func (l Ledger) Adjust(
	ctx context.Context,
	productID kernel.UUID,
	newQuantity int,
	actor, notes string,
	now time.Time,
) (inventory.StockEntry, error) {
	return l.apply(ctx, productID, nil, inventory.ManualAdjustment, actor, now, strings.TrimSpace(notes),
		func(p *inventory.Product) (inventory.Movement, error) {
			return p.Adjust(newQuantity, now)
		})
}

// Restock adds received units to a product.
func (l Ledger) Restock(
	ctx context.Context,
	productID kernel.UUID,
	quantity int,
	actor, notes string,
	now time.Time,
) (inventory.StockEntry, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		notes = fmt.Sprintf("Restocked %d units", quantity)
	}

	return l.apply(ctx, productID, nil, inventory.Restock, actor, now, notes,
		func(p *inventory.Product) (inventory.Movement, error) {
			return p.Restore(quantity, now)
		})
}

func (l Ledger) apply(
	ctx context.Context,
	productID kernel.UUID,
	orderID *kernel.UUID,
	changeType inventory.ChangeType,
	actor string,
	now time.Time,
	note string,
	mutate func(*inventory.Product) (inventory.Movement, error),
) (inventory.StockEntry, error) {
	if strings.TrimSpace(actor) == "" {
		return inventory.StockEntry{}, errs.NewValueIsRequiredError("actor")
	}

	products := l.store.ProductRepository()
	product, err := products.GetForUpdate(ctx, productID)
	if err != nil {
		return inventory.StockEntry{}, err
	}

	movement, err := mutate(product)
	if err != nil {
		return inventory.StockEntry{}, err
	}

	entry, err := inventory.NewStockEntry(productID, orderID, changeType, movement, actor, now, note)
	if err != nil {
		return inventory.StockEntry{}, err
	}

	if err = products.Update(ctx, product); err != nil {
		return inventory.StockEntry{}, err
	}

	if err = l.store.StockHistoryRepository().Append(ctx, entry); err != nil {
		return inventory.StockEntry{}, err
	}

	return entry, nil
}
