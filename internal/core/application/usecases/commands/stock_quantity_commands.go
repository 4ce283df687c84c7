package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/application/ledger"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrDeductStockCommandIsNotConstructed = errors.New(
		"DeductStockCommand must be created via NewDeductStockCommand constructor",
	)
	ErrRestoreStockCommandIsNotConstructed = errors.New(
		"RestoreStockCommand must be created via NewRestoreStockCommand constructor",
	)
)

// stockQuantityCommand carries the fields shared by DeductStockCommand and
// RestoreStockCommand.
type stockQuantityCommand struct {
	productID kernel.UUID
	quantity  int
	orderID   *kernel.UUID
	actor     string

	guard guard.ConstructorGuard
}

func newStockQuantityCommand(
	productID kernel.UUID,
	quantity int,
	orderID *kernel.UUID,
	actor string,
) (stockQuantityCommand, error) {
	cmd := stockQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	var quantityErr error
	if quantity < 1 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}

	var orderErr error
	if orderID != nil {
		orderErr = orderID.Validate()
	}

	actor, actorErr := requireActor(actor)
	if err := errors.Join(productID.Validate(), quantityErr, orderErr, actorErr); err != nil {
		return stockQuantityCommand{}, err
	}

	cmd.productID = productID
	cmd.quantity = quantity
	cmd.actor = actor
	if orderID != nil {
		id := *orderID
		cmd.orderID = &id
	}
	return cmd, nil
}

func (c stockQuantityCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c stockQuantityCommand) Quantity() int {
	return c.quantity
}

// OrderID is nil for movements not tied to an order.
func (c stockQuantityCommand) OrderID() *kernel.UUID {
	return c.orderID
}

func (c stockQuantityCommand) Actor() string {
	return c.actor
}

// DeductStockCommand removes stock outside of an order confirmation.
type DeductStockCommand struct {
	stockQuantityCommand
}

func NewDeductStockCommand(productID kernel.UUID, quantity int, orderID *kernel.UUID, actor string) (DeductStockCommand, error) {
	cmd, err := newStockQuantityCommand(productID, quantity, orderID, actor)
	if err != nil {
		return DeductStockCommand{}, err
	}
	return DeductStockCommand{cmd}, nil
}

func (c DeductStockCommand) Validate() error {
	return c.guard.Validate(ErrDeductStockCommandIsNotConstructed)
}

// RestoreStockCommand returns stock outside of an order cancellation.
type RestoreStockCommand struct {
	stockQuantityCommand
}

func NewRestoreStockCommand(productID kernel.UUID, quantity int, orderID *kernel.UUID, actor string) (RestoreStockCommand, error) {
	cmd, err := newStockQuantityCommand(productID, quantity, orderID, actor)
	if err != nil {
		return RestoreStockCommand{}, err
	}
	return RestoreStockCommand{cmd}, nil
}

func (c RestoreStockCommand) Validate() error {
	return c.guard.Validate(ErrRestoreStockCommandIsNotConstructed)
}

// DeductStockCommandHandler exposes Ledger.Deduct as a standalone operation.
type DeductStockCommandHandler struct {
	movement stockMovement
}

func NewDeductStockCommandHandler(uowFactory StockUoWFactory) DeductStockCommandHandler {
	return DeductStockCommandHandler{movement: newStockMovement(uowFactory)}
}

func (h DeductStockCommandHandler) Handle(ctx context.Context, cmd DeductStockCommand) (inventory.StockEntry, error) {
	if err := cmd.Validate(); err != nil {
		return inventory.StockEntry{}, err
	}

	return h.movement.run(ctx, func(ctx context.Context, stock ledger.Ledger, now time.Time) (inventory.StockEntry, error) {
		return stock.Deduct(ctx, cmd.ProductID(), cmd.Quantity(), cmd.OrderID(), cmd.Actor(), now)
	})
}

// RestoreStockCommandHandler exposes Ledger.Restore as a standalone operation.
type RestoreStockCommandHandler struct {
	movement stockMovement
}

func NewRestoreStockCommandHandler(uowFactory StockUoWFactory) RestoreStockCommandHandler {
	return RestoreStockCommandHandler{movement: newStockMovement(uowFactory)}
}

func (h RestoreStockCommandHandler) Handle(ctx context.Context, cmd RestoreStockCommand) (inventory.StockEntry, error) {
	if err := cmd.Validate(); err != nil {
		return inventory.StockEntry{}, err
	}

	return h.movement.run(ctx, func(ctx context.Context, stock ledger.Ledger, now time.Time) (inventory.StockEntry, error) {
		return stock.Restore(ctx, cmd.ProductID(), cmd.Quantity(), cmd.OrderID(), cmd.Actor(), now)
	})
}
