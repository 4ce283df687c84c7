package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/application/ledger"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrAdjustStockCommandIsNotConstructed = errors.New(
	"AdjustStockCommand must be created via NewAdjustStockCommand constructor",
)

// AdjustStockCommand sets a product's stock to an absolute count, for example
// after a physical stock take.
type AdjustStockCommand struct { //nolint:recvcheck //using for validation
	productID   kernel.UUID
	newQuantity int
	actor       string
	notes       string

	guard guard.ConstructorGuard
}

func NewAdjustStockCommand(productID kernel.UUID, newQuantity int, actor, notes string) (AdjustStockCommand, error) {
	cmd := AdjustStockCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	var quantityErr error
	if newQuantity < 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("stock quantity", fmt.Errorf("%d is negative", newQuantity))
	}

	actor, actorErr := requireActor(actor)
	if err := errors.Join(productID.Validate(), quantityErr, actorErr); err != nil {
		return AdjustStockCommand{}, err
	}

	cmd.productID = productID
	cmd.newQuantity = newQuantity
	cmd.actor = actor
	return cmd, nil
}

func (c AdjustStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustStockCommandIsNotConstructed)
}

func (c AdjustStockCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c AdjustStockCommand) NewQuantity() int {
	return c.newQuantity
}

func (c AdjustStockCommand) Actor() string {
	return c.actor
}

func (c AdjustStockCommand) Notes() string {
	return c.notes
}

// AdjustStockCommandHandler records manual adjustments in the stock ledger.
type AdjustStockCommandHandler struct {
	movement stockMovement
}

func NewAdjustStockCommandHandler(uowFactory StockUoWFactory) AdjustStockCommandHandler {
	return AdjustStockCommandHandler{movement: newStockMovement(uowFactory)}
}

func (h AdjustStockCommandHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (inventory.StockEntry, error) {
	if err := cmd.Validate(); err != nil {
		return inventory.StockEntry{}, err
	}

	return h.movement.run(ctx, func(ctx context.Context, stock ledger.Ledger, now time.Time) (inventory.StockEntry, error) {
		return stock.Adjust(ctx, cmd.ProductID(), cmd.NewQuantity(), cmd.Actor(), cmd.Notes(), now)
	})
}
