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

var ErrRestockProductCommandIsNotConstructed = errors.New(
	"RestockProductCommand must be created via NewRestockProductCommand constructor",
)

// RestockProductCommand books a delivery of quantity units from a supplier.
type RestockProductCommand struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	actor     string
	notes     string

	guard guard.ConstructorGuard
}

func NewRestockProductCommand(productID kernel.UUID, quantity int, actor, notes string) (RestockProductCommand, error) {
	cmd := RestockProductCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	var quantityErr error
	if quantity < 1 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}

	actor, actorErr := requireActor(actor)
	if err := errors.Join(productID.Validate(), quantityErr, actorErr); err != nil {
		return RestockProductCommand{}, err
	}

	cmd.productID = productID
	cmd.quantity = quantity
	cmd.actor = actor
	return cmd, nil
}

func (c RestockProductCommand) Validate() error {
	return c.guard.Validate(ErrRestockProductCommandIsNotConstructed)
}

func (c RestockProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c RestockProductCommand) Quantity() int {
	return c.quantity
}

func (c RestockProductCommand) Actor() string {
	return c.actor
}

func (c RestockProductCommand) Notes() string {
	return c.notes
}

type RestockProductCommandHandler struct {
	movement stockMovement
}

func NewRestockProductCommandHandler(uowFactory StockUoWFactory) RestockProductCommandHandler {
	return RestockProductCommandHandler{movement: newStockMovement(uowFactory)}
}

func (h RestockProductCommandHandler) Handle(ctx context.Context, cmd RestockProductCommand) (inventory.StockEntry, error) {
	if err := cmd.Validate(); err != nil {
		return inventory.StockEntry{}, err
	}

	return h.movement.run(ctx, func(ctx context.Context, stock ledger.Ledger, now time.Time) (inventory.StockEntry, error) {
		return stock.Restock(ctx, cmd.ProductID(), cmd.Quantity(), cmd.Actor(), cmd.Notes(), now)
	})
}
