package commands

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrUpdateBillCommandIsNotConstructed = errors.New(
	"UpdateBillCommand must be created via NewUpdateBillCommand constructor",
)

// UpdateBillCommand records the final bill of an order in processing.
// The amount is range-checked against the order total by the handler, after
// the order state.
type UpdateBillCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	amount  kernel.Money
	notes   string
	actor   string

	guard guard.ConstructorGuard
}

func NewUpdateBillCommand(orderID kernel.UUID, amount kernel.Money, notes, actor string) (UpdateBillCommand, error) {
	cmd := UpdateBillCommand{
		notes: strings.TrimSpace(notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmount(amount),
		cmd.setActor(actor),
	); err != nil {
		return UpdateBillCommand{}, err
	}

	return cmd, nil
}

func (c UpdateBillCommand) Validate() error {
	return c.guard.Validate(ErrUpdateBillCommandIsNotConstructed)
}

func (c UpdateBillCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateBillCommand) Amount() kernel.Money {
	return c.amount
}

func (c UpdateBillCommand) Notes() string {
	return c.notes
}

func (c UpdateBillCommand) Actor() string {
	return c.actor
}

func (c *UpdateBillCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateBillCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("final bill amount", err)
	}
	c.amount = amount
	return nil
}

func (c *UpdateBillCommand) setActor(actor string) error {
	actor, err := requireActor(actor)
	if err != nil {
		return err
	}
	c.actor = actor
	return nil
}
