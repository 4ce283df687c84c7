package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrForceSetStatusCommandIsNotConstructed = errors.New(
	"ForceSetStatusCommand must be created via NewForceSetStatusCommand constructor",
)

// ForceSetStatusCommand is the administrative status override.
type ForceSetStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	actor   string

	guard guard.ConstructorGuard
}

func NewForceSetStatusCommand(orderID kernel.UUID, status order.Status, actor string) (ForceSetStatusCommand, error) {
	cmd := ForceSetStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setActor(actor),
	); err != nil {
		return ForceSetStatusCommand{}, err
	}

	return cmd, nil
}

func (c ForceSetStatusCommand) Validate() error {
	return c.guard.Validate(ErrForceSetStatusCommandIsNotConstructed)
}

func (c ForceSetStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ForceSetStatusCommand) Status() order.Status {
	return c.status
}

func (c ForceSetStatusCommand) Actor() string {
	return c.actor
}

func (c *ForceSetStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ForceSetStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *ForceSetStatusCommand) setActor(actor string) error {
	actor, err := requireActor(actor)
	if err != nil {
		return err
	}
	c.actor = actor
	return nil
}
