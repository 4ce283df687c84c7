package commands

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand completes a billed order in processing.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand requires a valid order id and a non-blank actor.
func NewMarkDeliveredCommand(orderID kernel.UUID, actor string) (MarkDeliveredCommand, error) {
	cmd := MarkDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return cmd, nil
}

func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

func (c MarkDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c MarkDeliveredCommand) Actor() string {
	return c.actor
}

func (c *MarkDeliveredCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *MarkDeliveredCommand) setActor(actor string) error {
	actor, err := requireActor(actor)
	if err != nil {
		return err
	}
	c.actor = actor
	return nil
}
