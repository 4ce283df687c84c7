package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrSetOnTheWayCommandIsNotConstructed = errors.New(
	"SetOnTheWayCommand must be created via NewSetOnTheWayCommand constructor",
)

// SetOnTheWayCommand sends a confirmed order out with a delivery countdown.
type SetOnTheWayCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	totalSeconds int64
	actor        string

	guard guard.ConstructorGuard
}

func NewSetOnTheWayCommand(orderID kernel.UUID, totalSeconds int64, actor string) (SetOnTheWayCommand, error) {
	cmd := SetOnTheWayCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTotalSeconds(totalSeconds),
		cmd.setActor(actor),
	); err != nil {
		return SetOnTheWayCommand{}, err
	}

	return cmd, nil
}

func (c SetOnTheWayCommand) Validate() error {
	return c.guard.Validate(ErrSetOnTheWayCommandIsNotConstructed)
}

func (c SetOnTheWayCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TotalSeconds is the announced delivery countdown, always positive.
func (c SetOnTheWayCommand) TotalSeconds() int64 {
	return c.totalSeconds
}

func (c SetOnTheWayCommand) Actor() string {
	return c.actor
}

func (c *SetOnTheWayCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SetOnTheWayCommand) setTotalSeconds(totalSeconds int64) error {
	if totalSeconds <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total delivery seconds",
			fmt.Errorf("%d is not greater than 0", totalSeconds),
		)
	}
	c.totalSeconds = totalSeconds
	return nil
}

func (c *SetOnTheWayCommand) setActor(actor string) error {
	actor, err := requireActor(actor)
	if err != nil {
		return err
	}
	c.actor = actor
	return nil
}
