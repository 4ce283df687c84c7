package commands

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrMarkProcessingCommandIsNotConstructed = errors.New(
	"MarkProcessingCommand must be created via NewMarkProcessingCommand constructor",
)

// MarkProcessingCommand hands a confirmed order to a carrier with tracking data.
type MarkProcessingCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	trackingNumber    string
	carrier           string
	estimatedDelivery *time.Time
	actor             string

	guard guard.ConstructorGuard
}

func NewMarkProcessingCommand(
	orderID kernel.UUID,
	trackingNumber, carrier string,
	estimatedDelivery *time.Time,
	actor string,
) (MarkProcessingCommand, error) {
	cmd := MarkProcessingCommand{
		carrier:           strings.TrimSpace(carrier),
		estimatedDelivery: estimatedDelivery,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTrackingNumber(trackingNumber),
		cmd.setActor(actor),
	); err != nil {
		return MarkProcessingCommand{}, err
	}

	return cmd, nil
}

func (c MarkProcessingCommand) Validate() error {
	return c.guard.Validate(ErrMarkProcessingCommandIsNotConstructed)
}

func (c MarkProcessingCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c MarkProcessingCommand) TrackingNumber() string {
	return c.trackingNumber
}

func (c MarkProcessingCommand) Carrier() string {
	return c.carrier
}

func (c MarkProcessingCommand) EstimatedDelivery() *time.Time {
	return c.estimatedDelivery
}

func (c MarkProcessingCommand) Actor() string {
	return c.actor
}

func (c *MarkProcessingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *MarkProcessingCommand) setTrackingNumber(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	c.trackingNumber = trackingNumber
	return nil
}

func (c *MarkProcessingCommand) setActor(actor string) error {
	actor, err := requireActor(actor)
	if err != nil {
		return err
	}
	c.actor = actor
	return nil
}
