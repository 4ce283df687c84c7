package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrEditOrderCommandIsNotConstructed = errors.New(
	"EditOrderCommand must be created via NewEditOrderCommand constructor",
)

// ItemQuantity requests quantity units of a catalog product. Name and rate
// are always taken from the catalog.
type ItemQuantity struct {
	ProductID kernel.UUID
	Quantity  int
}

// EditOrderCommand replaces the items of a pending or confirmed order and
// optionally updates the delivery address and buyer phone. A nil pointer
// leaves the field unchanged.
type EditOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	items           []ItemQuantity
	deliveryAddress *string
	phone           *string
	actor           string

	guard guard.ConstructorGuard
}

func NewEditOrderCommand(
	orderID kernel.UUID,
	items []ItemQuantity,
	deliveryAddress, phone *string,
	actor string,
) (EditOrderCommand, error) {
	cmd := EditOrderCommand{
		deliveryAddress: trimmed(deliveryAddress),
		phone:           trimmed(phone),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItems(items),
		cmd.setActor(actor),
	); err != nil {
		return EditOrderCommand{}, err
	}

	return cmd, nil
}

func (c EditOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditOrderCommandIsNotConstructed)
}

func (c EditOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c EditOrderCommand) Items() []ItemQuantity {
	items := make([]ItemQuantity, len(c.items))
	copy(items, c.items)
	return items
}

func (c EditOrderCommand) DeliveryAddress() *string {
	return c.deliveryAddress
}

func (c EditOrderCommand) Phone() *string {
	return c.phone
}

func (c EditOrderCommand) Actor() string {
	return c.actor
}

func (c *EditOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *EditOrderCommand) setItems(items []ItemQuantity) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	var itemErrs []error
	for i, item := range items {
		itemErrs = append(itemErrs, item.ProductID.Validate())
		if item.Quantity < 1 {
			itemErrs = append(itemErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is less than 1", item.Quantity),
			))
		}
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	c.items = make([]ItemQuantity, len(items))
	copy(c.items, items)
	return nil
}

func (c *EditOrderCommand) setActor(actor string) error {
	actor, err := requireActor(actor)
	if err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
