package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredErrorWithCause(
		"items",
		errors.New("order must contain at least one item"),
	)
)

// OrderLine is one requested line of a new order. Name and Rate are the
// snapshot the buyer saw; when absent they are taken from the catalog.
type OrderLine struct {
	ProductID kernel.UUID
	Name      string
	Rate      *kernel.Money
	Quantity  int
}

func (l OrderLine) validate(index int) error {
	var quantityErr error
	if l.Quantity < 1 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause(
			fmt.Sprintf("items[%d].quantity", index),
			fmt.Errorf("%d is less than 1", l.Quantity),
		)
	}

	var rateErr error
	if l.Rate != nil {
		rateErr = l.Rate.Validate()
	}

	return errors.Join(l.ProductID.Validate(), quantityErr, rateErr)
}

// BuyerDetails is the contact snapshot of the buyer placing an order.
type BuyerDetails struct {
	ID      kernel.UUID
	Name    string
	Phone   string
	Address string
}

// CreateOrderCommand represents a request to place a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(),
//	    BuyerDetails{ID: buyerID, Name: "Asha", Address: "12 Lake Rd"},
//	    "", nil, nil, total,
//	    []OrderLine{{ProductID: waterID, Quantity: 2}},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	buyer           BuyerDetails
	deliveryAddress string
	coordinates     *kernel.GeoPoint
	total           kernel.Money
	lines           []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Coordinates are kept only
// when both latitude and longitude are given. Product existence is checked by
// the handler.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	buyer BuyerDetails,
	deliveryAddress string,
	latitude, longitude *float64,
	total kernel.Money,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		buyer: BuyerDetails{
			ID:      buyer.ID,
			Name:    strings.TrimSpace(buyer.Name),
			Phone:   strings.TrimSpace(buyer.Phone),
			Address: strings.TrimSpace(buyer.Address),
		},
		deliveryAddress: strings.TrimSpace(deliveryAddress),
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyer(buyer),
		cmd.setCoordinates(latitude, longitude),
		cmd.setTotal(total),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Buyer() BuyerDetails {
	return c.buyer
}

// DeliveryAddress is empty when the buyer address should be used.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c CreateOrderCommand) Coordinates() *kernel.GeoPoint {
	return c.coordinates
}

func (c CreateOrderCommand) Total() kernel.Money {
	return c.total
}

func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setBuyer(buyer BuyerDetails) error {
	var nameErr error
	if strings.TrimSpace(buyer.Name) == "" {
		nameErr = errs.NewValueIsRequiredError("buyer name")
	}
	return errors.Join(buyer.ID.Validate(), nameErr)
}

func (c *CreateOrderCommand) setCoordinates(latitude, longitude *float64) error {
	coordinates, err := kernel.NewOptionalGeoPoint(latitude, longitude)
	if err != nil {
		return err
	}
	c.coordinates = coordinates
	return nil
}

func (c *CreateOrderCommand) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("total", err)
	}
	c.total = total
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrItemsAreRequired
	}

	var lineErrs []error
	for i, line := range lines {
		lineErrs = append(lineErrs, line.validate(i))
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
