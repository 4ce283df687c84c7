package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand adds an entry to the catalog with its opening stock.
//
// Example:
//
//	rate, _ := kernel.MoneyFromString("15.00")
//	cmd, err := NewCreateProductCommand(kernel.NewUUID(), "Mineral Water 1L", "water", 50, nil, rate)
//	if err != nil {
//	    return fmt.Errorf("invalid product data: %w", err)
//	}
//	product, err := handler.Handle(ctx, cmd)
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID         kernel.UUID
	name              string
	category          string
	stockQuantity     int
	lowStockThreshold *int
	rate              kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateProductCommand leaves the threshold to the catalog default when it is nil.
func NewCreateProductCommand(
	productID kernel.UUID,
	name, category string,
	stockQuantity int,
	lowStockThreshold *int,
	rate kernel.Money,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		name:     strings.TrimSpace(name),
		category: strings.TrimSpace(category),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setStockQuantity(stockQuantity),
		cmd.setLowStockThreshold(lowStockThreshold),
		cmd.setRate(rate),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c CreateProductCommand) Name() string {
	return c.name
}

func (c CreateProductCommand) Category() string {
	return c.category
}

func (c CreateProductCommand) StockQuantity() int {
	return c.stockQuantity
}

func (c CreateProductCommand) LowStockThreshold() *int {
	return c.lowStockThreshold
}

func (c CreateProductCommand) Rate() kernel.Money {
	return c.rate
}

func (c *CreateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *CreateProductCommand) setStockQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock quantity", fmt.Errorf("%d is negative", quantity))
	}
	c.stockQuantity = quantity
	return nil
}

func (c *CreateProductCommand) setLowStockThreshold(threshold *int) error {
	if threshold == nil {
		return nil
	}
	if *threshold < 0 {
		return errs.NewValueIsInvalidErrorWithCause("low stock threshold", fmt.Errorf("%d is negative", *threshold))
	}
	t := *threshold
	c.lowStockThreshold = &t
	return nil
}

func (c *CreateProductCommand) setRate(rate kernel.Money) error {
	if err := rate.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("rate", err)
	}
	c.rate = rate
	return nil
}
