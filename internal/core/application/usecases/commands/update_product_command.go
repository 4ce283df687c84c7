package commands

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrUpdateProductCommandIsNotConstructed = errors.New(
	"UpdateProductCommand must be created via NewUpdateProductCommand constructor",
)

// UpdateProductCommand replaces the catalog details of a product. Stock is not
// part of it: quantities only move through the stock ledger.
type UpdateProductCommand struct { //nolint:recvcheck //using for validation
	productID         kernel.UUID
	name              string
	category          string
	lowStockThreshold *int
	rate              kernel.Money

	guard guard.ConstructorGuard
}

// NewUpdateProductCommand keeps the current threshold when lowStockThreshold is nil.
func NewUpdateProductCommand(
	productID kernel.UUID,
	name, category string,
	lowStockThreshold *int,
	rate kernel.Money,
) (UpdateProductCommand, error) {
	cmd := UpdateProductCommand{
		name:     strings.TrimSpace(name),
		category: strings.TrimSpace(category),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setLowStockThreshold(lowStockThreshold),
		cmd.setRate(rate),
	); err != nil {
		return UpdateProductCommand{}, err
	}

	return cmd, nil
}

func (c UpdateProductCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProductCommandIsNotConstructed)
}

func (c UpdateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

func (c UpdateProductCommand) Name() string {
	return c.name
}

func (c UpdateProductCommand) Category() string {
	return c.category
}

func (c UpdateProductCommand) LowStockThreshold() *int {
	return c.lowStockThreshold
}

func (c UpdateProductCommand) Rate() kernel.Money {
	return c.rate
}

func (c *UpdateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	c.productID = productID
	return nil
}

func (c *UpdateProductCommand) setLowStockThreshold(threshold *int) error {
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

func (c *UpdateProductCommand) setRate(rate kernel.Money) error {
	if err := rate.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("rate", err)
	}
	c.rate = rate
	return nil
}
