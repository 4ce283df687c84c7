package order

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when a zero-value Item is validated.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line of an order. Name and rate are a snapshot of the catalog
// entry at placement (or edit) time and are never refreshed afterwards.
type Item struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	name      string
	rate      kernel.Money
	quantity  int
	subtotal  kernel.Money

	guard guard.ConstructorGuard
}

// NewItem snapshots a product line and computes its subtotal as rate × quantity.
//
// Example:
//
//	rate, _ := kernel.MoneyFromString("15.00")
//	item, err := order.NewItem(productID, "Mineral Water 1L", rate, 2)
//	// item.Subtotal().String() == "30.00"
func NewItem(productID kernel.UUID, name string, rate kernel.Money, quantity int) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setRate(rate),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.subtotal = item.rate.Times(item.quantity)
	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ProductID() kernel.UUID {
	return i.productID
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Rate() kernel.Money {
	return i.rate
}

func (i Item) Quantity() int {
	return i.quantity
}

func (i Item) Subtotal() kernel.Money {
	return i.subtotal
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setRate(rate kernel.Money) error {
	if err := rate.Validate(); err != nil {
		return err
	}
	i.rate = rate
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}
