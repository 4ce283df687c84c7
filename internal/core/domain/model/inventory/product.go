package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// DefaultLowStockThreshold is used when a product is created without a threshold.
const DefaultLowStockThreshold = 10

// Domain errors for product operations.
var (
	// ErrNameIsRequired is returned when creating a product without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCategoryIsRequired is returned when creating a product without a category.
	ErrCategoryIsRequired = errs.NewValueIsRequiredError("category")
	// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Movement is the before/after pair of a single stock mutation.
type Movement struct {
	Before int
	After  int
}

// Change returns the signed delta of the movement.
func (m Movement) Change() int {
	return m.After - m.Before
}

// Product is a catalog entry and the owner of its stock count.
//
// Business rules:
//   - Stock quantity is never negative
//   - Every stock mutation returns a Movement for the ledger to record
//   - Name, category and rate are catalog data; order items snapshot them
//
// Example usage:
//
//	rate, _ := kernel.MoneyFromString("15.00")
//	product, err := inventory.NewProduct(kernel.NewUUID(), "Mineral Water 1L", "water", 10, nil, rate, time.Now())
//	if err != nil {
//	    // Handle construction error
//	}
//	movement, err := product.Deduct(2, time.Now())
//	// movement.Before == 10, movement.After == 8
type Product struct {
	id                kernel.UUID
	name              string
	category          string
	stockQuantity     int
	lowStockThreshold int
	rate              kernel.Money
	createdAt         time.Time
	updatedAt         time.Time

	isConstructed bool
}

// NewProduct creates a catalog entry. A nil threshold defaults to
// DefaultLowStockThreshold.
func NewProduct(
	id kernel.UUID,
	name, category string,
	stockQuantity int,
	lowStockThreshold *int,
	rate kernel.Money,
	now time.Time,
) (*Product, error) {
	threshold := DefaultLowStockThreshold
	if lowStockThreshold != nil {
		threshold = *lowStockThreshold
	}
	return RestoreProduct(id, name, category, stockQuantity, threshold, rate, now, now)
}

// RestoreProduct rebuilds a product from persistence.
func RestoreProduct(
	id kernel.UUID,
	name, category string,
	stockQuantity, lowStockThreshold int,
	rate kernel.Money,
	createdAt, updatedAt time.Time,
) (*Product, error) {
	p := &Product{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setCategory(category),
		p.setStockQuantity(stockQuantity),
		p.setLowStockThreshold(lowStockThreshold),
		p.setRate(rate),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the product was created through its constructors.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

func (p *Product) ID() kernel.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Category() string {
	return p.category
}

func (p *Product) StockQuantity() int {
	return p.stockQuantity
}

func (p *Product) LowStockThreshold() int {
	return p.lowStockThreshold
}

func (p *Product) Rate() kernel.Money {
	return p.rate
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsLowStock reports whether stock is at or below the threshold.
func (p *Product) IsLowStock() bool {
	return p.stockQuantity <= p.lowStockThreshold
}

// Deduct removes quantity units. It fails with an InsufficientStockError and
// leaves the product untouched when fewer units are available.
func (p *Product) Deduct(quantity int, now time.Time) (Movement, error) {
	if err := validateQuantity(quantity); err != nil {
		return Movement{}, err
	}

	if p.stockQuantity < quantity {
		return Movement{}, errs.NewInsufficientStockError(p.name, p.stockQuantity, quantity)
	}

	return p.moveTo(p.stockQuantity-quantity, now), nil
}

// Restore adds quantity units back. There is no upper bound.
func (p *Product) Restore(quantity int, now time.Time) (Movement, error) {
	if err := validateQuantity(quantity); err != nil {
		return Movement{}, err
	}

	return p.moveTo(p.stockQuantity+quantity, now), nil
}

// Adjust sets the stock to an arbitrary non-negative count.
func (p *Product) Adjust(newQuantity int, now time.Time) (Movement, error) {
	if newQuantity < 0 {
		return Movement{}, errs.NewValueIsInvalidErrorWithCause(
			"stock quantity",
			fmt.Errorf("%d is negative", newQuantity),
		)
	}

	return p.moveTo(newQuantity, now), nil
}

// UpdateDetails replaces the catalog data of the product. Stock is left to
// the ledger. Either every field is applied or none is.
func (p *Product) UpdateDetails(name, category string, lowStockThreshold int, rate kernel.Money, now time.Time) error {
	next := *p
	if err := errors.Join(
		next.setName(name),
		next.setCategory(category),
		next.setLowStockThreshold(lowStockThreshold),
		next.setRate(rate),
	); err != nil {
		return err
	}

	next.updatedAt = now
	*p = next
	return nil
}

func (p *Product) moveTo(quantity int, now time.Time) Movement {
	movement := Movement{Before: p.stockQuantity, After: quantity}
	p.stockQuantity = quantity
	p.updatedAt = now
	return movement
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Product) setCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrCategoryIsRequired
	}
	p.category = category
	return nil
}

func (p *Product) setStockQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock quantity", fmt.Errorf("%d is negative", quantity))
	}
	p.stockQuantity = quantity
	return nil
}

func (p *Product) setLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return errs.NewValueIsInvalidErrorWithCause("low stock threshold", fmt.Errorf("%d is negative", threshold))
	}
	p.lowStockThreshold = threshold
	return nil
}

func (p *Product) setRate(rate kernel.Money) error {
	if err := rate.Validate(); err != nil {
		return err
	}
	p.rate = rate
	return nil
}
