package order

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrBuyerIsNotConstructed is returned when a zero-value Buyer is validated.
var ErrBuyerIsNotConstructed = errors.New("Buyer must be created via NewBuyer constructor")

// Buyer is the snapshot of the customer's identity and contact details taken
// when the order is placed.
type Buyer struct { //nolint:recvcheck //using for validation
	id      kernel.UUID
	name    string
	phone   string
	address string

	guard guard.ConstructorGuard
}

// NewBuyer requires an id and a name; phone and address are optional.
func NewBuyer(id kernel.UUID, name, phone, address string) (Buyer, error) {
	buyer := Buyer{
		phone:   strings.TrimSpace(phone),
		address: strings.TrimSpace(address),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(buyer.setID(id), buyer.setName(name)); err != nil {
		return Buyer{}, err
	}

	return buyer, nil
}

func (b Buyer) Validate() error {
	return b.guard.Validate(ErrBuyerIsNotConstructed)
}

func (b Buyer) ID() kernel.UUID {
	return b.id
}

func (b Buyer) Name() string {
	return b.name
}

func (b Buyer) Phone() string {
	return b.phone
}

func (b Buyer) Address() string {
	return b.address
}

func (b Buyer) withPhone(phone string) Buyer {
	b.phone = phone
	return b
}

func (b *Buyer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Buyer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("buyer name")
	}
	b.name = name
	return nil
}
