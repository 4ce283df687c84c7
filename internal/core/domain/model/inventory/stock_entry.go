package inventory

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ChangeType classifies a stock history entry.
type ChangeType int

const (
	ChangeUnknown ChangeType = iota
	// OrderPlaced is kept for records written by older clients; placement
	// itself does not move stock.
	OrderPlaced
	OrderConfirmed
	OrderCanceled
	ManualAdjustment
	Restock
)

func getChangeTypeStrings() map[ChangeType]string {
	//nolint:exhaustive // ChangeUnknown is intentionally excluded as it's invalid
	return map[ChangeType]string{
		OrderPlaced:      "order_placed",
		OrderConfirmed:   "order_confirmed",
		OrderCanceled:    "order_canceled",
		ManualAdjustment: "manual_adjustment",
		Restock:          "restock",
	}
}

// ParseChangeType converts a wire value such as "order_confirmed".
func ParseChangeType(s string) (ChangeType, error) {
	for changeType, name := range getChangeTypeStrings() {
		if name == s {
			return changeType, nil
		}
	}
	return ChangeUnknown, errs.NewValueIsInvalidErrorWithCause("change type", fmt.Errorf("%q is not a valid change type", s))
}

func (c ChangeType) Validate() error {
	if _, ok := getChangeTypeStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("change type", fmt.Errorf("%d is not a valid change type", c))
	}
	return nil
}

func (c ChangeType) String() string {
	if str, ok := getChangeTypeStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// StockEntry is an immutable record of one stock mutation.
// QuantityAfter always equals QuantityBefore + QuantityChange and is never negative.
type StockEntry struct {
	id             kernel.UUID
	productID      kernel.UUID
	orderID        *kernel.UUID
	changeType     ChangeType
	quantityChange int
	quantityBefore int
	quantityAfter  int
	changedBy      string
	changedAt      time.Time
	notes          string
}

// NewStockEntry records a movement produced by a Product mutation.
func NewStockEntry(
	productID kernel.UUID,
	orderID *kernel.UUID,
	changeType ChangeType,
	movement Movement,
	changedBy string,
	changedAt time.Time,
	notes string,
) (StockEntry, error) {
	return RestoreStockEntry(
		kernel.NewUUID(), productID, orderID, changeType,
		movement.Change(), movement.Before, movement.After,
		changedBy, changedAt, notes,
	)
}

// RestoreStockEntry rebuilds a persisted entry and re-checks its arithmetic.
func RestoreStockEntry(
	id, productID kernel.UUID,
	orderID *kernel.UUID,
	changeType ChangeType,
	quantityChange, quantityBefore, quantityAfter int,
	changedBy string,
	changedAt time.Time,
	notes string,
) (StockEntry, error) {
	var orderErr error
	if orderID != nil {
		orderErr = orderID.Validate()
	}

	var actorErr error
	if changedBy == "" {
		actorErr = errs.NewValueIsRequiredError("changed by")
	}

	var balanceErr error
	switch {
	case quantityBefore < 0 || quantityAfter < 0:
		balanceErr = errs.NewValueIsInvalidErrorWithCause(
			"stock quantity",
			fmt.Errorf("before %d and after %d must not be negative", quantityBefore, quantityAfter),
		)
	case quantityBefore+quantityChange != quantityAfter:
		balanceErr = errs.NewValueIsInvalidErrorWithCause(
			"quantity change",
			fmt.Errorf("%d + %d != %d", quantityBefore, quantityChange, quantityAfter),
		)
	}

	if err := errors.Join(
		id.Validate(), productID.Validate(), orderErr, changeType.Validate(), actorErr, balanceErr,
	); err != nil {
		return StockEntry{}, err
	}

	var order *kernel.UUID
	if orderID != nil {
		o := *orderID
		order = &o
	}

	return StockEntry{
		id:             id,
		productID:      productID,
		orderID:        order,
		changeType:     changeType,
		quantityChange: quantityChange,
		quantityBefore: quantityBefore,
		quantityAfter:  quantityAfter,
		changedBy:      changedBy,
		changedAt:      changedAt,
		notes:          notes,
	}, nil
}

func (e StockEntry) ID() kernel.UUID { return e.id }
func (e StockEntry) ProductID() kernel.UUID { return e.productID }
func (e StockEntry) ChangeType() ChangeType { return e.changeType }
func (e StockEntry) QuantityChange() int { return e.quantityChange }
func (e StockEntry) QuantityBefore() int { return e.quantityBefore }
func (e StockEntry) QuantityAfter() int { return e.quantityAfter }
func (e StockEntry) ChangedBy() string { return e.changedBy }
func (e StockEntry) ChangedAt() time.Time { return e.changedAt }
func (e StockEntry) Notes() string { return e.notes }

// OrderID returns nil for movements not tied to an order.
func (e StockEntry) OrderID() *kernel.UUID {
	if e.orderID == nil {
		return nil
	}
	id := *e.orderID
	return &id
}
