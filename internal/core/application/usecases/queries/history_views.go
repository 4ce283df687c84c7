package queries

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// StatusChangeView is one entry of an order's audit trail. OldStatus is nil
// for the entry written when the order was placed.
type StatusChangeView struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	OldStatus *string
	NewStatus string
	ChangedBy string
	ChangedAt time.Time
	Notes     string
}

// StockEntryView is one entry of a product's stock ledger.
type StockEntryView struct {
	ID             kernel.UUID
	ProductID      kernel.UUID
	OrderID        *kernel.UUID
	ChangeType     string
	QuantityChange int
	QuantityBefore int
	QuantityAfter  int
	ChangedBy      string
	ChangedAt      time.Time
	Notes          string
}
