// Package historyrepo persists the append-only stock and order status
// histories.
package historyrepo

import (
	"time"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StockHistoryDTO is one row of the stock ledger.
type StockHistoryDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_stock_history_product,priority:1"`
	OrderID        *uuid.UUID `gorm:"type:uuid;index"`
	ChangeType     string     `gorm:"type:varchar(32);not null"`
	QuantityChange int        `gorm:"not null"`
	QuantityBefore int        `gorm:"not null;check:quantity_before >= 0"`
	QuantityAfter  int        `gorm:"not null;check:quantity_after >= 0"`
	ChangedBy      string     `gorm:"type:varchar(255);not null"`
	ChangedAt      time.Time  `gorm:"not null;index:idx_stock_history_product,priority:2"`
	Notes          string     `gorm:"type:text"`
}

func (StockHistoryDTO) TableName() string {
	return "stock_history"
}

// StatusHistoryDTO is one row of an order's audit trail. OldStatus is null
// for the entry written when the order was created.
type StatusHistoryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_status_history_order,priority:1"`
	OldStatus *string   `gorm:"type:varchar(16)"`
	NewStatus string    `gorm:"type:varchar(16);not null"`
	ChangedBy string    `gorm:"type:varchar(255);not null"`
	ChangedAt time.Time `gorm:"not null;index:idx_status_history_order,priority:2"`
	Notes     string    `gorm:"type:text"`
}

func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

func stockEntryFromDomain(e inventory.StockEntry) StockHistoryDTO {
	var orderID *uuid.UUID
	if id := e.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return StockHistoryDTO{
		ID:             e.ID().Bytes(),
		ProductID:      e.ProductID().Bytes(),
		OrderID:        orderID,
		ChangeType:     e.ChangeType().String(),
		QuantityChange: e.QuantityChange(),
		QuantityBefore: e.QuantityBefore(),
		QuantityAfter:  e.QuantityAfter(),
		ChangedBy:      e.ChangedBy(),
		ChangedAt:      e.ChangedAt(),
		Notes:          e.Notes(),
	}
}

func stockEntryToDomain(dto StockHistoryDTO) (inventory.StockEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return inventory.StockEntry{}, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return inventory.StockEntry{}, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return inventory.StockEntry{}, orderErr
		}
		orderID = &oID
	}

	changeType, err := inventory.ParseChangeType(dto.ChangeType)
	if err != nil {
		return inventory.StockEntry{}, err
	}

	return inventory.RestoreStockEntry(
		id, productID, orderID, changeType,
		dto.QuantityChange, dto.QuantityBefore, dto.QuantityAfter,
		dto.ChangedBy, dto.ChangedAt, dto.Notes,
	)
}

func statusChangeFromDomain(c order.StatusChange) StatusHistoryDTO {
	var oldStatus *string
	if old := c.OldStatus(); old != nil {
		s := old.String()
		oldStatus = &s
	}

	return StatusHistoryDTO{
		ID:        c.ID().Bytes(),
		OrderID:   c.OrderID().Bytes(),
		OldStatus: oldStatus,
		NewStatus: c.NewStatus().String(),
		ChangedBy: c.ChangedBy(),
		ChangedAt: c.ChangedAt(),
		Notes:     c.Notes(),
	}
}

func statusChangeToDomain(dto StatusHistoryDTO) (order.StatusChange, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.StatusChange{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusChange{}, err
	}

	var oldStatus *order.Status
	if dto.OldStatus != nil {
		old, parseErr := order.ParseStatus(*dto.OldStatus)
		if parseErr != nil {
			return order.StatusChange{}, parseErr
		}
		oldStatus = &old
	}

	newStatus, err := order.ParseStatus(dto.NewStatus)
	if err != nil {
		return order.StatusChange{}, err
	}

	return order.RestoreStatusChange(id, orderID, oldStatus, newStatus, dto.ChangedBy, dto.ChangedAt, dto.Notes)
}
