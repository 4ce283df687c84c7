package historyrepo

import (
	"context"

	"storefront/internal/adapters/out/postgres/pgerrs"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormStockHistoryRepository appends and lists stock ledger entries.
type GormStockHistoryRepository struct {
	db *gorm.DB
}

func NewGormStockHistoryRepository(db *gorm.DB) *GormStockHistoryRepository {
	return &GormStockHistoryRepository{db: db}
}

func (r *GormStockHistoryRepository) Append(ctx context.Context, entries ...inventory.StockEntry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]StockHistoryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, stockEntryFromDomain(e))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return pgerrs.Translate("stock history", entries[0].ProductID().String(), err)
	}
	return nil
}

// ListByProduct returns the ledger of one product, newest first.
func (r *GormStockHistoryRepository) ListByProduct(ctx context.Context, productID kernel.UUID) ([]inventory.StockEntry, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StockHistoryDTO
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID.Bytes()).
		Order("changed_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]inventory.StockEntry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := stockEntryToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// GormStatusHistoryRepository appends and lists order status changes.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

func (r *GormStatusHistoryRepository) Append(ctx context.Context, changes ...order.StatusChange) error {
	if len(changes) == 0 {
		return nil
	}

	dtos := make([]StatusHistoryDTO, 0, len(changes))
	for _, c := range changes {
		dtos = append(dtos, statusChangeFromDomain(c))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return pgerrs.Translate("order status history", changes[0].OrderID().String(), err)
	}
	return nil
}

// ListByOrder returns the audit trail of one order, oldest first.
func (r *GormStatusHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusHistoryDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("changed_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	changes := make([]order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		c, err := statusChangeToDomain(dto)
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, nil
}
