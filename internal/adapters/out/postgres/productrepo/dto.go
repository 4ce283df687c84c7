// Package productrepo persists catalog products and their stock counts.
package productrepo

import (
	"time"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for persisting products.
// The check constraint is the last line of defence against negative stock.
type ProductDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name              string          `gorm:"type:varchar(255);not null"`
	Category          string          `gorm:"type:varchar(64);not null;index"`
	StockQuantity     int             `gorm:"not null;check:stock_quantity >= 0"`
	LowStockThreshold int             `gorm:"not null;default:10"`
	Rate              decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *inventory.Product) ProductDTO {
	return ProductDTO{
		ID:                p.ID().Bytes(),
		Name:              p.Name(),
		Category:          p.Category(),
		StockQuantity:     p.StockQuantity(),
		LowStockThreshold: p.LowStockThreshold(),
		Rate:              p.Rate().Decimal(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

func toDomain(dto ProductDTO) (*inventory.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	rate, err := kernel.NewMoney(dto.Rate)
	if err != nil {
		return nil, err
	}

	return inventory.RestoreProduct(
		id, dto.Name, dto.Category, dto.StockQuantity, dto.LowStockThreshold,
		rate, dto.CreatedAt, dto.UpdatedAt,
	)
}
