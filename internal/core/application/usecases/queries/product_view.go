package queries

import (
	"context"
	"database/sql"
	"time"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductView is the read model of a catalog product.
type ProductView struct {
	ID                kernel.UUID
	Name              string
	Category          string
	StockQuantity     int
	LowStockThreshold int
	Rate              decimal.Decimal
	UpdatedAt         time.Time
}

const productColumns = "id, name, category, stock_quantity, low_stock_threshold, rate, updated_at"

// findProducts runs a products query selecting productColumns.
func findProducts(ctx context.Context, db *gorm.DB, query string, args ...any) ([]ProductView, error) {
	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]ProductView, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func scanProduct(rows *sql.Rows) (ProductView, error) {
	var (
		product ProductView
		id      uuid.UUID
	)

	err := rows.Scan(
		&id,
		&product.Name,
		&product.Category,
		&product.StockQuantity,
		&product.LowStockThreshold,
		&product.Rate,
		&product.UpdatedAt,
	)
	if err != nil {
		return ProductView{}, err
	}

	if product.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ProductView{}, err
	}
	return product, nil
}
