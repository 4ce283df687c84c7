package queries

import (
	"context"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetStockHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetStockHistoryQueryHandler(db *gorm.DB) GetStockHistoryQueryHandler {
	return GetStockHistoryQueryHandler{db: db}
}

// Handle returns the ledger newest first. An unknown product fails with an
// ObjectNotFoundError.
func (h GetStockHistoryQueryHandler) Handle(ctx context.Context, query GetStockHistoryQuery) ([]StockEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	productID := query.ProductID()
	if err := requireRow(ctx, h.db, "products", "product", productID); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			change_type,
			quantity_change,
			quantity_before,
			quantity_after,
			changed_by,
			changed_at,
			COALESCE(notes, '')
		FROM stock_history
		WHERE product_id = ?
		ORDER BY changed_at DESC
	`, productID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]StockEntryView, 0)
	for rows.Next() {
		var (
			entry   StockEntryView
			id      uuid.UUID
			orderID uuid.NullUUID
		)

		err = rows.Scan(
			&id,
			&orderID,
			&entry.ChangeType,
			&entry.QuantityChange,
			&entry.QuantityBefore,
			&entry.QuantityAfter,
			&entry.ChangedBy,
			&entry.ChangedAt,
			&entry.Notes,
		)
		if err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		entry.ProductID = productID

		if orderID.Valid {
			ref, refErr := kernel.UUIDFromBytes(orderID.UUID[:])
			if refErr != nil {
				return nil, refErr
			}
			entry.OrderID = &ref
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
