package queries

import (
	"context"
	"database/sql"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderStatusHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderStatusHistoryQueryHandler(db *gorm.DB) GetOrderStatusHistoryQueryHandler {
	return GetOrderStatusHistoryQueryHandler{db: db}
}

// Handle returns the entries in ascending changedAt order. An unknown order
// fails with an ObjectNotFoundError.
func (h GetOrderStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusHistoryQuery,
) ([]StatusChangeView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orderID := query.OrderID()
	if err := requireRow(ctx, h.db, "orders", "order", orderID); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			old_status,
			new_status,
			changed_by,
			changed_at,
			COALESCE(notes, '')
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY changed_at ASC
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := make([]StatusChangeView, 0)
	for rows.Next() {
		var (
			change    StatusChangeView
			id        uuid.UUID
			oldStatus sql.NullString
		)

		if err = rows.Scan(&id, &oldStatus, &change.NewStatus, &change.ChangedBy, &change.ChangedAt, &change.Notes); err != nil {
			return nil, err
		}

		if change.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		change.OrderID = orderID
		if oldStatus.Valid {
			old := oldStatus.String
			change.OldStatus = &old
		}
		changes = append(changes, change)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return changes, nil
}

// requireRow fails with an ObjectNotFoundError when table has no row with id.
func requireRow(ctx context.Context, db *gorm.DB, table, name string, id kernel.UUID) error {
	var exists bool
	if err := db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM "+table+" WHERE id = ?)", id.Bytes()).
		Scan(&exists).Error; err != nil {
		return err
	}

	if !exists {
		return errs.NewObjectNotFoundError(name, id.String())
	}
	return nil
}
