package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads orders and their items straight from the
// database.
//
// Example:
//
//	handler := NewListOrdersQueryHandler(db)
//	query, _ := NewListOrdersQuery("", nil, nil, nil)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list orders: %v", err)
//	    return err
//	}
type ListOrdersQueryHandler struct {
	db    *gorm.DB
	clock func() time.Time
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{
		db:    db,
		clock: func() time.Time { return time.Now().UTC() },
	}
}

// Handle returns the matching orders sorted by creation time, newest first.
// The result is never nil.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := h.db.WithContext(ctx).Table("orders").Select(orderColumns)

	if status := query.Status(); status != nil {
		stmt = stmt.Where("status = ?", status.String())
	}

	if buyerID := query.BuyerID(); buyerID != nil {
		stmt = stmt.Where("buyer_id = ?", buyerID.Bytes())
	}

	if period := query.days.resolve(h.clock()); period != nil {
		stmt = stmt.Where("created_at >= ? AND created_at < ?", period.Start, period.End)
	}

	rows, err := stmt.Order("created_at DESC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	for rows.Next() {
		view, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = attachItems(ctx, h.db, orders); err != nil {
		return nil, err
	}

	return orders, nil
}
