package queries

import (
	"context"

	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order or an ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	rows, err := h.db.WithContext(ctx).
		Table("orders").
		Select(orderColumns).
		Where("id = ?", query.OrderID().Bytes()).
		Rows()
	if err != nil {
		return OrderView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderView{}, err
		}
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	view, err := scanOrder(rows)
	if err != nil {
		return OrderView{}, err
	}
	_ = rows.Close()

	views := []OrderView{view}
	if err = attachItems(ctx, h.db, views); err != nil {
		return OrderView{}, err
	}

	return views[0], nil
}
