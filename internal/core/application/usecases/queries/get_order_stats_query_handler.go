package queries

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetOrderStatsQueryHandler struct {
	db    *gorm.DB
	clock func() time.Time
}

func NewGetOrderStatsQueryHandler(db *gorm.DB) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{
		db:    db,
		clock: func() time.Time { return time.Now().UTC() },
	}
}

func (h GetOrderStatsQueryHandler) Handle(ctx context.Context, query GetOrderStatsQuery) (OrderStats, error) {
	if err := query.Validate(); err != nil {
		return OrderStats{}, err
	}

	now := h.clock()
	today := truncateDay(&now)
	tomorrow := today.AddDate(0, 0, 1)

	stats := OrderStats{DateRangeLabel: AllTimeLabel}

	stmt := h.db.WithContext(ctx).Table("orders").Select(`
		COUNT(*),
		COUNT(*) FILTER (WHERE status = ?),
		COUNT(*) FILTER (WHERE status = ?),
		COALESCE(SUM(total), 0),
		COUNT(*) FILTER (WHERE created_at >= ? AND created_at < ?)
	`, order.Pending.String(), order.Delivered.String(), *today, tomorrow)

	if period := query.days.closed(); period != nil {
		stmt = stmt.Where("created_at >= ? AND created_at < ?", period.Start, period.End)
		stats.DateRangeLabel = period.Label()
	}

	err := stmt.Row().Scan(
		&stats.TotalOrders,
		&stats.PendingOrders,
		&stats.DeliveredOrders,
		&stats.TotalRevenue,
		&stats.TodayOrders,
	)
	if err != nil {
		return OrderStats{}, err
	}

	if err = h.db.WithContext(ctx).Table("products").Count(&stats.ProductsCount).Error; err != nil {
		return OrderStats{}, err
	}

	return stats, nil
}
