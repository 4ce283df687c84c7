package queries

import (
	"errors"
	"time"

	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderStatsQueryIsNotConstructed = errors.New(
	"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
)

// AllTimeLabel names the period of unfiltered statistics.
const AllTimeLabel = "All Time"

// GetOrderStatsQuery computes the dashboard summary. The summary covers a
// range of calendar days only when both from and to are given; with one
// bound or none it covers all orders.
type GetOrderStatsQuery struct {
	days dayRange

	guard guard.ConstructorGuard
}

func NewGetOrderStatsQuery(from, to *time.Time) (GetOrderStatsQuery, error) {
	days, err := newDayRange(from, to)
	if err != nil {
		return GetOrderStatsQuery{}, err
	}
	return GetOrderStatsQuery{days: days, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// OrderStats summarizes orders in a period. TotalRevenue sums order totals
// regardless of status. TodayOrders counts orders placed today that fall
// inside the period.
type OrderStats struct {
	TotalOrders     int64
	PendingOrders   int64
	DeliveredOrders int64
	TotalRevenue    decimal.Decimal
	ProductsCount   int64
	TodayOrders     int64
	DateRangeLabel  string
}
