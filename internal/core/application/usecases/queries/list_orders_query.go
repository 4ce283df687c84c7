package queries

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves orders, newest first, optionally filtered by
// status, buyer and a range of calendar days.
//
// Dates are whole days: from covers the day from midnight, to covers the day
// until its end. With only from set the range ends today; with only to set it
// starts on 2000-01-01.
//
// Example:
//
//	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
//	query, err := NewListOrdersQuery("pending", nil, &from, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid filter: %w", err)
//	}
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("Order %s: %s, %d items\n", o.ID, o.Status, len(o.Items))
//	}
type ListOrdersQuery struct {
	status  *order.Status
	buyerID *kernel.UUID
	days    dayRange

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates the filters. An empty status lists every
// status.
func NewListOrdersQuery(status string, buyerID *kernel.UUID, from, to *time.Time) (ListOrdersQuery, error) {
	query := ListOrdersQuery{guard: guard.NewConstructorGuard()}

	var statusErr error
	if status = strings.TrimSpace(status); status != "" {
		parsed, err := order.ParseStatus(status)
		statusErr = err
		query.status = &parsed
	}

	var buyerErr error
	if buyerID != nil {
		buyerErr = buyerID.Validate()
		id := *buyerID
		query.buyerID = &id
	}

	days, daysErr := newDayRange(from, to)
	query.days = days

	if err := errors.Join(statusErr, buyerErr, daysErr); err != nil {
		return ListOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

func (q ListOrdersQuery) BuyerID() *kernel.UUID {
	return q.buyerID
}
