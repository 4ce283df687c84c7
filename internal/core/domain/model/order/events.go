package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
)

// PlacedEvent is raised when a new order is created. It is addressed to the
// shop administrators.
type PlacedEvent struct {
	OrderID    kernel.UUID
	BuyerID    kernel.UUID
	BuyerName  string
	Total      kernel.Money
	ItemCount  int
	OccurredAt time.Time
}

func (e PlacedEvent) EventName() string { return "order.placed" }
func (e PlacedEvent) AggregateID() kernel.UUID { return e.OrderID }

// StatusChangedEvent is raised for buyer-facing status transitions.
// LegacyMinutes is set when the order was sent on its way with a countdown.
type StatusChangedEvent struct {
	OrderID       kernel.UUID
	BuyerID       kernel.UUID
	Status        Status
	LegacyMinutes int
	OccurredAt    time.Time
}

func (e StatusChangedEvent) EventName() string { return "order.status_changed" }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }

// BillUpdatedEvent is raised when a final bill is recorded.
type BillUpdatedEvent struct {
	OrderID       kernel.UUID
	BuyerID       kernel.UUID
	Status        Status
	Amount        kernel.Money
	PaymentStatus PaymentStatus
	OccurredAt    time.Time
}

func (e BillUpdatedEvent) EventName() string { return "order.bill_updated" }
func (e BillUpdatedEvent) AggregateID() kernel.UUID { return e.OrderID }
