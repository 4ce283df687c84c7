package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// OrderSummary is the admin-facing notice for a newly placed order.
type OrderSummary struct {
	OrderID      kernel.UUID
	CustomerName string
	Total        kernel.Money
	ItemCount    int
}

// Notifier delivers rendered notifications. Delivery mechanics (push, email,
// in-app inbox) are the implementation's concern.
type Notifier interface {
	NotifyAdmins(ctx context.Context, summary OrderSummary) error
	NotifyBuyer(ctx context.Context, buyerID kernel.UUID, title, message string, payload map[string]string) error
}

// EventPublisher hands committed domain events to the notification side.
// Publish never fails the caller; delivery problems are handled downstream.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent)
}
