package ports

import (
	"context"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// StockHistoryRepository is the append-only log of stock movements.
type StockHistoryRepository interface {
	Append(ctx context.Context, entries ...inventory.StockEntry) error

	// ListByProduct returns the entries of a product, newest first.
	ListByProduct(ctx context.Context, productID kernel.UUID) ([]inventory.StockEntry, error)
}

// StatusHistoryRepository is the append-only log of order status changes.
type StatusHistoryRepository interface {
	Append(ctx context.Context, changes ...order.StatusChange) error

	// ListByOrder returns the changes of an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error)
}
