// Package ports defines the contracts between the storefront core and its
// adapters: persistence of aggregates and history, the unit of work, and the
// outbound notification side.
package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is always stored together with its items; replacing the items of
// an order deletes the previous set.
type OrderRepository interface {
	// Add persists a new order aggregate with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The write is conditional on
	// the version the aggregate was loaded with; a mismatch fails with
	// errs.ErrConflict. On success the aggregate's version is advanced.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the enclosing
	// transaction ends. Lifecycle commands load orders this way.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
