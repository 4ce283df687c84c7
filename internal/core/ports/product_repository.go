package ports

import (
	"context"

	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
)

// ProductRepository defines the persistence contract for catalog products.
type ProductRepository interface {
	// Add persists a new product.
	Add(ctx context.Context, product *inventory.Product) error

	// Update persists the stock and timestamps of an existing product.
	Update(ctx context.Context, product *inventory.Product) error

	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*inventory.Product, error)

	// GetForUpdate retrieves a product and locks its row until the enclosing
	// transaction ends. Every stock mutation must load the product this way.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*inventory.Product, error)

	// Delete removes a product from the catalog. Stock history rows and order
	// item snapshots that mention it are kept.
	Delete(ctx context.Context, id kernel.UUID) error
}
