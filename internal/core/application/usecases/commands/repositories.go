// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// StockHistoryRepoFactory provides access to the stock history log within a transaction.
	StockHistoryRepoFactory interface {
		StockHistoryRepository() ports.StockHistoryRepository
	}

	// StatusHistoryRepoFactory provides access to the status history log within a transaction.
	StatusHistoryRepoFactory interface {
		StatusHistoryRepository() ports.StatusHistoryRepository
	}

	// EventSource drains domain events raised by aggregates saved in a transaction.
	EventSource interface {
		PullDomainEvents() []kernel.DomainEvent
	}

	// CatalogUoW manages transactions for catalog-only operations.
	CatalogUoW interface {
		TxManager
		ProductRepoFactory
	}

	// CatalogUoWFactory creates new catalog unit of work instances.
	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	// StockUoW manages transactions for stock ledger operations.
	// Used when commands change stock outside of an order lifecycle step.
	StockUoW interface {
		TxManager
		ProductRepoFactory
		StockHistoryRepoFactory
	}

	// StockUoWFactory creates new stock unit of work instances.
	StockUoWFactory interface {
		Create() StockUoW
	}

	// UoW manages transactions across orders, products and both history logs.
	// Used for order lifecycle commands, which may move stock.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... transition, ledger calls
	//
	//   err = uow.Commit(ctx)
	//   publisher.Publish(ctx, uow.PullDomainEvents()...)
	UoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		StockHistoryRepoFactory
		StatusHistoryRepoFactory
		EventSource
	}

	// UoWFactory creates new unit of work instances for order lifecycle operations.
	UoWFactory interface {
		Create() UoW
	}
)
