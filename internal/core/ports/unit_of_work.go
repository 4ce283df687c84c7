package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork spans one lifecycle or stock operation. Order, product and
// history writes made through its repositories commit or roll back together.
//
// Typical use:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//	...
//	if err := uow.Commit(ctx); err != nil {
//	    return err
//	}
//	publisher.Publish(ctx, uow.PullDomainEvents()...)
type UnitOfWork interface {
	Begin(ctx context.Context) error
	// Commit fails when Begin was not called.
	Commit(ctx context.Context) error
	// Rollback without an active transaction returns an error and changes
	// nothing, so a deferred Rollback after Commit is harmless.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	ProductRepository() ProductRepository
	StockHistoryRepository() StockHistoryRepository
	StatusHistoryRepository() StatusHistoryRepository

	// PullDomainEvents drains the events raised by every aggregate written
	// through this unit of work.
	PullDomainEvents() []kernel.DomainEvent
}
