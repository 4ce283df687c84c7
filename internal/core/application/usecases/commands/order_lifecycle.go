package commands

import (
	"context"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/application/ledger"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// transitionFunc applies one lifecycle step to a locked order. It reports
// false when the order is already in the requested state and nothing must be
// written.
type transitionFunc func(ctx context.Context, uow UoW, o *order.Order, now time.Time) (bool, error)

// orderLifecycle runs lifecycle steps as one unit of work: lock the order,
// transition it, persist it with its status history, commit, then publish the
// raised events. Publishing happens only after a successful commit.
type orderLifecycle struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      func() time.Time
}

func newOrderLifecycle(uowFactory UoWFactory, publisher ports.EventPublisher) orderLifecycle {
	return orderLifecycle{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

func (l orderLifecycle) run(ctx context.Context, orderID kernel.UUID, step transitionFunc) (*order.Order, error) {
	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	changed, err := step(ctx, uow, o, l.clock())
	if err != nil {
		return nil, err
	}

	if !changed {
		return o, nil
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = appendStatusChanges(ctx, uow, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	l.publish(ctx, uow.PullDomainEvents())
	return o, nil
}

func (l orderLifecycle) publish(ctx context.Context, events []kernel.DomainEvent) {
	if l.publisher == nil || len(events) == 0 {
		return
	}
	l.publisher.Publish(ctx, events...)
}

func appendStatusChanges(ctx context.Context, uow StatusHistoryRepoFactory, o *order.Order) error {
	changes := o.PullStatusChanges()
	if len(changes) == 0 {
		return nil
	}
	return uow.StatusHistoryRepository().Append(ctx, changes...)
}

// deductItems takes stock for every item, in product id order so that
// concurrent confirmations lock product rows in the same sequence.
func deductItems(ctx context.Context, stock ledger.Ledger, o *order.Order, actor string, now time.Time) error {
	orderID := o.ID()
	for _, item := range sortedByProduct(o.Items()) {
		if _, err := stock.Deduct(ctx, item.ProductID(), item.Quantity(), &orderID, actor, now); err != nil {
			return err
		}
	}
	return nil
}

// restoreItems returns the stock of every item, in product id order.
func restoreItems(ctx context.Context, stock ledger.Ledger, o *order.Order, actor string, now time.Time) error {
	orderID := o.ID()
	for _, item := range sortedByProduct(o.Items()) {
		if _, err := stock.Restore(ctx, item.ProductID(), item.Quantity(), &orderID, actor, now); err != nil {
			return err
		}
	}
	return nil
}

func sortedByProduct(items []order.Item) []order.Item {
	slices.SortStableFunc(items, func(a, b order.Item) int {
		return a.ProductID().Compare(b.ProductID())
	})
	return items
}

func requireActor(actor string) (string, error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "", errs.NewValueIsRequiredError("actor")
	}
	return actor, nil
}
