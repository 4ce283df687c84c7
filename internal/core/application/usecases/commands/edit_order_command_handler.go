package commands

import (
	"context"
	"time"

	"storefront/internal/core/application/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// EditOrderCommandHandler replaces the items of an order and recomputes its
// total with tax and the delivery fee. For a confirmed order the stock of the
// previous items is restored before the new items are deducted, so the
// ledger always reflects exactly the current item set.
type EditOrderCommandHandler struct {
	lifecycle orderLifecycle
}

func NewEditOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) EditOrderCommandHandler {
	return EditOrderCommandHandler{
		lifecycle: newOrderLifecycle(uowFactory, publisher),
	}
}

func (h EditOrderCommandHandler) Handle(ctx context.Context, cmd EditOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.lifecycle.run(ctx, cmd.OrderID(),
		func(ctx context.Context, uow UoW, o *order.Order, now time.Time) (bool, error) {
			if err := o.Status().ValidateEditable(); err != nil {
				return false, err
			}

			lines := make([]OrderLine, 0, len(cmd.Items()))
			for _, item := range cmd.Items() {
				lines = append(lines, OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
			}

			items, err := snapshotLines(ctx, uow.ProductRepository(), lines)
			if err != nil {
				return false, err
			}

			stock := ledger.New(uow)
			holdsStock := o.Status().HoldsStock()
			if holdsStock {
				if err = restoreItems(ctx, stock, o, cmd.Actor(), now); err != nil {
					return false, err
				}
			}

			if err = o.Edit(items, cmd.DeliveryAddress(), cmd.Phone()); err != nil {
				return false, err
			}

			if holdsStock {
				if err = deductItems(ctx, stock, o, cmd.Actor(), now); err != nil {
					return false, err
				}
			}

			return true, nil
		})
}
