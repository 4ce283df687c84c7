package commands

import (
	"context"
	"time"

	"storefront/internal/core/application/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// CancelOrderCommandHandler cancels orders and gives back the stock a
// confirmed or processing order was holding.
type CancelOrderCommandHandler struct {
	lifecycle orderLifecycle
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		lifecycle: newOrderLifecycle(uowFactory, publisher),
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.lifecycle.run(ctx, cmd.OrderID(),
		func(ctx context.Context, uow UoW, o *order.Order, now time.Time) (bool, error) {
			heldStock := o.Status().HoldsStock()
			if err := o.Cancel(cmd.Actor(), cmd.Reason(), now); err != nil {
				return false, err
			}

			if heldStock {
				if err := restoreItems(ctx, ledger.New(uow), o, cmd.Actor(), now); err != nil {
					return false, err
				}
			}

			return true, nil
		})
}
