package commands

import (
	"context"
	"time"

	"storefront/internal/core/application/ledger"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// ConfirmOrderCommandHandler confirms pending orders and deducts their stock.
//
// The order row is locked for the whole unit of work, so two concurrent
// confirmations of the same order serialize: the second one observes the
// confirmed status and fails with errs.ErrInvalidState. Any item short on
// stock aborts the confirmation without partial deductions.
type ConfirmOrderCommandHandler struct {
	lifecycle orderLifecycle
}

func NewConfirmOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		lifecycle: newOrderLifecycle(uowFactory, publisher),
	}
}

func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.lifecycle.run(ctx, cmd.OrderID(),
		func(ctx context.Context, uow UoW, o *order.Order, now time.Time) (bool, error) {
			if err := o.Confirm(cmd.Actor(), now); err != nil {
				return false, err
			}

			if err := deductItems(ctx, ledger.New(uow), o, cmd.Actor(), now); err != nil {
				return false, err
			}

			return true, nil
		})
}
