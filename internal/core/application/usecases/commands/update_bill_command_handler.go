package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// UpdateBillCommandHandler settles the final bill through the BillReconciler.
// It never changes the order status.
type UpdateBillCommandHandler struct {
	lifecycle  orderLifecycle
	reconciler services.BillReconciler
}

func NewUpdateBillCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) UpdateBillCommandHandler {
	return UpdateBillCommandHandler{
		lifecycle:  newOrderLifecycle(uowFactory, publisher),
		reconciler: services.NewBillReconciler(),
	}
}

func (h UpdateBillCommandHandler) Handle(ctx context.Context, cmd UpdateBillCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.lifecycle.run(ctx, cmd.OrderID(),
		func(_ context.Context, _ UoW, o *order.Order, now time.Time) (bool, error) {
			err := h.reconciler.Settle(o, cmd.Amount(), cmd.Notes(), cmd.Actor(), now)
			return err == nil, err
		})
}
