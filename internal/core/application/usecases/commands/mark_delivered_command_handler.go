package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// MarkDeliveredCommandHandler completes orders. Delivering an order twice
// returns it unchanged without writing history or notifying the buyer.
type MarkDeliveredCommandHandler struct {
	lifecycle orderLifecycle
}

func NewMarkDeliveredCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		lifecycle: newOrderLifecycle(uowFactory, publisher),
	}
}

func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.lifecycle.run(ctx, cmd.OrderID(),
		func(_ context.Context, _ UoW, o *order.Order, now time.Time) (bool, error) {
			return o.Deliver(cmd.Actor(), now)
		})
}
