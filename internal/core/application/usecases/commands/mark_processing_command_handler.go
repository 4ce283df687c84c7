package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// MarkProcessingCommandHandler moves confirmed orders to processing with
// tracking metadata. Stock was already deducted on confirmation.
type MarkProcessingCommandHandler struct {
	lifecycle orderLifecycle
}

func NewMarkProcessingCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) MarkProcessingCommandHandler {
	return MarkProcessingCommandHandler{
		lifecycle: newOrderLifecycle(uowFactory, publisher),
	}
}

func (h MarkProcessingCommandHandler) Handle(ctx context.Context, cmd MarkProcessingCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.lifecycle.run(ctx, cmd.OrderID(),
		func(_ context.Context, _ UoW, o *order.Order, now time.Time) (bool, error) {
			err := o.StartProcessing(cmd.TrackingNumber(), cmd.Carrier(), cmd.EstimatedDelivery(), cmd.Actor(), now)
			return err == nil, err
		})
}
