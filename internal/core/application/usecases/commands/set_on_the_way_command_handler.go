package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// SetOnTheWayCommandHandler is the countdown path from confirmed to
// processing. The buyer is notified with the legacy minutes value.
type SetOnTheWayCommandHandler struct {
	lifecycle orderLifecycle
}

func NewSetOnTheWayCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) SetOnTheWayCommandHandler {
	return SetOnTheWayCommandHandler{
		lifecycle: newOrderLifecycle(uowFactory, publisher),
	}
}

func (h SetOnTheWayCommandHandler) Handle(ctx context.Context, cmd SetOnTheWayCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.lifecycle.run(ctx, cmd.OrderID(),
		func(_ context.Context, _ UoW, o *order.Order, now time.Time) (bool, error) {
			err := o.SetOnTheWay(cmd.TotalSeconds(), cmd.Actor(), now)
			return err == nil, err
		})
}
