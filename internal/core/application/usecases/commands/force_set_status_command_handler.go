package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// ForceSetStatusCommandHandler applies the administrative override. It has no
// stock side effects; the caller owns inventory consistency afterwards.
type ForceSetStatusCommandHandler struct {
	lifecycle orderLifecycle
}

func NewForceSetStatusCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) ForceSetStatusCommandHandler {
	return ForceSetStatusCommandHandler{
		lifecycle: newOrderLifecycle(uowFactory, publisher),
	}
}

func (h ForceSetStatusCommandHandler) Handle(ctx context.Context, cmd ForceSetStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.lifecycle.run(ctx, cmd.OrderID(),
		func(_ context.Context, _ UoW, o *order.Order, now time.Time) (bool, error) {
			err := o.ForceStatus(cmd.Status(), cmd.Actor(), now)
			return err == nil, err
		})
}
