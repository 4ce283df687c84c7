package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// CreateOrderCommandHandler places new orders in pending status.
// Stock is not touched until the order is confirmed.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // an item references an unknown product
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// Handle snapshots every line, persists the order with its first history
// entry and announces it to the administrators.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	buyerDetails := cmd.Buyer()
	buyer, err := order.NewBuyer(buyerDetails.ID, buyerDetails.Name, buyerDetails.Phone, buyerDetails.Address)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items, err := snapshotLines(ctx, uow.ProductRepository(), cmd.Lines())
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		cmd.OrderID(), buyer, cmd.DeliveryAddress(), cmd.Coordinates(), cmd.Total(), items, h.clock(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = appendStatusChanges(ctx, uow, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if events := uow.PullDomainEvents(); h.publisher != nil && len(events) > 0 {
		h.publisher.Publish(ctx, events...)
	}

	return o, nil
}

func snapshotLines(ctx context.Context, products ports.ProductRepository, lines []OrderLine) ([]order.Item, error) {
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		product, err := products.Get(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		name := line.Name
		if name == "" {
			name = product.Name()
		}

		rate := product.Rate()
		if line.Rate != nil {
			rate = *line.Rate
		}

		item, err := order.NewItem(product.ID(), name, rate, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
