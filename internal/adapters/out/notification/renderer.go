package notification

import (
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

// StatusUpdateTitle is the title of every buyer notification.
const StatusUpdateTitle = "Order Status Updated"

// BuyerNotification is a rendered message addressed to one buyer.
type BuyerNotification struct {
	BuyerID kernel.UUID
	Title   string
	Message string
	Payload map[string]string
}

// RenderBuyerNotification turns a buyer-facing event into its message. It
// reports false for events that are not addressed to the buyer.
func RenderBuyerNotification(event kernel.DomainEvent) (BuyerNotification, bool) {
	switch e := event.(type) {
	case order.StatusChangedEvent:
		return BuyerNotification{
			BuyerID: e.BuyerID,
			Title:   StatusUpdateTitle,
			Message: statusMessage(e),
			Payload: payload(e.OrderID, e.Status),
		}, true
	case order.BillUpdatedEvent:
		return BuyerNotification{
			BuyerID: e.BuyerID,
			Title:   StatusUpdateTitle,
			Message: fmt.Sprintf("Your final bill for order #%s is ₹%s. Payment status: %s.",
				e.OrderID, e.Amount, e.PaymentStatus),
			Payload: payload(e.OrderID, e.Status),
		}, true
	default:
		return BuyerNotification{}, false
	}
}

// RenderAdminSummary turns a placed order into the administrators' notice.
func RenderAdminSummary(event kernel.DomainEvent) (ports.OrderSummary, bool) {
	e, ok := event.(order.PlacedEvent)
	if !ok {
		return ports.OrderSummary{}, false
	}
	return ports.OrderSummary{
		OrderID:      e.OrderID,
		CustomerName: e.BuyerName,
		Total:        e.Total,
		ItemCount:    e.ItemCount,
	}, true
}

func statusMessage(e order.StatusChangedEvent) string {
	switch e.Status {
	case order.Confirmed:
		return "Your order has been confirmed by the seller."
	case order.Processing:
		if e.LegacyMinutes > 0 {
			return fmt.Sprintf("Your order #%s is on the way! Expected delivery in %d minutes.",
				e.OrderID, e.LegacyMinutes)
		}
		return fmt.Sprintf("Your order #%s is on the way!", e.OrderID)
	case order.Canceled:
		return "Your order has been cancelled by the seller."
	case order.Delivered:
		return fmt.Sprintf("Your order #%s has been delivered! Thank you for your purchase.", e.OrderID)
	default:
		return fmt.Sprintf("Your order #%s status has been updated to %s.", e.OrderID, e.Status)
	}
}

func payload(orderID kernel.UUID, status order.Status) map[string]string {
	return map[string]string{
		"orderId": orderID.String(),
		"status":  status.String(),
		"type":    "order_update",
	}
}
