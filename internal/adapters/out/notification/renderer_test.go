package notification_test

import (
	"testing"
	"time"

	"storefront/internal/adapters/out/notification"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBuyerNotification_StatusChanged(t *testing.T) {
	orderID := kernel.NewUUID()
	buyerID := kernel.NewUUID()

	tests := []struct {
		name    string
		status  order.Status
		minutes int
		want    string
	}{
		{"confirmed", order.Confirmed, 0, "Your order has been confirmed by the seller."},
		{"on the way with minutes", order.Processing, 5,
			"Your order #" + orderID.String() + " is on the way! Expected delivery in 5 minutes."},
		{"on the way without minutes", order.Processing, 0,
			"Your order #" + orderID.String() + " is on the way!"},
		{"canceled", order.Canceled, 0, "Your order has been cancelled by the seller."},
		{"delivered", order.Delivered, 0,
			"Your order #" + orderID.String() + " has been delivered! Thank you for your purchase."},
		{"other status", order.Pending, 0,
			"Your order #" + orderID.String() + " status has been updated to pending."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := order.StatusChangedEvent{
				OrderID:       orderID,
				BuyerID:       buyerID,
				Status:        tt.status,
				LegacyMinutes: tt.minutes,
				OccurredAt:    time.Now(),
			}

			n, ok := notification.RenderBuyerNotification(event)

			require.True(t, ok)
			assert.Equal(t, buyerID, n.BuyerID)
			assert.Equal(t, notification.StatusUpdateTitle, n.Title)
			assert.Equal(t, tt.want, n.Message)
			assert.Equal(t, map[string]string{
				"orderId": orderID.String(),
				"status":  tt.status.String(),
				"type":    "order_update",
			}, n.Payload)
		})
	}
}

func TestRenderBuyerNotification_BillUpdated(t *testing.T) {
	orderID := kernel.NewUUID()
	amount, err := kernel.MoneyFromString("150.50")
	require.NoError(t, err)

	n, ok := notification.RenderBuyerNotification(order.BillUpdatedEvent{
		OrderID:       orderID,
		BuyerID:       kernel.NewUUID(),
		Status:        order.Processing,
		Amount:        amount,
		PaymentStatus: order.PartiallyPaid,
	})

	require.True(t, ok)
	assert.Equal(t, "Your final bill for order #"+orderID.String()+" is ₹150.50. Payment status: PARTIALLY_PAID.", n.Message)
	assert.Equal(t, "processing", n.Payload["status"])
}

func TestRenderBuyerNotification_PlacedIsNotForBuyer(t *testing.T) {
	_, ok := notification.RenderBuyerNotification(order.PlacedEvent{OrderID: kernel.NewUUID()})
	assert.False(t, ok)
}

func TestRenderAdminSummary(t *testing.T) {
	total, err := kernel.MoneyFromString("99.00")
	require.NoError(t, err)
	event := order.PlacedEvent{
		OrderID:   kernel.NewUUID(),
		BuyerID:   kernel.NewUUID(),
		BuyerName: "Asha",
		Total:     total,
		ItemCount: 3,
	}

	summary, ok := notification.RenderAdminSummary(event)

	require.True(t, ok)
	assert.Equal(t, event.OrderID, summary.OrderID)
	assert.Equal(t, "Asha", summary.CustomerName)
	assert.Equal(t, "99.00", summary.Total.String())
	assert.Equal(t, 3, summary.ItemCount)

	_, ok = notification.RenderAdminSummary(order.StatusChangedEvent{})
	assert.False(t, ok)
}
