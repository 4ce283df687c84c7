package http

import (
	"encoding/json"
	"time"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

func amount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func optional[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func fromAPIUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toOrder(o *order.Order) Order {
	buyer := o.Buyer()
	response := Order{
		Id: o.ID().Bytes(),
		Buyer: Buyer{
			Id:      buyer.ID().Bytes(),
			Name:    buyer.Name(),
			Phone:   optional(buyer.Phone()),
			Address: optional(buyer.Address()),
		},
		DeliveryAddress: o.DeliveryAddress(),
		Total:           amount(o.Total().Decimal()),
		Status:          o.Status().String(),
		CreatedAt:       o.CreatedAt(),
		StatusUpdatedAt: optionalTime(o.StatusUpdatedAt()),
		ConfirmedBy:     optional(o.ConfirmedBy()),
		DeliveredBy:     optional(o.DeliveredBy()),
	}

	if point := o.Coordinates(); point != nil {
		lat, lon := point.Latitude(), point.Longitude()
		response.Latitude, response.Longitude = &lat, &lon
	}

	d := o.Delivery()
	response.Delivery = toDelivery(queries.DeliveryView{
		TrackingNumber:    d.TrackingNumber,
		Carrier:           d.Carrier,
		EstimatedDelivery: d.EstimatedDelivery,
		TotalSeconds:      d.TotalSeconds,
		StartEpoch:        d.StartEpoch,
		StartedAt:         d.StartedAt,
		LegacyMinutes:     d.LegacyMinutes,
	})

	if b := o.Billing(); b != nil {
		response.Billing = &Billing{
			FinalAmount:   amount(b.FinalAmount.Decimal()),
			PaymentStatus: b.PaymentStatus.String(),
			BilledBy:      optional(b.BilledBy),
			BilledAt:      optionalTime(b.BilledAt),
			Notes:         optional(b.Notes),
		}
	}

	items := o.Items()
	response.Items = make([]OrderItem, len(items))
	for i, item := range items {
		response.Items[i] = OrderItem{
			ProductId: item.ProductID().Bytes(),
			Name:      item.Name(),
			Rate:      amount(item.Rate().Decimal()),
			Quantity:  item.Quantity(),
			Subtotal:  amount(item.Subtotal().Decimal()),
		}
	}

	return response
}

func toOrderFromView(v queries.OrderView) Order {
	response := Order{
		Id: v.ID.Bytes(),
		Buyer: Buyer{
			Id:      v.BuyerID.Bytes(),
			Name:    v.BuyerName,
			Phone:   optional(v.BuyerPhone),
			Address: optional(v.BuyerAddress),
		},
		DeliveryAddress: v.DeliveryAddress,
		Latitude:        v.Latitude,
		Longitude:       v.Longitude,
		Total:           amount(v.Total),
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		StatusUpdatedAt: optionalTime(v.StatusUpdatedAt),
		Delivery:        toDelivery(v.Delivery),
		ConfirmedBy:     optional(v.ConfirmedBy),
		DeliveredBy:     optional(v.DeliveredBy),
	}

	if b := v.Billing; b != nil {
		response.Billing = &Billing{
			FinalAmount:   amount(b.FinalAmount),
			PaymentStatus: b.PaymentStatus,
			BilledBy:      optional(b.BilledBy),
			BilledAt:      b.BilledAt,
			Notes:         optional(b.Notes),
		}
	}

	response.Items = make([]OrderItem, len(v.Items))
	for i, item := range v.Items {
		response.Items[i] = OrderItem{
			ProductId: item.ProductID.Bytes(),
			Name:      item.Name,
			Rate:      amount(item.Rate),
			Quantity:  item.Quantity,
			Subtotal:  amount(item.Subtotal),
		}
	}

	return response
}

// toDelivery returns nil until the order has tracking data or a countdown.
func toDelivery(d queries.DeliveryView) *Delivery {
	if d.TrackingNumber == "" && d.TotalSeconds == 0 {
		return nil
	}
	return &Delivery{
		TrackingNumber:    optional(d.TrackingNumber),
		Carrier:           optional(d.Carrier),
		EstimatedDelivery: d.EstimatedDelivery,
		TotalSeconds:      optional(d.TotalSeconds),
		StartEpoch:        optional(d.StartEpoch),
		StartedAt:         d.StartedAt,
		LegacyMinutes:     optional(d.LegacyMinutes),
	}
}

func toProduct(p *inventory.Product) Product {
	return Product{
		Id:                p.ID().Bytes(),
		Name:              p.Name(),
		Category:          p.Category(),
		StockQuantity:     p.StockQuantity(),
		LowStockThreshold: p.LowStockThreshold(),
		Rate:              amount(p.Rate().Decimal()),
		UpdatedAt:         optionalTime(p.UpdatedAt()),
	}
}

func toProductFromView(v queries.ProductView) Product {
	return Product{
		Id:                v.ID.Bytes(),
		Name:              v.Name,
		Category:          v.Category,
		StockQuantity:     v.StockQuantity,
		LowStockThreshold: v.LowStockThreshold,
		Rate:              amount(v.Rate),
		UpdatedAt:         optionalTime(v.UpdatedAt),
	}
}

func toStockEntry(e inventory.StockEntry) StockEntry {
	return toStockEntryFromView(queries.StockEntryView{
		ID:             e.ID(),
		ProductID:      e.ProductID(),
		OrderID:        e.OrderID(),
		ChangeType:     e.ChangeType().String(),
		QuantityChange: e.QuantityChange(),
		QuantityBefore: e.QuantityBefore(),
		QuantityAfter:  e.QuantityAfter(),
		ChangedBy:      e.ChangedBy(),
		ChangedAt:      e.ChangedAt(),
		Notes:          e.Notes(),
	})
}

func toStockEntryFromView(v queries.StockEntryView) StockEntry {
	entry := StockEntry{
		Id:             v.ID.Bytes(),
		ProductId:      v.ProductID.Bytes(),
		ChangeType:     v.ChangeType,
		QuantityChange: v.QuantityChange,
		QuantityBefore: v.QuantityBefore,
		QuantityAfter:  v.QuantityAfter,
		ChangedBy:      v.ChangedBy,
		ChangedAt:      v.ChangedAt,
		Notes:          optional(v.Notes),
	}
	if v.OrderID != nil {
		id := v.OrderID.Bytes()
		entry.OrderId = &id
	}
	return entry
}

func toStatusChange(v queries.StatusChangeView) StatusChange {
	return StatusChange{
		Id:        v.ID.Bytes(),
		OldStatus: v.OldStatus,
		NewStatus: v.NewStatus,
		ChangedBy: v.ChangedBy,
		ChangedAt: v.ChangedAt,
		Notes:     optional(v.Notes),
	}
}

func toOrderStats(s queries.OrderStats) OrderStats {
	return OrderStats{
		TotalOrders:     s.TotalOrders,
		PendingOrders:   s.PendingOrders,
		DeliveredOrders: s.DeliveredOrders,
		TotalRevenue:    amount(s.TotalRevenue),
		ProductsCount:   s.ProductsCount,
		TodayOrders:     s.TodayOrders,
		DateRangeLabel:  s.DateRangeLabel,
	}
}
