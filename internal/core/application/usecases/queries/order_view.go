package queries

import (
	"context"
	"database/sql"
	"time"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the read model of an order with its items. Status and
// payment status carry their wire names.
type OrderView struct {
	ID              kernel.UUID
	BuyerID         kernel.UUID
	BuyerName       string
	BuyerPhone      string
	BuyerAddress    string
	DeliveryAddress string
	Latitude        *float64
	Longitude       *float64
	Total           decimal.Decimal
	Status          string
	CreatedAt       time.Time
	StatusUpdatedAt time.Time
	Delivery        DeliveryView
	ConfirmedBy     string
	DeliveredBy     string
	Billing         *BillingView
	Items           []OrderItemView
}

// DeliveryView holds tracking metadata and the delivery countdown.
type DeliveryView struct {
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery *time.Time
	TotalSeconds      int64
	StartEpoch        int64
	StartedAt         *time.Time
	LegacyMinutes     int
}

// BillingView is the final bill of an order.
type BillingView struct {
	FinalAmount   decimal.Decimal
	PaymentStatus string
	BilledBy      string
	BilledAt      *time.Time
	Notes         string
}

// OrderItemView is one line of an order.
type OrderItemView struct {
	ProductID kernel.UUID
	Name      string
	Rate      decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}

const orderColumns = `
	id,
	buyer_id,
	buyer_name,
	COALESCE(buyer_phone, ''),
	COALESCE(buyer_address, ''),
	delivery_address,
	latitude,
	longitude,
	total,
	status,
	created_at,
	status_updated_at,
	COALESCE(delivery_tracking_number, ''),
	COALESCE(delivery_carrier, ''),
	delivery_estimated_delivery,
	COALESCE(delivery_total_seconds, 0),
	COALESCE(delivery_start_epoch, 0),
	delivery_started_at,
	COALESCE(delivery_legacy_minutes, 0),
	COALESCE(confirmed_by, ''),
	COALESCE(delivered_by, ''),
	billing_final_amount,
	billing_payment_status,
	billing_billed_by,
	billing_billed_at,
	billing_notes`

func scanOrder(rows *sql.Rows) (OrderView, error) {
	var (
		view                       OrderView
		id, buyerID                uuid.UUID
		finalAmount                decimal.NullDecimal
		paymentStatus, billedBy    sql.NullString
		billingNotes               sql.NullString
		billedAt                   sql.NullTime
		estimatedDelivery, started sql.NullTime
	)

	err := rows.Scan(
		&id,
		&buyerID,
		&view.BuyerName,
		&view.BuyerPhone,
		&view.BuyerAddress,
		&view.DeliveryAddress,
		&view.Latitude,
		&view.Longitude,
		&view.Total,
		&view.Status,
		&view.CreatedAt,
		&view.StatusUpdatedAt,
		&view.Delivery.TrackingNumber,
		&view.Delivery.Carrier,
		&estimatedDelivery,
		&view.Delivery.TotalSeconds,
		&view.Delivery.StartEpoch,
		&started,
		&view.Delivery.LegacyMinutes,
		&view.ConfirmedBy,
		&view.DeliveredBy,
		&finalAmount,
		&paymentStatus,
		&billedBy,
		&billedAt,
		&billingNotes,
	)
	if err != nil {
		return OrderView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderView{}, err
	}
	if view.BuyerID, err = kernel.UUIDFromBytes(buyerID[:]); err != nil {
		return OrderView{}, err
	}

	view.Delivery.EstimatedDelivery = nullTime(estimatedDelivery)
	view.Delivery.StartedAt = nullTime(started)

	if finalAmount.Valid {
		view.Billing = &BillingView{
			FinalAmount:   finalAmount.Decimal,
			PaymentStatus: paymentStatus.String,
			BilledBy:      billedBy.String,
			BilledAt:      nullTime(billedAt),
			Notes:         billingNotes.String,
		}
	}

	view.Items = make([]OrderItemView, 0)
	return view, nil
}

// attachItems loads the items of every view with one query, keeping the
// position order of each order.
func attachItems(ctx context.Context, db *gorm.DB, views []OrderView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(views))
	index := make(map[uuid.UUID]int, len(views))
	for i, view := range views {
		id := view.ID.Bytes()
		ids = append(ids, id)
		index[id] = i
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			name,
			rate,
			quantity,
			subtotal
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item               OrderItemView
			orderID, productID uuid.UUID
		)

		if err = rows.Scan(&orderID, &productID, &item.Name, &item.Rate, &item.Quantity, &item.Subtotal); err != nil {
			return err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return err
		}

		i := index[orderID]
		views[i].Items = append(views[i].Items, item)
	}

	return rows.Err()
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
