// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and payment status are stored as their wire names.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Buyer           BuyerDTO        `gorm:"embedded;embeddedPrefix:buyer_"`
	DeliveryAddress string          `gorm:"type:text;not null"`
	Latitude        *float64        `gorm:"type:double precision"`
	Longitude       *float64        `gorm:"type:double precision"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status          string          `gorm:"type:varchar(16);not null;index"`
	CreatedAt       time.Time       `gorm:"not null;index"`
	StatusUpdatedAt time.Time       `gorm:"not null"`
	Delivery        DeliveryDTO     `gorm:"embedded;embeddedPrefix:delivery_"`
	ConfirmedBy     string          `gorm:"type:varchar(255)"`
	DeliveredBy     string          `gorm:"type:varchar(255)"`
	Billing         BillingDTO      `gorm:"embedded;embeddedPrefix:billing_"`
	Version         int64           `gorm:"not null;default:0"`
	Items           []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// BuyerDTO is the buyer snapshot embedded in the orders table.
type BuyerDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Phone   string    `gorm:"type:varchar(64)"`
	Address string    `gorm:"type:text"`
}

// DeliveryDTO holds tracking and countdown metadata.
type DeliveryDTO struct {
	TrackingNumber    string `gorm:"type:varchar(255)"`
	Carrier           string `gorm:"type:varchar(255)"`
	EstimatedDelivery *time.Time
	TotalSeconds      int64
	StartEpoch        int64
	StartedAt         *time.Time
	LegacyMinutes     int
}

// BillingDTO holds the final bill. All columns are null until the order is billed.
type BillingDTO struct {
	FinalAmount   *decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaymentStatus *string          `gorm:"type:varchar(16)"`
	BilledBy      *string          `gorm:"type:varchar(255)"`
	BilledAt      *time.Time
	Notes         *string `gorm:"type:text"`
}

// OrderItemDTO is one line of an order. Position keeps the original item order.
type OrderItemDTO struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Rate      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity  int             `gorm:"not null;check:quantity >= 1"`
	Subtotal  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for order item rows.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	buyer := o.Buyer()

	dto := OrderDTO{
		ID: orderID,
		Buyer: BuyerDTO{
			ID:      buyer.ID().Bytes(),
			Name:    buyer.Name(),
			Phone:   buyer.Phone(),
			Address: buyer.Address(),
		},
		DeliveryAddress: o.DeliveryAddress(),
		Total:           o.Total().Decimal(),
		Status:          o.Status().String(),
		CreatedAt:       o.CreatedAt(),
		StatusUpdatedAt: o.StatusUpdatedAt(),
		ConfirmedBy:     o.ConfirmedBy(),
		DeliveredBy:     o.DeliveredBy(),
		Version:         o.Version(),
	}

	if point := o.Coordinates(); point != nil {
		lat, lng := point.Latitude(), point.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}

	delivery := o.Delivery()
	dto.Delivery = DeliveryDTO{
		TrackingNumber:    delivery.TrackingNumber,
		Carrier:           delivery.Carrier,
		EstimatedDelivery: delivery.EstimatedDelivery,
		TotalSeconds:      delivery.TotalSeconds,
		StartEpoch:        delivery.StartEpoch,
		StartedAt:         delivery.StartedAt,
		LegacyMinutes:     delivery.LegacyMinutes,
	}

	if billing := o.Billing(); billing != nil {
		amount := billing.FinalAmount.Decimal()
		paymentStatus := billing.PaymentStatus.String()
		billedBy := billing.BilledBy
		billedAt := billing.BilledAt
		notes := billing.Notes
		dto.Billing = BillingDTO{
			FinalAmount:   &amount,
			PaymentStatus: &paymentStatus,
			BilledBy:      &billedBy,
			BilledAt:      &billedAt,
			Notes:         &notes,
		}
	}

	dto.Items = itemsFromDomain(orderID, o.Items())
	return dto
}

func itemsFromDomain(orderID uuid.UUID, items []order.Item) []OrderItemDTO {
	dtos := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		dtos = append(dtos, OrderItemDTO{
			OrderID:   orderID,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Rate:      item.Rate().Decimal(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal().Decimal(),
		})
	}
	return dtos
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
// Items must be loaded in position order.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.Buyer.ID[:])
	if err != nil {
		return nil, err
	}

	buyer, err := order.NewBuyer(buyerID, dto.Buyer.Name, dto.Buyer.Phone, dto.Buyer.Address)
	if err != nil {
		return nil, err
	}

	coordinates, err := kernel.NewOptionalGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	billing, err := billingToDomain(dto.Billing)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.State{
		ID:              id,
		Buyer:           buyer,
		DeliveryAddress: dto.DeliveryAddress,
		Coordinates:     coordinates,
		Total:           total,
		Status:          status,
		CreatedAt:       dto.CreatedAt,
		StatusUpdatedAt: dto.StatusUpdatedAt,
		Delivery: order.Delivery{
			TrackingNumber:    dto.Delivery.TrackingNumber,
			Carrier:           dto.Delivery.Carrier,
			EstimatedDelivery: dto.Delivery.EstimatedDelivery,
			TotalSeconds:      dto.Delivery.TotalSeconds,
			StartEpoch:        dto.Delivery.StartEpoch,
			StartedAt:         dto.Delivery.StartedAt,
			LegacyMinutes:     dto.Delivery.LegacyMinutes,
		},
		ConfirmedBy: dto.ConfirmedBy,
		DeliveredBy: dto.DeliveredBy,
		Billing:     billing,
		Items:       items,
		Version:     dto.Version,
	})
}

func billingToDomain(dto BillingDTO) (*order.Billing, error) {
	if dto.FinalAmount == nil || dto.PaymentStatus == nil {
		return nil, nil //nolint:nilnil // an unbilled order has no billing
	}

	amount, err := kernel.NewMoney(*dto.FinalAmount)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.ParsePaymentStatus(*dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	billing := &order.Billing{
		FinalAmount:   amount,
		PaymentStatus: paymentStatus,
	}
	if dto.BilledBy != nil {
		billing.BilledBy = *dto.BilledBy
	}
	if dto.BilledAt != nil {
		billing.BilledAt = *dto.BilledAt
	}
	if dto.Notes != nil {
		billing.Notes = *dto.Notes
	}
	return billing, nil
}

func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	rate, err := kernel.NewMoney(dto.Rate)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(productID, dto.Name, rate, dto.Quantity)
}
