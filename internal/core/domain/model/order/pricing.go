package order

import (
	"storefront/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	// TaxPercent is applied to the items subtotal of an edited order.
	TaxPercent = decimal.NewFromInt(5)

	// DeliveryFee is added once per order.
	DeliveryFee = decimal.NewFromInt(20)
)

// Subtotal sums the item subtotals.
func Subtotal(items []Item) kernel.Money {
	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	return subtotal
}

// CalculateTotal returns subtotal + 5% tax + the delivery fee, rounded to two
// decimals half up.
func CalculateTotal(items []Item) kernel.Money {
	subtotal := Subtotal(items)
	fee, _ := kernel.NewMoney(DeliveryFee)
	return subtotal.Add(subtotal.Percent(TaxPercent)).Add(fee)
}
