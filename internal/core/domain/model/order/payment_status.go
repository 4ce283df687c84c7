package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// PaymentStatus describes how much of the order total the final bill covers.
// Unlike Status its wire values are uppercase; existing clients depend on both
// spellings, so String reproduces them exactly.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	Paid
	Unpaid
	PartiallyPaid
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		Paid:          "PAID",
		Unpaid:        "UNPAID",
		PartiallyPaid: "PARTIALLY_PAID",
	}
}

// ParsePaymentStatus converts a wire value such as "PARTIALLY_PAID".
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, name := range getPaymentStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

func (p PaymentStatus) Validate() error {
	if _, ok := getPaymentStatusStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p),
		)
	}
	return nil
}

func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}
