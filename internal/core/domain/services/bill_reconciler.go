package services

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
)

// BillReconciler compares a final bill with the original order total.
//
// Business rules:
//   - A bill equal to the total is PAID
//   - A zero bill is UNPAID
//   - Anything in between is PARTIALLY_PAID
//   - A bill above the total is rejected
//
// Example usage:
//
//	reconciler := services.NewBillReconciler()
//	if err := reconciler.Settle(o, amount, "paid in cash", "seller", time.Now()); err != nil {
//	    // errs.ErrInvalidState when the order is not in processing,
//	    // errs.ErrValidation when the amount is out of range
//	}
type BillReconciler struct{}

// NewBillReconciler creates a new BillReconciler instance.
func NewBillReconciler() BillReconciler {
	return BillReconciler{}
}

// Reconcile derives the payment status of amount against total.
func (r BillReconciler) Reconcile(total, amount kernel.Money) (order.PaymentStatus, error) {
	if err := errors.Join(total.Validate(), amount.Validate()); err != nil {
		return order.PaymentUnknown, err
	}

	switch cmp := amount.Cmp(total); {
	case cmp > 0:
		return order.PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
			"final bill amount",
			fmt.Errorf("₹%s cannot exceed original order total ₹%s", amount, total),
		)
	case cmp == 0:
		return order.Paid, nil
	case amount.IsZero():
		return order.Unpaid, nil
	default:
		return order.PartiallyPaid, nil
	}
}

// Settle records the final bill on o. The order state is checked before the
// amount, and a final bill must be greater than zero.
func (r BillReconciler) Settle(o *order.Order, amount kernel.Money, notes, actor string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := o.Status().ValidateBillable(); err != nil {
		return err
	}

	if err := amount.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("final bill amount", err)
	}

	if amount.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause(
			"final bill amount",
			errors.New("must be greater than 0"),
		)
	}

	paymentStatus, err := r.Reconcile(o.Total(), amount)
	if err != nil {
		return err
	}

	return o.ApplyBill(amount, paymentStatus, notes, actor, now)
}
