package order

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Delivered
//	   │            │              │
//	   └────────────┴──────────────┴──────> Canceled
//
// Delivered and Canceled are terminal. The lowercase names returned by String
// are the wire values stored in the database and exchanged over HTTP.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a placed order. No stock is held.
	Pending

	// Confirmed means the seller accepted the order and its stock was deducted.
	Confirmed

	// Processing means the order left the shop, either with tracking metadata
	// or with a delivery countdown.
	Processing

	// Delivered is the terminal status of a billed and handed over order.
	Delivered

	// Canceled is the terminal status of an abandoned order.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Processing: "processing",
		Delivered:  "delivered",
		Canceled:   "canceled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Confirmed:  "confirmed",
		Processing: "processing",
		Delivered:  "delivered",
		Canceled:   "canceled",
	}
}

// ParseStatus converts a wire value such as "confirmed" into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the five lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase wire name, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no lifecycle transition leaves this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Canceled
}

// HoldsStock reports whether stock for the order items is currently deducted.
func (s Status) HoldsStock() bool {
	return s == Confirmed || s == Processing
}

// ValidateEditable checks that items may still be replaced.
// Only Pending and Confirmed orders are editable.
func (s Status) ValidateEditable() error {
	if s != Pending && s != Confirmed {
		return invalidTransition(s, "edit")
	}
	return nil
}

// ValidateBillable checks that a final bill may be recorded.
// Bills are only accepted while the order is in Processing.
func (s Status) ValidateBillable() error {
	if s != Processing {
		return invalidTransition(s, "bill")
	}
	return nil
}

// Confirm transitions Pending -> Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return Unknown, invalidTransition(s, "confirm")
	}
	return Confirmed, nil
}

// StartProcessing transitions Confirmed -> Processing. Both the tracking path
// and the on-the-way countdown path go through it, so an order never reaches
// Processing without having been confirmed.
func (s Status) StartProcessing() (Status, error) {
	if s != Confirmed {
		return Unknown, invalidTransition(s, "start processing")
	}
	return Processing, nil
}

// Deliver transitions Processing -> Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Processing {
		return Unknown, invalidTransition(s, "deliver")
	}
	return Delivered, nil
}

// Cancel transitions any non-terminal status to Canceled.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, invalidTransition(s, "cancel")
	}
	return Canceled, nil
}

func invalidTransition(s Status, action string) error {
	return errs.NewInvalidStateErrorWithCause(
		"order status",
		s.String(),
		fmt.Errorf("%s is not a valid status to %s", s.String(), action),
	)
}
