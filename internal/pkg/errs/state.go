package errs

import "fmt"

// InvalidStateError reports an operation that is illegal for the current state
// of an aggregate, such as confirming an order that is no longer pending.
type InvalidStateError struct {
	ParamName string
	State     string
	Cause     error
}

func NewInvalidStateError(paramName, state string) *InvalidStateError {
	return &InvalidStateError{ParamName: paramName, State: state}
}

func NewInvalidStateErrorWithCause(paramName, state string, cause error) *InvalidStateError {
	return &InvalidStateError{ParamName: paramName, State: state, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is %s (cause: %v)", ErrInvalidState, e.ParamName, e.State, e.Cause)
	}
	return fmt.Sprintf("%s: %s is %s", ErrInvalidState, e.ParamName, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// InsufficientStockError reports a deduction that would drive stock below zero.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func NewInsufficientStockError(productName string, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{ProductName: productName, Available: available, Requested: requested}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for menu item: %s (available %d, requested %d)",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ConflictError reports a write that lost a race against a concurrent one.
type ConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

func NewConflictErrorWithCause(paramName string, id any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s (cause: %v)", ErrConflict, e.ParamName, sanitize(fmt.Sprint(e.ID)), e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrConflict, e.ParamName, sanitize(fmt.Sprint(e.ID)))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
