// Package errs holds the error taxonomy shared by the storefront domain,
// use cases and adapters.
//
// Every error type unwraps to a sentinel so callers branch with errors.Is:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange for bad input;
//     all three also match ErrValidation
//   - ErrObjectNotFound for an unknown order or product
//   - ErrInvalidState for a transition the order lifecycle does not allow
//   - ErrInsufficientStock when a deduction would take stock below zero
//   - ErrConflict for a concurrent modification, wrapping ErrVersionIsInvalid
//     when the optimistic version did not match
//
// The HTTP adapter maps these sentinels onto status codes.
package errs
