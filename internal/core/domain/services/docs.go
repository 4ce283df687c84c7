// Package services provides domain services that implement business rules
// spanning more than a single value object of the storefront domain.
//
// The package includes:
//   - BillReconciler: derives the payment status of a final bill and settles it on an order
//
// Domain services are stateless and perform no I/O; the application layer
// loads and persists the aggregates they operate on.
package services
