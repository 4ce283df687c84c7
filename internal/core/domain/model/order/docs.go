// Package order provides the Order aggregate of the storefront: its lifecycle
// state machine, line item snapshots, billing data and audit trail.
//
// The package includes:
//   - Order: the aggregate root owning items, status, delivery and billing data
//   - Status: the lifecycle state machine (pending, confirmed, processing, delivered, canceled)
//   - PaymentStatus: PAID, UNPAID or PARTIALLY_PAID, derived from the final bill
//   - Item: immutable name/rate snapshot of a product line
//   - StatusChange: immutable audit entry for every status change
//   - PlacedEvent, StatusChangedEvent, BillUpdatedEvent: domain events for notifications
//
// Key business rules:
//   - Orders always have at least one item
//   - Processing is only reachable from Confirmed
//   - Delivered and Canceled are terminal
//   - Bills are recorded only while Processing and never exceed the order total
//   - Delivery requires a recorded bill; delivering twice is a no-op
//
// Stock is not part of this package. The application layer deducts and
// restores it through the stock ledger in the same unit of work as the
// status change.
package order
