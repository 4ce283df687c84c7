// Package kernel provides the shared value objects of the storefront domain.
//
// The package includes:
//   - UUID: identifier for every aggregate and history entry
//   - Money: non-negative two-digit decimal amount backed by shopspring/decimal
//   - GeoPoint: optional latitude/longitude of a delivery address
//   - DomainEvent: contract for events raised by aggregates
//
// All value objects are immutable and reject their zero value in Validate.
package kernel
