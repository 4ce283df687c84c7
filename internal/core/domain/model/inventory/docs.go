// Package inventory provides the catalog side of the storefront domain.
//
// Product owns a stock count that never goes negative. Every mutation returns
// a Movement which the stock ledger turns into an immutable StockEntry, so the
// history always explains the current count.
package inventory
