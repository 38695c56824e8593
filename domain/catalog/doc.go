// Package catalog holds the storefront entities and the ordering and
// matching functions the index and ledger structures are built with.
//
// Orders reference products by id only. Lines are resolved against the
// catalog when a detail is composed, never stored as references.
package catalog
