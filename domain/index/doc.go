// Package index provides an unbalanced binary search tree used as the
// product catalog's ordered index.
//
// Placement and lookup are driven by two injected comparators: one orders
// full values against each other, the other orders a raw lookup key
// against a stored value. Both must induce the same order over stored
// values or Search may miss entries.
//
// The tree is never rebalanced. Its shape depends only on insertion order.
package index
