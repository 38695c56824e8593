// Package snapshot persists entity collections as JSON arrays, one file
// per entity kind. Every write replaces the whole file.
package snapshot
