// Package service is the storefront's single write entry point. It owns
// the product index, the order ledger, and the id sequencers, and makes
// every mutation durable before returning.
//
// Mutation order is fixed: journal the intent, apply it in memory, rewrite
// the snapshot file, enqueue the outbound event. The service is safe for
// concurrent use; one RW mutex guards both structures.
package service
