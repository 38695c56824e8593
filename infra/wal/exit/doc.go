// Package exit is the event outbox: a durable pebble-backed queue of
// domain events waiting to be published.
//
// Every record moves NEW -> SENT -> ACKED, or SENT -> FAILED on a publish
// error. FAILED records are retried. ACKED records are removed by
// TruncateAcked.
package exit
