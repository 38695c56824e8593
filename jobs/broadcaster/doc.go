// Package broadcaster drains the event outbox into a message broker.
//
// Each pass marks a pending record SENT, publishes it, then marks it
// ACKED or FAILED. Delivery is at-least-once: a crash between publish and
// ack republishes the event on the next pass.
package broadcaster
