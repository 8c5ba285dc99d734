// Package pubsub fans typed events out from background producers (the store
// file watcher) to the Bubble Tea update loop.
package pubsub

import "time"

// EventType represents the type of event being published.
type EventType string

const (
	// ChangedEvent reports that watched state changed outside the process.
	ChangedEvent EventType = "changed"
	// ErrorEvent reports a producer-side failure. Payload carries details.
	ErrorEvent EventType = "error"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}
