package domain

import "time"

// Event representa um evento no sistema.
type Event[T any] interface {
	EventID() string
	EventName() string
	OccurredAt() time.Time
	Payload() T
}
