package ports

import (
	"context"
	"time"
)

// NotificationEventType distinguishes the two rental lifecycle notifications.
type NotificationEventType string

const (
	EventRentalCreated  NotificationEventType = "rental_created"
	EventRentalReturned NotificationEventType = "rental_returned"
)

// NotificationEvent is the payload fired after a successful rental transition.
// It is self-contained so sinks never have to read the rental back.
type NotificationEvent struct {
	Type          NotificationEventType
	RentalID      string
	ItemID        string
	ItemName      string
	RenterID      string
	OwnerID       string
	TotalFeeCents int64
	DepositCents  int64
	StartedAt     time.Time
	DueAt         time.Time
	ReturnedAt    *time.Time
}

// Notifier is a delivery sink for rental notifications. Delivery is
// at-most-once-attempt: a returned error is logged by the caller and swallowed,
// never propagated to the operation that produced the event.
type Notifier interface {
	Notify(ctx context.Context, event NotificationEvent) error
}

// NotificationDispatcher is what the rental coordinator fires events into.
// Enqueue must not block the caller beyond channel buffering.
type NotificationDispatcher interface {
	Enqueue(event NotificationEvent)
}

// NotificationProcessor consumes events off the dispatcher's workers,
// deduplicates them, and fans out to the configured sinks.
type NotificationProcessor interface {
	Process(ctx context.Context, event NotificationEvent) error
}
