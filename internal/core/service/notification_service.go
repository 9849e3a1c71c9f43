package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/wearloop/rental-system/internal/api/metrics"
	"github.com/wearloop/rental-system/internal/core/ports"
)

// DedupChecker abstracts the notification idempotency store (Redis).
type DedupChecker interface {
	Seen(ctx context.Context, rentalID string, event ports.NotificationEventType) (bool, error)
	Mark(ctx context.Context, rentalID string, event ports.NotificationEventType) error
}

type notificationService struct {
	dedup DedupChecker
	sinks []namedSink
	log   zerolog.Logger
}

type namedSink struct {
	name     string
	notifier ports.Notifier
}

// NewNotificationService returns the processor that worker goroutines hand
// dequeued events to. Delivery is at-most-once-attempt per sink: an event is
// marked processed before fan-out, and sink failures are logged and swallowed.
func NewNotificationService(dedup DedupChecker, log zerolog.Logger) *notificationService {
	return &notificationService{dedup: dedup, log: log}
}

// AddSink registers a delivery sink under a stable name used in logs and metrics.
func (s *notificationService) AddSink(name string, n ports.Notifier) {
	s.sinks = append(s.sinks, namedSink{name: name, notifier: n})
}

// Process deduplicates and fans out a single notification event. It never
// returns a sink delivery error; the only failure worth surfacing to the
// dispatcher is none, since the parent operation has already committed.
func (s *notificationService) Process(ctx context.Context, event ports.NotificationEvent) error {
	seen, err := s.dedup.Seen(ctx, event.RentalID, event.Type)
	if err != nil {
		s.log.Warn().Err(err).
			Str("rental_id", event.RentalID).
			Str("event", string(event.Type)).
			Msg("notification dedup check failed, delivering anyway")
	} else if seen {
		metrics.NotificationsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().
			Str("rental_id", event.RentalID).
			Str("event", string(event.Type)).
			Msg("duplicate notification skipped")
		return nil
	}
	metrics.NotificationsDedupTotal.WithLabelValues("miss").Inc()

	// Mark before delivering so a crash mid-fan-out cannot double-send.
	if err := s.dedup.Mark(ctx, event.RentalID, event.Type); err != nil {
		s.log.Warn().Err(err).
			Str("rental_id", event.RentalID).
			Str("event", string(event.Type)).
			Msg("failed to set notification dedup key")
	}

	for _, sink := range s.sinks {
		if err := sink.notifier.Notify(ctx, event); err != nil {
			metrics.NotificationsFailedTotal.WithLabelValues(string(event.Type), sink.name).Inc()
			s.log.Error().Err(err).
				Str("rental_id", event.RentalID).
				Str("event", string(event.Type)).
				Str("sink", sink.name).
				Msg("notification delivery failed")
			continue
		}
		metrics.NotificationsSentTotal.WithLabelValues(string(event.Type), sink.name).Inc()
	}
	return nil
}
