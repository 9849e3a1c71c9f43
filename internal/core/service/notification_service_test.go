package service

import (
	"context"
	"errors"
	"testing"

	"github.com/wearloop/rental-system/internal/core/ports"
)

type stubDedup struct {
	seen    map[string]bool
	seenErr error
	markErr error
	marked  []string
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func dedupKey(rentalID string, event ports.NotificationEventType) string {
	return rentalID + ":" + string(event)
}

func (d *stubDedup) Seen(_ context.Context, rentalID string, event ports.NotificationEventType) (bool, error) {
	if d.seenErr != nil {
		return false, d.seenErr
	}
	return d.seen[dedupKey(rentalID, event)], nil
}

func (d *stubDedup) Mark(_ context.Context, rentalID string, event ports.NotificationEventType) error {
	if d.markErr != nil {
		return d.markErr
	}
	key := dedupKey(rentalID, event)
	d.seen[key] = true
	d.marked = append(d.marked, key)
	return nil
}

type recordingNotifier struct {
	delivered []ports.NotificationEvent
	err       error
}

func (n *recordingNotifier) Notify(_ context.Context, event ports.NotificationEvent) error {
	if n.err != nil {
		return n.err
	}
	n.delivered = append(n.delivered, event)
	return nil
}

func createdEvent(rentalID string) ports.NotificationEvent {
	return ports.NotificationEvent{
		Type:     ports.EventRentalCreated,
		RentalID: rentalID,
		ItemID:   "item_1",
		RenterID: "renter_1",
		OwnerID:  "owner_1",
	}
}

func TestProcess_DeliversToAllSinks(t *testing.T) {
	dedup := newStubDedup()
	svc := NewNotificationService(dedup, discardLogger)

	first := &recordingNotifier{}
	second := &recordingNotifier{}
	svc.AddSink("log", first)
	svc.AddSink("email", second)

	if err := svc.Process(context.Background(), createdEvent("rental_1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.delivered) != 1 || len(second.delivered) != 1 {
		t.Errorf("expected delivery to both sinks, got %d/%d", len(first.delivered), len(second.delivered))
	}
}

func TestProcess_DuplicateSkipped(t *testing.T) {
	dedup := newStubDedup()
	svc := NewNotificationService(dedup, discardLogger)

	sink := &recordingNotifier{}
	svc.AddSink("log", sink)

	event := createdEvent("rental_1")
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("first process: %v", err)
	}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("second process: %v", err)
	}

	if len(sink.delivered) != 1 {
		t.Errorf("duplicate event must be delivered once, got %d", len(sink.delivered))
	}
}

func TestProcess_SameRentalDifferentEventsBothDeliver(t *testing.T) {
	dedup := newStubDedup()
	svc := NewNotificationService(dedup, discardLogger)

	sink := &recordingNotifier{}
	svc.AddSink("log", sink)

	created := createdEvent("rental_1")
	returned := created
	returned.Type = ports.EventRentalReturned

	_ = svc.Process(context.Background(), created)
	_ = svc.Process(context.Background(), returned)

	if len(sink.delivered) != 2 {
		t.Errorf("created and returned are distinct events, expected 2 deliveries, got %d", len(sink.delivered))
	}
}

func TestProcess_MarksBeforeDelivering(t *testing.T) {
	dedup := newStubDedup()
	svc := NewNotificationService(dedup, discardLogger)

	failing := &recordingNotifier{err: errors.New("smtp down")}
	svc.AddSink("email", failing)

	if err := svc.Process(context.Background(), createdEvent("rental_1")); err != nil {
		t.Fatalf("sink failure must not surface: %v", err)
	}

	// The event is marked even though delivery failed: at-most-once-attempt.
	if len(dedup.marked) != 1 {
		t.Errorf("event must be marked before fan-out, got %d marks", len(dedup.marked))
	}
}

func TestProcess_SinkFailureDoesNotBlockOthers(t *testing.T) {
	dedup := newStubDedup()
	svc := NewNotificationService(dedup, discardLogger)

	failing := &recordingNotifier{err: errors.New("smtp down")}
	healthy := &recordingNotifier{}
	svc.AddSink("email", failing)
	svc.AddSink("log", healthy)

	if err := svc.Process(context.Background(), createdEvent("rental_1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(healthy.delivered) != 1 {
		t.Errorf("healthy sink must still receive the event, got %d", len(healthy.delivered))
	}
}

func TestProcess_DedupErrorDeliversAnyway(t *testing.T) {
	dedup := newStubDedup()
	dedup.seenErr = errors.New("redis down")
	svc := NewNotificationService(dedup, discardLogger)

	sink := &recordingNotifier{}
	svc.AddSink("log", sink)

	if err := svc.Process(context.Background(), createdEvent("rental_1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.delivered) != 1 {
		t.Errorf("a broken dedup store must not block delivery, got %d", len(sink.delivered))
	}
}

func TestProcess_NoSinksIsANoOp(t *testing.T) {
	svc := NewNotificationService(newStubDedup(), discardLogger)

	if err := svc.Process(context.Background(), createdEvent("rental_1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
