package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wearloop/rental-system/internal/core/ports"
)

const dedupTTL = 24 * time.Hour

// NotificationDedup provides at-most-once notification delivery backed by Redis.
// Key format: notify:<rental_id>:<event>
type NotificationDedup struct {
	client *redis.Client
}

// NewNotificationDedup creates a NotificationDedup wrapping the given Redis client.
func NewNotificationDedup(client *redis.Client) *NotificationDedup {
	return &NotificationDedup{client: client}
}

// Seen reports whether this rental lifecycle event has already been delivered.
func (d *NotificationDedup) Seen(ctx context.Context, rentalID string, event ports.NotificationEventType) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(rentalID, event)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this event has been delivered (expires after dedupTTL).
func (d *NotificationDedup) Mark(ctx context.Context, rentalID string, event ports.NotificationEventType) error {
	return d.client.Set(ctx, d.key(rentalID, event), "1", dedupTTL).Err()
}

func (d *NotificationDedup) key(rentalID string, event ports.NotificationEventType) string {
	return fmt.Sprintf("notify:%s:%s", rentalID, event)
}
