package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/wearloop/rental-system/internal/core/ports"
)

// LogNotifier writes notifications to the structured log. It is the default
// sink in environments without an email provider configured, and doubles as a
// delivery audit trail alongside real sinks.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, event ports.NotificationEvent) error {
	n.log.Info().
		Str("event", string(event.Type)).
		Str("rental_id", event.RentalID).
		Str("item_id", event.ItemID).
		Str("item_name", event.ItemName).
		Str("renter_id", event.RenterID).
		Str("owner_id", event.OwnerID).
		Int64("total_fee_cents", event.TotalFeeCents).
		Int64("deposit_cents", event.DepositCents).
		Time("due_at", event.DueAt).
		Msg("rental notification")
	return nil
}
