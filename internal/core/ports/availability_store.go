package ports

import (
	"context"

	"github.com/wearloop/rental-system/internal/core/domain"
)

// AvailabilityStore is the single source of truth for item occupancy. Both
// transition operations are compare-and-set writes: they observe the expected
// prior state and flip it in one atomic step, so correctness never depends on
// the caller's locking discipline alone.
type AvailabilityStore interface {
	// GetOccupancy returns the current occupancy of the item and, when rented,
	// the id of the active rental. Reads reflect the latest committed transition.
	GetOccupancy(ctx context.Context, itemID string) (domain.OccupancyState, error)

	// TryTransitionToRented flips the item from available to rented, recording
	// rentalID as the active rental. Under concurrent invocation for the same
	// item exactly one caller succeeds; the rest receive domain.ErrItemAlreadyRented.
	TryTransitionToRented(ctx context.Context, itemID, rentalID string) error

	// TransitionToAvailable clears the item back to available, but only if it is
	// currently rented under expectedRentalID. Any other state returns
	// domain.ErrOccupancyMismatch, which the caller must treat as fatal.
	TransitionToAvailable(ctx context.Context, itemID, expectedRentalID string) error
}
