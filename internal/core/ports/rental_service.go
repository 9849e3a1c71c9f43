package ports

import (
	"context"

	"github.com/wearloop/rental-system/internal/core/domain"
)

// RentInput carries everything needed to start a rental. The renter identity
// is always passed explicitly; the engine holds no ambient current-user state.
type RentInput struct {
	ItemID       string
	RenterID     string
	DurationDays int
}

// RentalPage is a page of rental history.
type RentalPage struct {
	Items      []*domain.Rental
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// RentalService orchestrates the full rent/return protocol with per-item
// mutual exclusion and atomic occupancy transitions.
type RentalService interface {
	// Rent atomically transitions the item to rented and records the rental.
	// Exactly one of N concurrent calls for the same item succeeds; the rest
	// fail with domain.ErrItemAlreadyRented.
	Rent(ctx context.Context, in RentInput) (*domain.Rental, error)

	// Return transitions the item back to available and marks the rental
	// returned. Only the renter or the item owner may return.
	Return(ctx context.Context, rentalID, actorID string) (*domain.Rental, error)

	// GetRental returns a rental visible to one of its parties.
	GetRental(ctx context.Context, rentalID, actorID string) (*domain.Rental, error)

	GetOccupancy(ctx context.Context, itemID string) (domain.OccupancyState, error)

	// IsDeletable reports whether the item may be deleted (not currently rented).
	IsDeletable(ctx context.Context, itemID string) (bool, error)

	// DeleteItem removes a listing after enforcing the deletion guard: a rented
	// item is never deletable, and only the owner may delete.
	DeleteItem(ctx context.Context, itemID, actorID string) error

	// ListRentals pages through rentals where the actor is the renter.
	ListRentals(ctx context.Context, actorID string, filter RentalListFilter) (*RentalPage, error)

	// ListLendings pages through rentals of items the actor owns.
	ListLendings(ctx context.Context, actorID string, filter RentalListFilter) (*RentalPage, error)
}
