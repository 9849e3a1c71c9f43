package ports

import (
	"context"
	"time"

	"github.com/wearloop/rental-system/internal/core/domain"
)

// RentalListFilter carries pagination and status filtering for rental history.
type RentalListFilter struct {
	Status string // optional: "active" or "returned"
	Page   int    // 1-based
	Limit  int    // max rows per page (capped at 100 by service)
}

// RentalRepository persists rental transactions. Rentals are append-mostly:
// created once, mutated exactly once by MarkReturned, never deleted.
type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	FindByID(ctx context.Context, rentalID string) (*domain.Rental, error)
	// MarkReturned flips the rental from active to returned, setting returnedAt.
	// Returns domain.ErrAlreadyReturned if the rental is already terminal.
	MarkReturned(ctx context.Context, rentalID string, returnedAt time.Time) error
	// ListByRenter returns rentals where the given user is the renter.
	ListByRenter(ctx context.Context, renterID string, filter RentalListFilter) ([]*domain.Rental, int64, error)
	// ListByOwner returns rentals where the given user is the item owner.
	ListByOwner(ctx context.Context, ownerID string, filter RentalListFilter) ([]*domain.Rental, int64, error)
}
