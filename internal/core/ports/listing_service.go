package ports

import (
	"context"

	"github.com/wearloop/rental-system/internal/core/domain"
)

// CreateListingInput carries all data needed to list a new item for rent.
type CreateListingInput struct {
	OwnerID       string
	Name          string
	Brand         string
	Size          string
	Category      string
	Description   string
	PhotoURL      string
	DailyFeeCents int64
	DepositCents  int64
}

// UpdateListingInput carries the owner-editable attributes of a listing.
// Fee and deposit edits only affect future rentals; existing rentals keep
// their creation-time snapshot.
type UpdateListingInput struct {
	Name          string
	Brand         string
	Size          string
	Category      string
	Description   string
	PhotoURL      string
	DailyFeeCents int64
	DepositCents  int64
}

// ListingPage is a page of browse results.
type ListingPage struct {
	Items      []*domain.Item
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListingService covers the listing lifecycle outside of occupancy transitions:
// creation, metadata edits, and catalog browsing. Deletion goes through the
// RentalService so the deletion guard is enforced.
type ListingService interface {
	CreateListing(ctx context.Context, in CreateListingInput) (*domain.Item, error)
	UpdateListing(ctx context.Context, itemID, actorID string, in UpdateListingInput) (*domain.Item, error)
	GetListing(ctx context.Context, itemID string) (*domain.Item, error)
	BrowseListings(ctx context.Context, filter BrowseListingsFilter) (*ListingPage, error)
}
