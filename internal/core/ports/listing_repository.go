package ports

import (
	"context"

	"github.com/wearloop/rental-system/internal/core/domain"
)

// Catalog is the read/delete surface of the listings store that the rental
// coordinator consumes. DeleteItem must refuse to remove a rented item even if
// called directly, as a backstop behind the coordinator's own guard.
type Catalog interface {
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	DeleteItem(ctx context.Context, itemID string) error
}

// BrowseListingsFilter carries all query parameters for browsing the catalog.
type BrowseListingsFilter struct {
	OwnerID  string // empty = no filter; non-empty = only this owner's listings
	Category string // optional: exact match
	Size     string // optional: exact match
	Search   string // optional: partial match on name or brand
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// ListingRepository defines full persistence for listings. The same backing
// collection also serves as the AvailabilityStore; occupancy fields are written
// exclusively through that interface.
type ListingRepository interface {
	Catalog
	Create(ctx context.Context, item *domain.Item) error
	// UpdateMetadata rewrites the owner-editable attributes of a listing.
	// Occupancy and the active rental reference are never touched.
	UpdateMetadata(ctx context.Context, item *domain.Item) error
	// List returns a page of listings matching filter and the total count.
	List(ctx context.Context, filter BrowseListingsFilter) ([]*domain.Item, int64, error)
}
