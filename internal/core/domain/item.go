package domain

import (
	"errors"
	"time"
)

// Occupancy represents the binary rental state of an item.
type Occupancy string

const (
	OccupancyAvailable Occupancy = "available"
	OccupancyRented    Occupancy = "rented"
)

var ErrItemNotFound = errors.New("item not found")
var ErrItemAlreadyRented = errors.New("item already rented")
var ErrItemCurrentlyRented = errors.New("item is currently rented and cannot be deleted")
var ErrSelfRental = errors.New("owner cannot rent their own item")
var ErrInvalidListing = errors.New("invalid listing")

// ErrOccupancyMismatch signals that an item's occupancy record does not carry
// the rental id the caller expected. It indicates an invariant breach, never a
// normal contention outcome, and must not be retried.
var ErrOccupancyMismatch = errors.New("occupancy record does not match expected rental")

// Item is a listed good available for rent. Display metadata (name, brand,
// size, category) is opaque to the rental engine; only the fee, deposit and
// occupancy fields drive transitions.
type Item struct {
	ID             string    `json:"id" bson:"_id"`
	OwnerID        string    `json:"owner_id" bson:"owner_id"`
	Name           string    `json:"name" bson:"name"`
	Brand          string    `json:"brand,omitempty" bson:"brand,omitempty"`
	Size           string    `json:"size,omitempty" bson:"size,omitempty"`
	Category       string    `json:"category,omitempty" bson:"category,omitempty"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty"`
	PhotoURL       string    `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
	DailyFeeCents  int64     `json:"daily_fee_cents" bson:"daily_fee_cents"`
	DepositCents   int64     `json:"deposit_cents" bson:"deposit_cents"`
	Occupancy      Occupancy `json:"occupancy" bson:"occupancy"`
	ActiveRentalID string    `json:"active_rental_id,omitempty" bson:"active_rental_id,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// OccupancyState is the answer to an occupancy query: the current state and,
// when rented, the id of the active rental.
type OccupancyState struct {
	Occupancy Occupancy `json:"occupancy"`
	RentalID  string    `json:"rental_id,omitempty"`
}

// Rented reports whether the item is currently occupied by an active rental.
func (s OccupancyState) Rented() bool {
	return s.Occupancy == OccupancyRented
}
