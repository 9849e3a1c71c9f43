package domain

import (
	"errors"
	"time"
)

// RentalStatus is the lifecycle state of a rental. The only transition is
// active -> returned; a returned rental is terminal and kept as history.
type RentalStatus string

const (
	RentalStatusActive   RentalStatus = "active"
	RentalStatusReturned RentalStatus = "returned"
)

// Duration bounds for a single rental, in days (inclusive).
const (
	MinRentalDays = 1
	MaxRentalDays = 30
)

var ErrRentalNotFound = errors.New("rental not found")
var ErrAlreadyReturned = errors.New("rental already returned")
var ErrInvalidDuration = errors.New("rental duration must be between 1 and 30 days")
var ErrUnauthorized = errors.New("actor is not a party to this rental")

// ErrBusy is returned when the per-item exclusion token could not be acquired
// within the configured timeout. Callers may retry after re-checking availability.
var ErrBusy = errors.New("item is busy, try again")

// Rental records one rental transaction of an Item by a renter.
//
// Fee and deposit are snapshots captured from the item at creation time; later
// edits to the listing never change what an existing rental owes.
type Rental struct {
	ID            string       `json:"id" bson:"_id"`
	ItemID        string       `json:"item_id" bson:"item_id"`
	ItemName      string       `json:"item_name" bson:"item_name"`
	RenterID      string       `json:"renter_id" bson:"renter_id"`
	OwnerID       string       `json:"owner_id" bson:"owner_id"`
	DurationDays  int          `json:"duration_days" bson:"duration_days"`
	DailyFeeCents int64        `json:"daily_fee_cents" bson:"daily_fee_cents"`
	TotalFeeCents int64        `json:"total_fee_cents" bson:"total_fee_cents"`
	DepositCents  int64        `json:"deposit_cents" bson:"deposit_cents"`
	Status        RentalStatus `json:"status" bson:"status"`
	StartedAt     time.Time    `json:"started_at" bson:"started_at"`
	ReturnedAt    *time.Time   `json:"returned_at,omitempty" bson:"returned_at,omitempty"`
}

// DueAt returns the date the item is expected back.
func (r *Rental) DueAt() time.Time {
	return r.StartedAt.AddDate(0, 0, r.DurationDays)
}

// IsParty reports whether the given actor is the renter or the owner.
func (r *Rental) IsParty(actorID string) bool {
	return actorID == r.RenterID || actorID == r.OwnerID
}
