package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type rentRequest struct {
	ItemID       string `json:"item_id"       validate:"required"`
	DurationDays int    `json:"duration_days" validate:"required,min=1,max=30"`
}

type rentalResponse struct {
	ID            string     `json:"id"`
	ItemID        string     `json:"item_id"`
	ItemName      string     `json:"item_name"`
	RenterID      string     `json:"renter_id"`
	OwnerID       string     `json:"owner_id"`
	DurationDays  int        `json:"duration_days"`
	DailyFeeCents int64      `json:"daily_fee_cents"`
	TotalFeeCents int64      `json:"total_fee_cents"`
	DepositCents  int64      `json:"deposit_cents"`
	Status        string     `json:"status"`
	StartedAt     time.Time  `json:"started_at"`
	DueAt         time.Time  `json:"due_at"`
	ReturnedAt    *time.Time `json:"returned_at,omitempty"`
}

type rentalListResponse struct {
	Items      []rentalResponse `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

type occupancyResponse struct {
	ItemID    string `json:"item_id"`
	Occupancy string `json:"occupancy"`
	RentalID  string `json:"rental_id,omitempty"`
}

type deletableResponse struct {
	ItemID    string `json:"item_id"`
	Deletable bool   `json:"deletable"`
}
