package handler

import (
	"github.com/wearloop/rental-system/internal/core/domain"
	"github.com/wearloop/rental-system/internal/core/ports"
)

func toRentalResponse(r *domain.Rental) rentalResponse {
	return rentalResponse{
		ID:            r.ID,
		ItemID:        r.ItemID,
		ItemName:      r.ItemName,
		RenterID:      r.RenterID,
		OwnerID:       r.OwnerID,
		DurationDays:  r.DurationDays,
		DailyFeeCents: r.DailyFeeCents,
		TotalFeeCents: r.TotalFeeCents,
		DepositCents:  r.DepositCents,
		Status:        string(r.Status),
		StartedAt:     r.StartedAt,
		DueAt:         r.DueAt(),
		ReturnedAt:    r.ReturnedAt,
	}
}

func toRentalListResponse(page *ports.RentalPage) rentalListResponse {
	items := make([]rentalResponse, 0, len(page.Items))
	for _, r := range page.Items {
		items = append(items, toRentalResponse(r))
	}
	return rentalListResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}
