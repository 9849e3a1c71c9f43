package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wearloop/rental-system/internal/core/domain"
	"github.com/wearloop/rental-system/internal/core/ports"
)

type listingService struct {
	repo ports.ListingRepository
	log  zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewListingService returns the listing lifecycle service: creation, metadata
// edits and catalog browsing. Occupancy is never touched here; deletion goes
// through the rental coordinator so the deletion guard applies.
func NewListingService(repo ports.ListingRepository, log zerolog.Logger) ports.ListingService {
	return &listingService{
		repo:  repo,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func (s *listingService) CreateListing(ctx context.Context, in ports.CreateListingInput) (*domain.Item, error) {
	if err := validateListing(in.Name, in.DailyFeeCents, in.DepositCents); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	item := &domain.Item{
		ID:            s.newID(),
		OwnerID:       in.OwnerID,
		Name:          strings.TrimSpace(in.Name),
		Brand:         in.Brand,
		Size:          in.Size,
		Category:      in.Category,
		Description:   in.Description,
		PhotoURL:      in.PhotoURL,
		DailyFeeCents: in.DailyFeeCents,
		DepositCents:  in.DepositCents,
		Occupancy:     domain.OccupancyAvailable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.log.Info().
		Str("item_id", item.ID).
		Str("owner_id", item.OwnerID).
		Int64("daily_fee_cents", item.DailyFeeCents).
		Msg("listing created")

	return item, nil
}

func (s *listingService) UpdateListing(ctx context.Context, itemID, actorID string, in ports.UpdateListingInput) (*domain.Item, error) {
	if err := validateListing(in.Name, in.DailyFeeCents, in.DepositCents); err != nil {
		return nil, err
	}

	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	if item.OwnerID != actorID {
		return nil, fmt.Errorf("update listing: %w", domain.ErrUnauthorized)
	}

	item.Name = strings.TrimSpace(in.Name)
	item.Brand = in.Brand
	item.Size = in.Size
	item.Category = in.Category
	item.Description = in.Description
	item.PhotoURL = in.PhotoURL
	item.DailyFeeCents = in.DailyFeeCents
	item.DepositCents = in.DepositCents
	item.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateMetadata(ctx, item); err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return item, nil
}

func (s *listingService) GetListing(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.repo.GetItem(ctx, itemID)
}

func (s *listingService) BrowseListings(ctx context.Context, filter ports.BrowseListingsFilter) (*ports.ListingPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("browse listings: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListingPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func validateListing(name string, dailyFeeCents, depositCents int64) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidListing)
	}
	if dailyFeeCents < 0 {
		return fmt.Errorf("%w: daily fee must not be negative", domain.ErrInvalidListing)
	}
	if depositCents < 0 {
		return fmt.Errorf("%w: deposit must not be negative", domain.ErrInvalidListing)
	}
	return nil
}
