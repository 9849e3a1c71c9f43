package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wearloop/rental-system/internal/api/metrics"
	"github.com/wearloop/rental-system/internal/core/domain"
	"github.com/wearloop/rental-system/internal/core/ports"
)

const defaultLockTimeout = 5 * time.Second

type rentalService struct {
	availability ports.AvailabilityStore
	catalog      ports.Catalog
	rentals      ports.RentalRepository
	dispatcher   ports.NotificationDispatcher
	locks        *itemLocks
	lockTimeout  time.Duration
	log          zerolog.Logger

	// overridable in tests
	now   func() time.Time
	newID func() string
}

// NewRentalService returns the rental coordinator. All occupancy transitions
// and rental status changes flow through it; it serialises conflicting
// requests per item and fires notifications after successful transitions.
func NewRentalService(
	availability ports.AvailabilityStore,
	catalog ports.Catalog,
	rentals ports.RentalRepository,
	dispatcher ports.NotificationDispatcher,
	lockTimeout time.Duration,
	log zerolog.Logger,
) ports.RentalService {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &rentalService{
		availability: availability,
		catalog:      catalog,
		rentals:      rentals,
		dispatcher:   dispatcher,
		locks:        newItemLocks(),
		lockTimeout:  lockTimeout,
		log:          log,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Rent executes the full rent protocol: validate, lock, compare-and-set the
// item to rented, persist the rental, notify. The availability CAS is the
// correctness mechanism; the per-item lock only keeps losing requests from
// hammering the store and guarantees a total order per item.
func (s *rentalService) Rent(ctx context.Context, in ports.RentInput) (*domain.Rental, error) {
	if in.DurationDays < domain.MinRentalDays || in.DurationDays > domain.MaxRentalDays {
		return nil, fmt.Errorf("rent: %w (got %d)", domain.ErrInvalidDuration, in.DurationDays)
	}

	item, err := s.catalog.GetItem(ctx, in.ItemID)
	if err != nil {
		return nil, fmt.Errorf("rent: %w", err)
	}
	if item.OwnerID == in.RenterID {
		return nil, fmt.Errorf("rent: %w", domain.ErrSelfRental)
	}

	release, err := s.locks.acquire(ctx, item.ID, s.lockTimeout)
	if err != nil {
		return nil, fmt.Errorf("rent: %w", err)
	}
	defer release()

	rental := &domain.Rental{
		ID:            s.newID(),
		ItemID:        item.ID,
		ItemName:      item.Name,
		RenterID:      in.RenterID,
		OwnerID:       item.OwnerID,
		DurationDays:  in.DurationDays,
		DailyFeeCents: item.DailyFeeCents,
		TotalFeeCents: item.DailyFeeCents * int64(in.DurationDays),
		DepositCents:  item.DepositCents,
		Status:        domain.RentalStatusActive,
		StartedAt:     s.now().UTC(),
	}

	if err := s.availability.TryTransitionToRented(ctx, item.ID, rental.ID); err != nil {
		if errors.Is(err, domain.ErrItemAlreadyRented) {
			metrics.RentalConflictsTotal.Inc()
		}
		return nil, fmt.Errorf("rent: %w", err)
	}

	if err := s.rentals.Create(ctx, rental); err != nil {
		// The occupancy flip committed but the rental record did not; undo the
		// flip so the item is not stranded in a rented state with no rental.
		if rbErr := s.availability.TransitionToAvailable(ctx, item.ID, rental.ID); rbErr != nil {
			s.log.Error().Err(rbErr).
				Str("item_id", item.ID).
				Str("rental_id", rental.ID).
				Msg("failed to roll back occupancy after rental create failure")
		}
		return nil, fmt.Errorf("rent: create rental: %w", err)
	}

	metrics.RentalsCreatedTotal.WithLabelValues(item.Category).Inc()
	s.log.Info().
		Str("rental_id", rental.ID).
		Str("item_id", item.ID).
		Str("renter_id", in.RenterID).
		Int64("total_fee_cents", rental.TotalFeeCents).
		Msg("rental created")

	s.dispatcher.Enqueue(rentalEvent(ports.EventRentalCreated, rental))
	return rental, nil
}

// Return executes the return protocol in reverse: authorize, lock, clear the
// occupancy record, mark the rental returned, notify.
func (s *rentalService) Return(ctx context.Context, rentalID, actorID string) (*domain.Rental, error) {
	rental, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("return: %w", err)
	}
	if rental.Status == domain.RentalStatusReturned {
		return nil, fmt.Errorf("return: %w", domain.ErrAlreadyReturned)
	}
	if !rental.IsParty(actorID) {
		return nil, fmt.Errorf("return: %w", domain.ErrUnauthorized)
	}

	release, err := s.locks.acquire(ctx, rental.ItemID, s.lockTimeout)
	if err != nil {
		return nil, fmt.Errorf("return: %w", err)
	}
	defer release()

	// Re-check under the lock; a concurrent return may have won the race
	// between the status check above and the acquisition.
	rental, err = s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("return: %w", err)
	}
	if rental.Status == domain.RentalStatusReturned {
		return nil, fmt.Errorf("return: %w", domain.ErrAlreadyReturned)
	}

	if err := s.availability.TransitionToAvailable(ctx, rental.ItemID, rental.ID); err != nil {
		if errors.Is(err, domain.ErrOccupancyMismatch) {
			// Invariant breach: the item is not rented under this rental. Fail
			// closed and surface with full context for operators.
			s.log.Error().
				Str("rental_id", rental.ID).
				Str("item_id", rental.ItemID).
				Str("actor_id", actorID).
				Msg("occupancy mismatch on return: availability invariant violated")
		}
		return nil, fmt.Errorf("return: %w", err)
	}

	returnedAt := s.now().UTC()
	if err := s.rentals.MarkReturned(ctx, rental.ID, returnedAt); err != nil {
		return nil, fmt.Errorf("return: mark returned: %w", err)
	}
	rental.Status = domain.RentalStatusReturned
	rental.ReturnedAt = &returnedAt

	metrics.RentalsReturnedTotal.Inc()
	s.log.Info().
		Str("rental_id", rental.ID).
		Str("item_id", rental.ItemID).
		Str("actor_id", actorID).
		Msg("rental returned")

	s.dispatcher.Enqueue(rentalEvent(ports.EventRentalReturned, rental))
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID, actorID string) (*domain.Rental, error) {
	rental, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.IsParty(actorID) {
		return nil, domain.ErrUnauthorized
	}
	return rental, nil
}

func (s *rentalService) GetOccupancy(ctx context.Context, itemID string) (domain.OccupancyState, error) {
	return s.availability.GetOccupancy(ctx, itemID)
}

func (s *rentalService) IsDeletable(ctx context.Context, itemID string) (bool, error) {
	state, err := s.availability.GetOccupancy(ctx, itemID)
	if err != nil {
		return false, err
	}
	return !state.Rented(), nil
}

// DeleteItem enforces the deletion guard: an item with an active rental must
// never be deletable. The repository applies the same occupancy filter on the
// delete itself, so the guard holds even against a rent racing past this check.
func (s *rentalService) DeleteItem(ctx context.Context, itemID, actorID string) error {
	item, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if item.OwnerID != actorID {
		return fmt.Errorf("delete item: %w", domain.ErrUnauthorized)
	}

	release, err := s.locks.acquire(ctx, itemID, s.lockTimeout)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	defer release()

	state, err := s.availability.GetOccupancy(ctx, itemID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if state.Rented() {
		return fmt.Errorf("delete item: %w", domain.ErrItemCurrentlyRented)
	}

	if err := s.catalog.DeleteItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.Info().Str("item_id", itemID).Str("owner_id", actorID).Msg("listing deleted")
	return nil
}

func (s *rentalService) ListRentals(ctx context.Context, actorID string, filter ports.RentalListFilter) (*ports.RentalPage, error) {
	filter = normalizeRentalFilter(filter)
	items, total, err := s.rentals.ListByRenter(ctx, actorID, filter)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	return rentalPage(items, total, filter), nil
}

func (s *rentalService) ListLendings(ctx context.Context, actorID string, filter ports.RentalListFilter) (*ports.RentalPage, error) {
	filter = normalizeRentalFilter(filter)
	items, total, err := s.rentals.ListByOwner(ctx, actorID, filter)
	if err != nil {
		return nil, fmt.Errorf("list lendings: %w", err)
	}
	return rentalPage(items, total, filter), nil
}

func normalizeRentalFilter(f ports.RentalListFilter) ports.RentalListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return f
}

func rentalPage(items []*domain.Rental, total int64, f ports.RentalListFilter) *ports.RentalPage {
	totalPages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	return &ports.RentalPage{
		Items:      items,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: totalPages,
	}
}

func rentalEvent(typ ports.NotificationEventType, r *domain.Rental) ports.NotificationEvent {
	return ports.NotificationEvent{
		Type:          typ,
		RentalID:      r.ID,
		ItemID:        r.ItemID,
		ItemName:      r.ItemName,
		RenterID:      r.RenterID,
		OwnerID:       r.OwnerID,
		TotalFeeCents: r.TotalFeeCents,
		DepositCents:  r.DepositCents,
		StartedAt:     r.StartedAt,
		DueAt:         r.DueAt(),
		ReturnedAt:    r.ReturnedAt,
	}
}
