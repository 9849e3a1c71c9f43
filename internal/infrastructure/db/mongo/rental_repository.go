package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wearloop/rental-system/internal/core/domain"
	"github.com/wearloop/rental-system/internal/core/ports"
)

const collectionRentals = "rentals"

// RentalRepository implements ports.RentalRepository using MongoDB. Rentals
// are kept indefinitely as history; there is no delete path.
type RentalRepository struct {
	col *mongo.Collection
}

func NewRentalRepository(db *mongo.Database) *RentalRepository {
	return &RentalRepository{col: db.Collection(collectionRentals)}
}

// Create inserts a new rental document.
func (r *RentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, rental)
	return err
}

// FindByID retrieves a rental by id.
func (r *RentalRepository) FindByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rental domain.Rental
	err := r.col.FindOne(ctx, bson.M{"_id": rentalID}).Decode(&rental)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRentalNotFound
		}
		return nil, err
	}
	return &rental, nil
}

// MarkReturned flips active -> returned in one conditional write, so a lost
// race with another return surfaces as ErrAlreadyReturned rather than a
// silent double update.
func (r *RentalRepository) MarkReturned(ctx context.Context, rentalID string, returnedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": rentalID, "status": domain.RentalStatusActive}
	update := bson.M{"$set": bson.M{
		"status":      domain.RentalStatusReturned,
		"returned_at": returnedAt.UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": rentalID})
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrRentalNotFound
		}
		return domain.ErrAlreadyReturned
	}
	return nil
}

// ListByRenter returns a page of rentals where the user is the renter.
func (r *RentalRepository) ListByRenter(ctx context.Context, renterID string, f ports.RentalListFilter) ([]*domain.Rental, int64, error) {
	return r.list(ctx, bson.M{"renter_id": renterID}, f)
}

// ListByOwner returns a page of rentals of items the user owns.
func (r *RentalRepository) ListByOwner(ctx context.Context, ownerID string, f ports.RentalListFilter) ([]*domain.Rental, int64, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID}, f)
}

func (r *RentalRepository) list(ctx context.Context, filter bson.M, f ports.RentalListFilter) ([]*domain.Rental, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if f.Status != "" {
		filter["status"] = f.Status
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var rentals []*domain.Rental
	if err := cursor.All(ctx, &rentals); err != nil {
		return nil, 0, err
	}
	return rentals, total, nil
}

// EnsureIndexes creates necessary indexes on the rentals collection.
func (r *RentalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "renter_id", Value: 1}, {Key: "started_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "started_at", Value: -1}}},
		{Keys: bson.D{{Key: "item_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
