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

const collectionListings = "listings"

// ListingRepository implements ports.ListingRepository and, through the same
// collection, ports.AvailabilityStore. Occupancy transitions are single-document
// conditional updates: the filter carries the expected prior state, so the
// write itself is the compare-and-set and no reader can observe a half-applied
// transition.
type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(collectionListings)}
}

// Create inserts a new listing document.
func (r *ListingRepository) Create(ctx context.Context, item *domain.Item) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, item)
	return err
}

// GetItem retrieves a listing by id.
func (r *ListingRepository) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item domain.Item
	err := r.col.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UpdateMetadata rewrites the owner-editable attributes. The occupancy fields
// are deliberately absent from the update document.
func (r *ListingRepository) UpdateMetadata(ctx context.Context, item *domain.Item) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":            item.Name,
		"brand":           item.Brand,
		"size":            item.Size,
		"category":        item.Category,
		"description":     item.Description,
		"photo_url":       item.PhotoURL,
		"daily_fee_cents": item.DailyFeeCents,
		"deposit_cents":   item.DepositCents,
		"updated_at":      item.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": item.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// DeleteItem removes a listing, but only when it is available. The occupancy
// filter is the backstop behind the coordinator's deletion guard.
func (r *ListingRepository) DeleteItem(ctx context.Context, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{
		"_id":       itemID,
		"occupancy": domain.OccupancyAvailable,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return r.classifyMiss(ctx, itemID, domain.ErrItemCurrentlyRented)
	}
	return nil
}

// List returns a page of listings matching filter and the total count.
func (r *ListingRepository) List(ctx context.Context, f ports.BrowseListingsFilter) ([]*domain.Item, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.OwnerID != "" {
		filter["owner_id"] = f.OwnerID
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Size != "" {
		filter["size"] = f.Size
	}
	if f.Search != "" {
		regex := bson.M{"$regex": f.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"brand": regex},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []*domain.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetOccupancy reads the current occupancy state of a listing.
func (r *ListingRepository) GetOccupancy(ctx context.Context, itemID string) (domain.OccupancyState, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Occupancy      domain.Occupancy `bson:"occupancy"`
		ActiveRentalID string           `bson:"active_rental_id"`
	}
	opts := options.FindOne().SetProjection(bson.M{"occupancy": 1, "active_rental_id": 1})
	err := r.col.FindOne(ctx, bson.M{"_id": itemID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.OccupancyState{}, domain.ErrItemNotFound
		}
		return domain.OccupancyState{}, err
	}
	return domain.OccupancyState{Occupancy: doc.Occupancy, RentalID: doc.ActiveRentalID}, nil
}

// TryTransitionToRented flips available -> rented in one conditional write.
// With the occupancy in the filter, concurrent callers race on a single
// document update and Mongo guarantees exactly one of them matches.
func (r *ListingRepository) TryTransitionToRented(ctx context.Context, itemID, rentalID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": itemID, "occupancy": domain.OccupancyAvailable}
	update := bson.M{"$set": bson.M{
		"occupancy":        domain.OccupancyRented,
		"active_rental_id": rentalID,
		"updated_at":       time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.classifyMiss(ctx, itemID, domain.ErrItemAlreadyRented)
	}
	return nil
}

// TransitionToAvailable clears rented -> available, conditional on the item
// being rented under exactly expectedRentalID.
func (r *ListingRepository) TransitionToAvailable(ctx context.Context, itemID, expectedRentalID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":              itemID,
		"occupancy":        domain.OccupancyRented,
		"active_rental_id": expectedRentalID,
	}
	update := bson.M{
		"$set":   bson.M{"occupancy": domain.OccupancyAvailable, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"active_rental_id": ""},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return r.classifyMiss(ctx, itemID, domain.ErrOccupancyMismatch)
	}
	return nil
}

// classifyMiss distinguishes "document missing" from "state filter rejected
// the write" after a conditional operation matched nothing.
func (r *ListingRepository) classifyMiss(ctx context.Context, itemID string, stateErr error) error {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": itemID})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return stateErr
}

// EnsureIndexes creates necessary indexes on the listings collection.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "occupancy", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
