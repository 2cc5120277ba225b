package listing

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound signals the requested listing does not exist.
var ErrNotFound = errors.New("listing: not found")

// Repository handles data access for house listings.
type Repository interface {
	Search(ctx context.Context, filter SearchFilter) ([]Listing, error)
	GetByID(ctx context.Context, id string) (Listing, error)
	Create(ctx context.Context, l Listing) (Listing, error)
	Replace(ctx context.Context, id string, l Listing) (Listing, error)
	Delete(ctx context.Context, id string) error
}

// MongoRepository implements Repository backed by the houses collection.
type MongoRepository struct {
	houses *mongo.Collection
}

// NewRepository creates a Mongo-backed listing repository.
func NewRepository(houses *mongo.Collection) *MongoRepository {
	return &MongoRepository{houses: houses}
}

// searchFilterDoc translates a SearchFilter into a Mongo query document.
// Substring matches are case-insensitive; the rent range is inclusive.
func searchFilterDoc(filter SearchFilter) bson.D {
	doc := bson.D{}

	if filter.NameSubstring != "" {
		doc = append(doc, bson.E{Key: "name", Value: bson.D{
			{Key: "$regex", Value: primitive.Regex{Pattern: regexp.QuoteMeta(filter.NameSubstring), Options: "i"}},
		}})
	}
	if filter.RoomSize != "" {
		doc = append(doc, bson.E{Key: "room_size", Value: bson.D{
			{Key: "$regex", Value: primitive.Regex{Pattern: regexp.QuoteMeta(filter.RoomSize), Options: "i"}},
		}})
	}

	rent := bson.D{}
	if filter.PriceMin != nil {
		rent = append(rent, bson.E{Key: "$gte", Value: *filter.PriceMin})
	}
	if filter.PriceMax != nil {
		rent = append(rent, bson.E{Key: "$lte", Value: *filter.PriceMax})
	}
	if len(rent) > 0 {
		doc = append(doc, bson.E{Key: "rent_per_month", Value: rent})
	}

	return doc
}

// Search returns all listings matching the filter, newest first.
func (r *MongoRepository) Search(ctx context.Context, filter SearchFilter) ([]Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.houses.Find(ctx, searchFilterDoc(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("listing: search: %w", err)
	}
	defer cur.Close(ctx)

	listings := make([]Listing, 0, 8)
	if err := cur.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("listing: decode search results: %w", err)
	}
	return listings, nil
}

// GetByID fetches a listing by its store-assigned identifier.
func (r *MongoRepository) GetByID(ctx context.Context, id string) (Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Listing{}, ErrNotFound
	}

	var l Listing
	if err := r.houses.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Listing{}, ErrNotFound
		}
		return Listing{}, fmt.Errorf("listing: get by id: %w", err)
	}
	return l, nil
}

// Create inserts a new listing and returns it with the assigned id.
func (r *MongoRepository) Create(ctx context.Context, l Listing) (Listing, error) {
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	res, err := r.houses.InsertOne(ctx, l)
	if err != nil {
		return Listing{}, fmt.Errorf("listing: create: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid
	}
	return l, nil
}

// Replace overwrites the listing document with the provided one, creating it
// when missing (upsert semantics preserved from the upstream API).
func (r *MongoRepository) Replace(ctx context.Context, id string, l Listing) (Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Listing{}, ErrNotFound
	}

	l.ID = oid
	l.UpdatedAt = time.Now().UTC()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = l.UpdatedAt
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.houses.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, l, opts); err != nil {
		return Listing{}, fmt.Errorf("listing: replace: %w", err)
	}
	return l, nil
}

// Delete removes a listing by id.
func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.houses.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("listing: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
