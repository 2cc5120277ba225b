package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrQuotaExceeded signals the user already holds Quota bookings.
	ErrQuotaExceeded = errors.New("booking: quota exceeded")
	// ErrDuplicateBooking signals the user already booked this house.
	ErrDuplicateBooking = errors.New("booking: house already booked")
)

// Repository handles data access for bookings.
type Repository interface {
	Admit(ctx context.Context, email, houseID string, at time.Time) error
	ListByEmail(ctx context.Context, email string) ([]Booking, error)
}

// MongoRepository implements Repository backed by the bookings collection.
// It relies on the unique index on bookings.email (see db.EnsureIndexes).
type MongoRepository struct {
	bookings *mongo.Collection
}

// NewRepository creates a Mongo-backed booking repository.
func NewRepository(bookings *mongo.Collection) *MongoRepository {
	return &MongoRepository{bookings: bookings}
}

// admitAttempts bounds retries of the conditional update when two first-time
// bookings for the same user race on creating the user document.
const admitAttempts = 3

// Admit appends a booking for email atomically. The filter only matches the
// user document while it holds fewer than Quota entries and none for houseID,
// so the count check and the insert are a single store operation; concurrent
// submissions cannot overshoot the quota. When the filter does not match, the
// upsert collides with the unique email index and the rejection reason is
// classified from the current document, quota first.
func (r *MongoRepository) Admit(ctx context.Context, email, houseID string, at time.Time) error {
	filter := bson.D{
		{Key: "email", Value: email},
		{Key: "entries.house_id", Value: bson.D{{Key: "$ne", Value: houseID}}},
		{Key: fmt.Sprintf("entries.%d", Quota-1), Value: bson.D{{Key: "$exists", Value: false}}},
	}
	update := bson.D{
		{Key: "$push", Value: bson.D{
			{Key: "entries", Value: entry{HouseID: houseID, CreatedAt: at.UTC()}},
		}},
	}
	opts := options.Update().SetUpsert(true)

	for attempt := 0; attempt < admitAttempts; attempt++ {
		res, err := r.bookings.UpdateOne(ctx, filter, update, opts)
		if err == nil {
			if res.MatchedCount == 1 || res.UpsertedCount == 1 {
				return nil
			}
			return fmt.Errorf("booking: admit: unexpected update result %+v", res)
		}
		if !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("booking: admit: %w", err)
		}

		// The user document exists but the filter rejected it. Read it to
		// tell quota from duplicate. Entries are append-only, so a full or
		// duplicated document stays that way; an inconclusive read means we
		// lost the upsert race for a brand-new document and should retry.
		var doc userBookings
		findErr := r.bookings.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
		if findErr != nil {
			if errors.Is(findErr, mongo.ErrNoDocuments) {
				continue
			}
			return fmt.Errorf("booking: classify rejection: %w", findErr)
		}

		if len(doc.Entries) >= Quota {
			return ErrQuotaExceeded
		}
		for _, e := range doc.Entries {
			if e.HouseID == houseID {
				return ErrDuplicateBooking
			}
		}
	}

	return fmt.Errorf("booking: admit: gave up after %d attempts", admitAttempts)
}

// ListByEmail projects the user's bookings to (house_id, email) pairs.
func (r *MongoRepository) ListByEmail(ctx context.Context, email string) ([]Booking, error) {
	var doc userBookings
	err := r.bookings.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []Booking{}, nil
		}
		return nil, fmt.Errorf("booking: list by email: %w", err)
	}

	out := make([]Booking, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		out = append(out, Booking{HouseID: e.HouseID, Email: doc.Email})
	}
	return out, nil
}
