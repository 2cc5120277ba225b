package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique indexes the admission logic relies on.
// Safe to call on every startup; creation is idempotent.
//
// users.email must be unique so duplicate registration is rejected by the
// store rather than by a racy read-then-write. bookings.email must be unique
// because each user owns exactly one bookings document and the conditional
// admission update depends on colliding with it.
func EnsureIndexes(ctx context.Context, colls Collections) error {
	unique := options.Index().SetUnique(true)

	if _, err := colls.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("db: ensure users email index: %w", err)
	}

	if _, err := colls.Bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("db: ensure bookings email index: %w", err)
	}

	return nil
}
