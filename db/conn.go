package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect constructs a Mongo client using the provided connection string and
// verifies the deployment is reachable before returning.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, fmt.Errorf("db: empty connection string")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("db: ping: %w", err)
	}

	return client, nil
}

// Collections bundles the handles used by the repositories. A single set is
// created at startup and injected; nothing holds a global client.
type Collections struct {
	Users    *mongo.Collection
	Houses   *mongo.Collection
	Bookings *mongo.Collection
}

// NewCollections resolves the application collections inside dbName.
func NewCollections(client *mongo.Client, dbName string) Collections {
	database := client.Database(dbName)
	return Collections{
		Users:    database.Collection("users"),
		Houses:   database.Collection("houses"),
		Bookings: database.Collection("bookings"),
	}
}
