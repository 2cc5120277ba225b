package oracles

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"househunt/booking"
	"househunt/db"
)

// Oracle is an invariant check. The pipeline runs against the named
// collection and must return zero documents; any document is a violation.
type Oracle struct {
	Name       string
	Collection string
	Pipeline   mongo.Pipeline
}

func All() []Oracle {
	return []Oracle{
		{
			Name:       "O1_quota_ceiling",
			Collection: "bookings",
			// An entry at index Quota means the user holds more than Quota bookings.
			Pipeline: mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: fmt.Sprintf("entries.%d", booking.Quota), Value: bson.D{{Key: "$exists", Value: true}}},
				}}},
			},
		},
		{
			Name:       "O2_no_duplicate_house",
			Collection: "bookings",
			Pipeline: mongo.Pipeline{
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "email", Value: 1},
					{Key: "total", Value: bson.D{{Key: "$size", Value: bson.D{
						{Key: "$ifNull", Value: bson.A{"$entries", bson.A{}}},
					}}}},
					{Key: "distinct", Value: bson.D{{Key: "$size", Value: bson.D{
						{Key: "$setUnion", Value: bson.A{bson.D{
							{Key: "$ifNull", Value: bson.A{"$entries.house_id", bson.A{}}},
						}, bson.A{}}},
					}}}},
				}}},
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{{Key: "$ne", Value: bson.A{"$total", "$distinct"}}}},
				}}},
			},
		},
		{
			Name:       "O3_one_document_per_user",
			Collection: "bookings",
			Pipeline: mongo.Pipeline{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: "$email"},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				}}},
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "count", Value: bson.D{{Key: "$gt", Value: 1}}},
				}}},
			},
		},
		{
			Name:       "O4_unique_user_email",
			Collection: "users",
			Pipeline: mongo.Pipeline{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: "$email"},
					{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				}}},
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "count", Value: bson.D{{Key: "$gt", Value: 1}}},
				}}},
			},
		},
		{
			Name:       "O5_entries_timestamped",
			Collection: "bookings",
			Pipeline: mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "entries", Value: bson.D{{Key: "$elemMatch", Value: bson.D{
						{Key: "created_at", Value: bson.D{{Key: "$exists", Value: false}}},
					}}}},
				}}},
			},
		},
	}
}

// Run executes all oracles and returns the first failure (name and a sample
// violating document) or an empty name if all pass.
func Run(ctx context.Context, colls db.Collections) (string, string, error) {
	byName := map[string]*mongo.Collection{
		"users":    colls.Users,
		"bookings": colls.Bookings,
	}

	for _, o := range All() {
		cur, err := byName[o.Collection].Aggregate(ctx, o.Pipeline)
		if err != nil {
			return o.Name, "", fmt.Errorf("oracle %s: %w", o.Name, err)
		}
		if cur.Next(ctx) {
			var doc bson.M
			decodeErr := cur.Decode(&doc)
			_ = cur.Close(ctx)
			if decodeErr != nil {
				return o.Name, "", decodeErr
			}
			return o.Name, fmt.Sprintf("%v", doc), nil
		}
		if err := cur.Close(ctx); err != nil {
			return o.Name, "", err
		}
	}
	return "", "", nil
}
