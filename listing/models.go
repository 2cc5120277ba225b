package listing

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing is the domain representation of a rentable house record.
// It mirrors the houses collection; presentation layers own their JSON shape.
type Listing struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Address          string             `bson:"address"`
	City             string             `bson:"city"`
	Bedrooms         int                `bson:"bedrooms"`
	Bathrooms        int                `bson:"bathrooms"`
	RoomSize         string             `bson:"room_size"`
	AvailabilityDate string             `bson:"availability_date"`
	RentPerMonth     float64            `bson:"rent_per_month"`
	Phone            string             `bson:"phone"`
	Description      string             `bson:"description"`
	Photo            string             `bson:"photo"`
	OwnerEmail       string             `bson:"owner_email"`
	OwnerName        string             `bson:"owner_name"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

// Fields carries the caller-editable part of a listing. Updates apply
// full-replace semantics over these fields.
type Fields struct {
	Name             string
	Address          string
	City             string
	Bedrooms         int
	Bathrooms        int
	RoomSize         string
	AvailabilityDate string
	RentPerMonth     float64
	Phone            string
	Description      string
	Photo            string
}

// SearchFilter enumerates the optional search constraints. All present
// filters are ANDed; absent filters impose no constraint.
type SearchFilter struct {
	PriceMin      *float64
	PriceMax      *float64
	RoomSize      string
	NameSubstring string
}
