package booking

import "time"

// Quota is the maximum number of bookings a single user may hold.
const Quota = 2

// Booking is the projection returned to callers: which house, by whom.
type Booking struct {
	HouseID string `bson:"house_id"`
	Email   string `bson:"email"`
}

// entry is one reservation inside a user's bookings document.
type entry struct {
	HouseID   string    `bson:"house_id"`
	CreatedAt time.Time `bson:"created_at"`
}

// userBookings is the single per-user document in the bookings collection.
// Keeping all of a user's bookings in one document makes the quota and
// duplicate checks a single-document conditional update, which the store
// applies atomically.
type userBookings struct {
	Email   string  `bson:"email"`
	Entries []entry `bson:"entries"`
}
