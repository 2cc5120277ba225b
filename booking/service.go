package booking

import (
	"context"
	"fmt"
	"time"
)

// Service enforces the booking admission policy.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a Service using the provided repository.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Submit admits a booking for email against houseID. It fails with
// ErrQuotaExceeded once the user holds Quota bookings and with
// ErrDuplicateBooking when the house is already booked by the same user;
// quota takes precedence when both apply. Any other error is a store
// failure and says nothing about whether the booking was admitted.
func (s *Service) Submit(ctx context.Context, email, houseID string) error {
	if email == "" {
		return fmt.Errorf("booking: email required")
	}
	if houseID == "" {
		return fmt.Errorf("booking: house id required")
	}

	return s.repo.Admit(ctx, email, houseID, s.now())
}

// ListByEmail returns the user's bookings as (house_id, email) pairs.
func (s *Service) ListByEmail(ctx context.Context, email string) ([]Booking, error) {
	return s.repo.ListByEmail(ctx, email)
}
