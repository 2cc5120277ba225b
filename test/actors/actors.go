package actors

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"househunt/auth"
	"househunt/booking"
	"househunt/listing"
)

// Booker hammers booking admission for one email against a small pool of
// houses. Quota and duplicate rejections are expected outcomes under
// contention; anything else is a failure.
func Booker(ctx context.Context, svc *booking.Service, email string, houses []string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		houseID := houses[rand.Intn(len(houses))]
		err := svc.Submit(ctx, email, houseID)
		switch {
		case err == nil:
		case errors.Is(err, booking.ErrQuotaExceeded):
		case errors.Is(err, booking.ErrDuplicateBooking):
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return nil
		default:
			return fmt.Errorf("booker %s: %w", email, err)
		}
		time.Sleep(time.Duration(10+rand.Intn(20)) * time.Millisecond)
	}
}

// Registrar registers fresh accounts and retries duplicates, driving the
// unique-email insert path.
func Registrar(ctx context.Context, svc *auth.Service, prefix string, stop <-chan struct{}) error {
	n := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		email := fmt.Sprintf("%s-%d@example.com", prefix, n)
		// every third attempt reuses the previous email to exercise the
		// duplicate rejection
		if n > 0 && n%3 == 0 {
			email = fmt.Sprintf("%s-%d@example.com", prefix, n-1)
		}
		_, err := svc.Register(ctx, auth.RegisterRequest{
			Email:    email,
			Name:     "Stress User",
			Password: "stresspassword",
		})
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrDuplicateEmail):
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return nil
		default:
			return fmt.Errorf("registrar %s: %w", prefix, err)
		}
		n++
		time.Sleep(time.Duration(20+rand.Intn(40)) * time.Millisecond)
	}
}

// Lister interleaves listing creation with filtered searches.
func Lister(ctx context.Context, svc *listing.Service, ownerEmail string, stop <-chan struct{}) error {
	n := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}
		_, err := svc.Create(ctx, listing.Owner{Email: ownerEmail, Name: "Stress Owner"}, listing.Fields{
			Name:         fmt.Sprintf("Stress House %d", n),
			RentPerMonth: float64(400 + rand.Intn(1200)),
			RoomSize:     "900 sqft",
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("lister create: %w", err)
		}
		_, err = svc.Search(ctx, listing.SearchQuery{PriceRange: "500-1000", SearchValue: "stress"})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("lister search: %w", err)
		}
		n++
		time.Sleep(time.Duration(30+rand.Intn(50)) * time.Millisecond)
	}
}
