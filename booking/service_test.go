package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

func TestService_SubmitSequence(t *testing.T) {
	svc := NewService(newFakeBookingRepo())
	ctx := context.Background()

	if err := svc.Submit(ctx, "alice@example.com", "house-1"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if err := svc.Submit(ctx, "alice@example.com", "house-2"); err != nil {
		t.Fatalf("second booking: %v", err)
	}
	if err := svc.Submit(ctx, "alice@example.com", "house-3"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}

	got, err := svc.ListByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(got))
	}
	for _, b := range got {
		if b.Email != "alice@example.com" {
			t.Fatalf("unexpected email in projection: %+v", b)
		}
	}
}

func TestService_DuplicateBooking(t *testing.T) {
	svc := NewService(newFakeBookingRepo())
	ctx := context.Background()

	if err := svc.Submit(ctx, "bob@example.com", "house-1"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if err := svc.Submit(ctx, "bob@example.com", "house-1"); !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking, got %v", err)
	}

	got, err := svc.ListByEmail(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("duplicate must not insert, got %d bookings", len(got))
	}
}

func TestService_DuplicateDetectedAtAnyCount(t *testing.T) {
	// The duplicate scan covers every prior booking, not just a single one.
	svc := NewService(newFakeBookingRepo())
	ctx := context.Background()

	if err := svc.Submit(ctx, "carol@example.com", "house-1"); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if err := svc.Submit(ctx, "carol@example.com", "house-2"); err != nil {
		t.Fatalf("second booking: %v", err)
	}

	// Both rejection reasons apply here; quota wins.
	if err := svc.Submit(ctx, "carol@example.com", "house-2"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected quota to take precedence, got %v", err)
	}
}

func TestService_SubmitValidation(t *testing.T) {
	svc := NewService(newFakeBookingRepo())

	if err := svc.Submit(context.Background(), "", "house-1"); err == nil {
		t.Fatal("expected error for missing email")
	}
	if err := svc.Submit(context.Background(), "dave@example.com", ""); err == nil {
		t.Fatal("expected error for missing house id")
	}
}

func TestService_ConcurrentBurstRespectsQuota(t *testing.T) {
	svc := NewService(newFakeBookingRepo())
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 5; i++ {
		houseID := fmt.Sprintf("house-%d", i)
		g.Go(func() error {
			err := svc.Submit(ctx, "eve@example.com", houseID)
			if err != nil && !errors.Is(err, ErrQuotaExceeded) && !errors.Is(err, ErrDuplicateBooking) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("burst: %v", err)
	}

	got, err := svc.ListByEmail(ctx, "eve@example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != Quota {
		t.Fatalf("expected exactly %d persisted bookings, got %d", Quota, len(got))
	}
}

// fakeBookingRepo mirrors the atomic conditional-update semantics of the
// Mongo repository under a mutex.
type fakeBookingRepo struct {
	mu      sync.Mutex
	entries map[string][]entry
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{entries: make(map[string][]entry)}
}

func (f *fakeBookingRepo) Admit(ctx context.Context, email, houseID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing := f.entries[email]
	if len(existing) >= Quota {
		return ErrQuotaExceeded
	}
	for _, e := range existing {
		if e.HouseID == houseID {
			return ErrDuplicateBooking
		}
	}

	f.entries[email] = append(existing, entry{HouseID: houseID, CreatedAt: at})
	return nil
}

func (f *fakeBookingRepo) ListByEmail(ctx context.Context, email string) ([]Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Booking, 0, len(f.entries[email]))
	for _, e := range f.entries[email] {
		out = append(out, Booking{HouseID: e.HouseID, Email: email})
	}
	return out, nil
}

var _ Repository = (*fakeBookingRepo)(nil)
