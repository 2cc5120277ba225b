package listing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotOwner signals a mutation attempted by someone other than the
	// listing owner.
	ErrNotOwner = errors.New("listing: caller does not own listing")
	// ErrBadPriceRange signals an unparsable priceRange query value.
	ErrBadPriceRange = errors.New("listing: malformed price range")
)

// SearchQuery carries the raw query parameters of a listing search.
type SearchQuery struct {
	PriceRange  string
	RoomSize    string
	SearchValue string
}

// Owner identifies the authenticated caller performing a mutation.
type Owner struct {
	Email string
	Name  string
}

// Service exposes business-level listing operations.
type Service struct {
	repo Repository
}

// NewService builds a Service using the provided repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ParsePriceRange parses a "min-max" token into inclusive bounds. An empty
// value imposes no constraint. A bare "min" or "min-" is a lower-bound-only
// filter; the upstream behavior of silently dropping it was redefined rather
// than preserved.
func ParsePriceRange(raw string) (*float64, *float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil, nil
	}

	minToken, maxToken, _ := strings.Cut(raw, "-")

	var minVal, maxVal *float64
	if tok := strings.TrimSpace(minToken); tok != "" {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q", ErrBadPriceRange, raw)
		}
		minVal = &v
	}
	if tok := strings.TrimSpace(maxToken); tok != "" {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q", ErrBadPriceRange, raw)
		}
		maxVal = &v
	}

	return minVal, maxVal, nil
}

// Search resolves the raw query into a filter and returns matching listings.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]Listing, error) {
	priceMin, priceMax, err := ParsePriceRange(q.PriceRange)
	if err != nil {
		return nil, err
	}

	return s.repo.Search(ctx, SearchFilter{
		PriceMin:      priceMin,
		PriceMax:      priceMax,
		RoomSize:      strings.TrimSpace(q.RoomSize),
		NameSubstring: strings.TrimSpace(q.SearchValue),
	})
}

// GetByID returns the listing for the given identifier.
func (s *Service) GetByID(ctx context.Context, id string) (Listing, error) {
	return s.repo.GetByID(ctx, id)
}

// Create inserts a new listing owned by the caller.
func (s *Service) Create(ctx context.Context, owner Owner, fields Fields) (Listing, error) {
	if owner.Email == "" {
		return Listing{}, fmt.Errorf("listing: owner email required")
	}
	if fields.Name == "" {
		return Listing{}, fmt.Errorf("listing: name required")
	}

	return s.repo.Create(ctx, listingFromFields(fields, owner))
}

// Update replaces every caller-editable field of the listing. When the
// listing does not exist it is created owned by the caller, preserving the
// upstream upsert-on-missing contract. Existing listings may only be updated
// by their owner.
func (s *Service) Update(ctx context.Context, owner Owner, id string, fields Fields) (Listing, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return s.repo.Replace(ctx, id, listingFromFields(fields, owner))
		}
		return Listing{}, err
	}

	if existing.OwnerEmail != owner.Email {
		return Listing{}, ErrNotOwner
	}

	replacement := listingFromFields(fields, Owner{Email: existing.OwnerEmail, Name: existing.OwnerName})
	replacement.CreatedAt = existing.CreatedAt
	return s.repo.Replace(ctx, id, replacement)
}

// Delete removes a listing owned by the caller.
func (s *Service) Delete(ctx context.Context, callerEmail, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerEmail != callerEmail {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func listingFromFields(fields Fields, owner Owner) Listing {
	return Listing{
		Name:             fields.Name,
		Address:          fields.Address,
		City:             fields.City,
		Bedrooms:         fields.Bedrooms,
		Bathrooms:        fields.Bathrooms,
		RoomSize:         fields.RoomSize,
		AvailabilityDate: fields.AvailabilityDate,
		RentPerMonth:     fields.RentPerMonth,
		Phone:            fields.Phone,
		Description:      fields.Description,
		Photo:            fields.Photo,
		OwnerEmail:       owner.Email,
		OwnerName:        owner.Name,
	}
}
