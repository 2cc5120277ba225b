package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"househunt/auth"
	"househunt/listing"
)

// listingRequest is the caller-supplied shape of a listing. Binding rejects
// non-numeric bedrooms/bathrooms/rent instead of letting sentinel values
// through.
type listingRequest struct {
	Name             string  `json:"name" binding:"required"`
	Address          string  `json:"address"`
	City             string  `json:"city"`
	Bedrooms         int     `json:"bedrooms"`
	Bathrooms        int     `json:"bathrooms"`
	RoomSize         string  `json:"room_size"`
	AvailabilityDate string  `json:"availability_date"`
	RentPerMonth     float64 `json:"rent_per_month"`
	Phone            string  `json:"phone"`
	Description      string  `json:"description"`
	Photo            string  `json:"photo"`
}

func (r listingRequest) fields() listing.Fields {
	return listing.Fields{
		Name:             r.Name,
		Address:          r.Address,
		City:             r.City,
		Bedrooms:         r.Bedrooms,
		Bathrooms:        r.Bathrooms,
		RoomSize:         r.RoomSize,
		AvailabilityDate: r.AvailabilityDate,
		RentPerMonth:     r.RentPerMonth,
		Phone:            r.Phone,
		Description:      r.Description,
		Photo:            r.Photo,
	}
}

type listingResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	City             string  `json:"city"`
	Bedrooms         int     `json:"bedrooms"`
	Bathrooms        int     `json:"bathrooms"`
	RoomSize         string  `json:"room_size"`
	AvailabilityDate string  `json:"availability_date"`
	RentPerMonth     float64 `json:"rent_per_month"`
	Phone            string  `json:"phone"`
	Description      string  `json:"description"`
	Photo            string  `json:"photo"`
	OwnerEmail       string  `json:"owner_email"`
	OwnerName        string  `json:"owner_name"`
	CreatedAt        string  `json:"created_at"`
}

func toListingResponse(l listing.Listing) listingResponse {
	return listingResponse{
		ID:               l.ID.Hex(),
		Name:             l.Name,
		Address:          l.Address,
		City:             l.City,
		Bedrooms:         l.Bedrooms,
		Bathrooms:        l.Bathrooms,
		RoomSize:         l.RoomSize,
		AvailabilityDate: l.AvailabilityDate,
		RentPerMonth:     l.RentPerMonth,
		Phone:            l.Phone,
		Description:      l.Description,
		Photo:            l.Photo,
		OwnerEmail:       l.OwnerEmail,
		OwnerName:        l.OwnerName,
		CreatedAt:        l.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleSearchListings(c *gin.Context) {
	result, err := s.listings.Search(c.Request.Context(), listing.SearchQuery{
		PriceRange:  c.Query("priceRange"),
		RoomSize:    c.Query("roomSize"),
		SearchValue: c.Query("searchValue"),
	})
	if err != nil {
		if errors.Is(err, listing.ErrBadPriceRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed priceRange, expected \"min-max\""})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	out := make([]listingResponse, 0, len(result))
	for _, l := range result {
		out = append(out, toListingResponse(l))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetListing(c *gin.Context) {
	l, err := s.listings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "house not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, toListingResponse(l))
}

func (s *Server) caller(c *gin.Context) listing.Owner {
	email := auth.CallerEmail(c)
	owner := listing.Owner{Email: email}
	if user, err := s.auth.GetUserByEmail(c.Request.Context(), email); err == nil {
		owner.Name = user.Name
	}
	return owner
}

func (s *Server) handleCreateListing(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := s.listings.Create(c.Request.Context(), s.caller(c), req.fields())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, toListingResponse(created))
}

func (s *Server) handleUpdateListing(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := s.listings.Update(c.Request.Context(), s.caller(c), c.Param("id"), req.fields())
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not the listing owner"})
		case errors.Is(err, listing.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "house not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, toListingResponse(updated))
}

func (s *Server) handleDeleteListing(c *gin.Context) {
	err := s.listings.Delete(c.Request.Context(), auth.CallerEmail(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not the listing owner"})
		case errors.Is(err, listing.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "house not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
