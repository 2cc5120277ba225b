package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"househunt/auth"
	"househunt/booking"
)

type submitBookingRequest struct {
	HouseID string `json:"house_id" binding:"required"`
}

type bookingResponse struct {
	HouseID string `json:"house_id"`
	Email   string `json:"email"`
}

func (s *Server) handleListBookings(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter required"})
		return
	}

	result, err := s.bookings.ListByEmail(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	out := make([]bookingResponse, 0, len(result))
	for _, b := range result {
		out = append(out, bookingResponse{HouseID: b.HouseID, Email: b.Email})
	}
	c.JSON(http.StatusOK, out)
}

// handleSubmitBooking books a house for the authenticated caller. The booking
// email always comes from the verified identity, never from the body.
func (s *Server) handleSubmitBooking(c *gin.Context) {
	var req submitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	email := auth.CallerEmail(c)
	if err := s.bookings.Submit(c.Request.Context(), email, req.HouseID); err != nil {
		switch {
		case errors.Is(err, booking.ErrQuotaExceeded):
			c.JSON(http.StatusConflict, gin.H{"message": "booking quota exceeded"})
		case errors.Is(err, booking.ErrDuplicateBooking):
			c.JSON(http.StatusConflict, gin.H{"message": "house already booked"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "booking failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, bookingResponse{HouseID: req.HouseID, Email: email})
}
