package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"househunt/auth"
	"househunt/booking"
	"househunt/listing"
	"househunt/logger"
)

// Server bundles the domain services behind the HTTP surface.
type Server struct {
	auth     *auth.Service
	listings *listing.Service
	bookings *booking.Service
	log      *logger.Logger
}

// NewServer wires the HTTP surface over the provided services.
func NewServer(authSvc *auth.Service, listingSvc *listing.Service, bookingSvc *booking.Service, log *logger.Logger) *Server {
	return &Server{
		auth:     authSvc,
		listings: listingSvc,
		bookings: bookingSvc,
		log:      log,
	}
}

// Router builds the gin engine with all routes registered. Mutating listing
// routes and booking submission sit behind the auth gate; reads stay public.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	if s.log != nil {
		router.Use(s.requestLogger())
	}

	router.GET("/", func(c *gin.Context) {
		c.String(200, "House Hunter server is running...")
	})

	router.POST("/register", s.handleRegister)
	router.POST("/login", s.handleLogin)

	gate := auth.RequireAuth(s.auth)
	router.GET("/user", gate, s.handleCurrentUser)

	router.GET("/houses", s.handleSearchListings)
	router.GET("/houses/:id", s.handleGetListing)
	router.POST("/houses", gate, s.handleCreateListing)
	router.PUT("/houses/:id", gate, s.handleUpdateListing)
	router.DELETE("/houses/:id", gate, s.handleDeleteListing)

	router.GET("/bookings", s.handleListBookings)
	router.POST("/bookings", gate, s.handleSubmitBooking)

	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
