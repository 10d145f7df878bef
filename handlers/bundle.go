package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Decision endpoints
	Decide gin.HandlerFunc

	// Booking endpoints
	Book              gin.HandlerFunc
	BookBatch         gin.HandlerFunc
	CheckAvailability gin.HandlerFunc

	// Venue endpoints
	SearchVenues gin.HandlerFunc

	// Operational endpoints
	Health  gin.HandlerFunc
	Metrics gin.HandlerFunc
}
