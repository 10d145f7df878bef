package handlers

import (
	"net/http"
	"strings"

	"concierge/models"
	"concierge/services/booking"
	"concierge/services/classify"
	"concierge/services/venue"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves GET /api/availability.
type AvailabilityHandler struct {
	Orchestrator booking.Orchestrator
	Venues       venue.Provider
	Logger       *zap.Logger
}

func NewAvailabilityHandler(orchestrator booking.Orchestrator, venues venue.Provider, logger *zap.Logger) *AvailabilityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityHandler{Orchestrator: orchestrator, Venues: venues, Logger: logger}
}

// CheckAvailability takes venueId, category, date and an optional time.
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	venueID := strings.TrimSpace(c.Query("venueId"))
	if venueID == "" {
		badRequest(c, "venueId is required", nil)
		return
	}
	category, ok := models.ParseCategory(c.Query("category"))
	if !ok {
		writeError(c, classify.New(models.CodeUnsupportedCategory, "unsupported category "+string(category)))
		return
	}
	date := c.Query("date")

	ctx := c.Request.Context()
	v, err := h.Venues.GetByID(ctx, venueID)
	if err != nil {
		writeError(c, err)
		return
	}

	a, err := h.Orchestrator.CheckAvailability(ctx, *v, category, date, detailsFromQuery(category, date, c.Query("time")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// detailsFromQuery fills the time-of-day field each category uses.
func detailsFromQuery(category models.Category, date, clock string) models.BookingDetails {
	switch d := models.NewDetails(category).(type) {
	case *models.DiningDetails:
		d.PreferredTime = clock
		return d
	case *models.AccommodationDetails:
		d.CheckIn = date
		return d
	case *models.AttractionDetails:
		d.VisitTime = clock
		return d
	case *models.TransportationDetails:
		d.DepartureTime = clock
		return d
	case *models.EntertainmentDetails:
		d.PreferredTime = clock
		return d
	}
	return nil
}
