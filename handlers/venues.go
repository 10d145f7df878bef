package handlers

import (
	"net/http"
	"strconv"

	"concierge/models"
	"concierge/services/venue"

	"github.com/gin-gonic/gin"
)

// VenueHandler serves GET /api/venues.
type VenueHandler struct {
	Venues venue.Provider
}

func NewVenueHandler(venues venue.Provider) *VenueHandler {
	return &VenueHandler{Venues: venues}
}

// SearchVenues accepts category, q, lat, lng and limit query parameters.
func (h *VenueHandler) SearchVenues(c *gin.Context) {
	q := models.VenueQuery{
		Category: c.Query("category"),
		Text:     c.Query("q"),
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "limit must be a non-negative integer", err)
			return
		}
		q.Limit = n
	}
	if lat, lng := c.Query("lat"), c.Query("lng"); lat != "" || lng != "" {
		la, errLat := strconv.ParseFloat(lat, 64)
		lo, errLng := strconv.ParseFloat(lng, 64)
		if errLat != nil || errLng != nil || la < -90 || la > 90 || lo < -180 || lo > 180 {
			badRequest(c, "lat and lng must be valid coordinates", nil)
			return
		}
		q.Near = &models.Location{Latitude: la, Longitude: lo}
	}

	venues, err := h.Venues.Search(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	if venues == nil {
		venues = []models.Venue{}
	}
	c.JSON(http.StatusOK, gin.H{"venues": venues, "count": len(venues)})
}
