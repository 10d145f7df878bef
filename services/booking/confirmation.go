package booking

import (
	"strings"

	"concierge/models"

	"github.com/google/uuid"
)

// NewConfirmationID returns ids like "DIN-1F3A9C2E".
func NewConfirmationID(c models.Category) string {
	prefix := strings.ToUpper(string(c))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	if prefix == "" {
		prefix = "BKG"
	}
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return prefix + "-" + id[:8]
}

func confirmedResult(req models.BookingRequest, confirmationID string, cost float64, status models.BookingStatus) models.BookingResult {
	return models.BookingResult{
		Success:        true,
		ConfirmationID: confirmationID,
		VenueID:        req.Venue.ID,
		VenueName:      req.Venue.Name,
		Category:       req.Category,
		Date:           req.Date,
		PartySize:      req.PartySize,
		Details:        req.Details,
		EstimatedCost:  cost,
		Status:         status,
	}
}
