package venueRepo

import (
	"context"

	"concierge/models"
	"concierge/services/venue"
)

// VenueRepository is the persistent venue catalogue. It satisfies venue.Provider.
type VenueRepository interface {
	venue.Provider
	UpsertMany(ctx context.Context, venues []models.Venue) (int, error)
	Count(ctx context.Context) (int64, error)
}
