package booking

import (
	"context"
	"sort"
	"time"

	"concierge/models"
	"concierge/services/venue"

	"go.uber.org/zap"
)

const maxAlternativeVenues = 3

// alternativeVenues looks for other venues that share a category tag with failed
// and can be booked online for the same category, best rated first.
func alternativeVenues(ctx context.Context, provider venue.Provider, failed models.Venue, category models.Category, logger *zap.Logger) []models.Venue {
	if provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	capability := TransactionCapability{}
	seen := map[string]bool{failed.ID: true}
	var found []models.Venue
	for _, tag := range failed.Categories {
		candidates, err := provider.Search(ctx, models.VenueQuery{Category: tag})
		if err != nil {
			logger.Warn("alternative venue search failed", zap.String("venueID", failed.ID), zap.String("tag", tag), zap.Error(err))
			return nil
		}
		for _, v := range candidates {
			if seen[v.ID] || !capability.Supports(v, category) {
				continue
			}
			seen[v.ID] = true
			found = append(found, v)
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Rating > found[j].Rating
	})
	if len(found) > maxAlternativeVenues {
		found = found[:maxAlternativeVenues]
	}
	return found
}
