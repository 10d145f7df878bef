// Package venue supplies the read-only venue catalogue the decision engine and
// booking orchestrator work from.
package venue

import (
	"context"
	"sort"
	"strings"

	"concierge/models"
	"concierge/services/classify"
)

// ErrNotFound is returned when a venue id is unknown to the provider.
var ErrNotFound = classify.New(models.CodeBusinessNotFound, "venue not found")

// Provider is the venue search collaborator.
type Provider interface {
	GetByID(ctx context.Context, id string) (*models.Venue, error)
	Search(ctx context.Context, q models.VenueQuery) ([]models.Venue, error)
}

const defaultSearchLimit = 20

// Matches reports whether v satisfies the category and free-text parts of q.
func Matches(v models.Venue, q models.VenueQuery) bool {
	if q.Category != "" && !v.HasCategory(q.Category) {
		return false
	}
	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		if !strings.Contains(strings.ToLower(v.Name), text) && !v.HasCategory(text) {
			return false
		}
	}
	return true
}

// Finalize fills distances from q.Near, orders by rating (best first, input
// order on ties) and applies the limit. It works on its own copy of the slice.
func Finalize(venues []models.Venue, q models.VenueQuery) []models.Venue {
	out := make([]models.Venue, len(venues))
	copy(out, venues)
	if q.Near != nil && !q.Near.IsZero() {
		for i := range out {
			if out[i].Location.IsZero() {
				continue
			}
			d := q.Near.MilesTo(out[i].Location)
			out[i].Distance = &d
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
