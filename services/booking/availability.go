package booking

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"concierge/models"
	"concierge/services/classify"
)

// availabilityOdds is the chance a simulated probe reports a free slot.
var availabilityOdds = map[models.Category]float64{
	models.CategoryDining:         0.80,
	models.CategoryAccommodation:  0.70,
	models.CategoryAttraction:     0.90,
	models.CategoryTransportation: 0.85,
	models.CategoryEntertainment:  0.75,
}

// SimulatedAvailability is a placeholder inventory. Dining goes through the reservation service.
type SimulatedAvailability struct {
	Reservations ReservationService
	rng          *lockedRand
	now          func() time.Time
}

func NewSimulatedAvailability(r *rand.Rand, reservations ReservationService) *SimulatedAvailability {
	return &SimulatedAvailability{Reservations: reservations, rng: newLockedRand(r), now: time.Now}
}

func (s *SimulatedAvailability) CheckAvailability(ctx context.Context, venue models.Venue, category models.Category, date string, details models.BookingDetails) (models.Availability, error) {
	if err := ctx.Err(); err != nil {
		return models.Availability{}, err
	}
	odds, ok := availabilityOdds[category]
	if !ok {
		return models.Availability{}, classify.New(models.CodeUnsupportedCategory, fmt.Sprintf("unsupported category %q", category))
	}

	clock := requestedClock(details)
	if date == "" {
		if d, ok := detailsAs[models.AccommodationDetails](details); ok {
			date = d.CheckIn
		}
	}
	result := models.Availability{VenueID: venue.ID, Category: category, Date: date, Time: clock}

	if category == models.CategoryDining && s.Reservations != nil {
		available, alts, err := s.Reservations.CheckTime(ctx, venue, date, clock, 0)
		if err != nil {
			return models.Availability{}, err
		}
		result.Available = available
		result.Alternatives = alts
		return result, nil
	}

	if s.rng.Float64() < odds {
		result.Available = true
		return result, nil
	}
	switch category {
	case models.CategoryDining, models.CategoryTransportation:
		result.Alternatives = hourlyAlternatives(clock, alternativeCount)
	default:
		start, err := parseDate(date)
		if err != nil {
			start = s.now()
		}
		result.Alternatives = dailyAlternatives(start, alternativeCount)
	}
	return result, nil
}

// requestedClock is the time of day named by the booking details, if any.
func requestedClock(details models.BookingDetails) string {
	if d, ok := detailsAs[models.DiningDetails](details); ok {
		return d.PreferredTime
	}
	if d, ok := detailsAs[models.AttractionDetails](details); ok {
		return d.VisitTime
	}
	if d, ok := detailsAs[models.TransportationDetails](details); ok {
		return d.DepartureTime
	}
	if d, ok := detailsAs[models.EntertainmentDetails](details); ok {
		return d.PreferredTime
	}
	return ""
}
