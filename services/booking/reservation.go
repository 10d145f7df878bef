package booking

import (
	"context"
	"math/rand"
	"time"

	"concierge/models"
)

const alternativeCount = 3

// SimulatedReservations stands in for a restaurant reservation system.
type SimulatedReservations struct {
	// Availability is the probability that a requested slot is free.
	Availability float64
	Latency      time.Duration
	rng          *lockedRand
}

func NewSimulatedReservations(r *rand.Rand, availability float64, latency time.Duration) *SimulatedReservations {
	return &SimulatedReservations{Availability: availability, Latency: latency, rng: newLockedRand(r)}
}

func (s *SimulatedReservations) CheckTime(ctx context.Context, venue models.Venue, date, clock string, partySize int) (bool, []string, error) {
	if err := wait(ctx, s.Latency); err != nil {
		return false, nil, err
	}
	if s.rng.Float64() < s.Availability {
		return true, nil, nil
	}
	return false, hourlyAlternatives(clock, alternativeCount), nil
}

func (s *SimulatedReservations) Reserve(ctx context.Context, venue models.Venue, req models.BookingRequest) (string, error) {
	if err := wait(ctx, s.Latency); err != nil {
		return "", err
	}
	return NewConfirmationID(models.CategoryDining), nil
}

// hourlyAlternatives returns up to n successive +1 hour times after clock on
// the same day. Slots that would cross midnight are left out.
func hourlyAlternatives(clock string, n int) []string {
	t, err := parseClock(clock)
	if err != nil {
		t, _ = parseClock("12:00")
	}
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		next := t.Add(time.Duration(i) * time.Hour)
		if next.Day() != t.Day() {
			break
		}
		out = append(out, next.Format(clockLayout))
	}
	return out
}

// dailyAlternatives returns n successive +1 day dates after date.
func dailyAlternatives(date time.Time, n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, date.AddDate(0, 0, i).Format(dateLayout))
	}
	return out
}

// wait sleeps for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
