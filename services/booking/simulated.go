package booking

import (
	"math/rand"
	"time"

	"concierge/models"
)

// SimulatedOptions returns Options whose reservation, availability and
// executor collaborators are simulated from one seeded source.
func SimulatedOptions(seed int64, successRate float64, latency time.Duration) Options {
	r := rand.New(rand.NewSource(seed))
	reservations := NewSimulatedReservations(rand.New(rand.NewSource(r.Int63())), availabilityOdds[models.CategoryDining], latency)
	return Options{
		Reservations: reservations,
		Availability: NewSimulatedAvailability(rand.New(rand.NewSource(r.Int63())), reservations),
		Executor:     NewSimulatedExecutor(rand.New(rand.NewSource(r.Int63())), successRate, latency),
	}
}
