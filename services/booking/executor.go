package booking

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"concierge/models"
)

// ErrDeclined is returned by the simulated executor when a booking attempt is rejected upstream.
var ErrDeclined = errors.New("booking was declined by the venue's booking system")

// SimulatedExecutor confirms bookings with a configurable success rate after a fixed latency.
type SimulatedExecutor struct {
	SuccessRate float64
	Latency     time.Duration
	rng         *lockedRand
}

func NewSimulatedExecutor(r *rand.Rand, successRate float64, latency time.Duration) *SimulatedExecutor {
	return &SimulatedExecutor{SuccessRate: successRate, Latency: latency, rng: newLockedRand(r)}
}

func (e *SimulatedExecutor) Execute(ctx context.Context, venue models.Venue, req models.BookingRequest) (string, error) {
	if err := wait(ctx, e.Latency); err != nil {
		return "", err
	}
	if e.rng.Float64() >= e.SuccessRate {
		return "", ErrDeclined
	}
	return NewConfirmationID(req.Category), nil
}
