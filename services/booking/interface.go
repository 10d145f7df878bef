package booking

import (
	"context"

	"concierge/models"
)

// Orchestrator drives a chosen venue to a confirmed or clearly failed booking.
// None of its methods return an error for a failed booking; the outcome is in the result.
type Orchestrator interface {
	CoordinateBooking(ctx context.Context, req models.BookingRequest) models.BookingResult
	CheckAvailability(ctx context.Context, venue models.Venue, category models.Category, date string, details models.BookingDetails) (models.Availability, error)
	CoordinateMultiServiceBooking(ctx context.Context, reqs []models.BookingRequest) models.MultiBookingResult
}

// CapabilityChecker decides whether a venue can be booked online for a category.
type CapabilityChecker interface {
	Supports(venue models.Venue, category models.Category) bool
}

// AvailabilityChecker probes inventory for a venue. Implementations return
// either availability or a short list of alternative dates or times.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, venue models.Venue, category models.Category, date string, details models.BookingDetails) (models.Availability, error)
}

// ReservationService is the table reservation system used for dining.
type ReservationService interface {
	// CheckTime reports whether the slot is free; when it is not, alternatives lists nearby times.
	CheckTime(ctx context.Context, venue models.Venue, date, clock string, partySize int) (available bool, alternatives []string, err error)
	Reserve(ctx context.Context, venue models.Venue, req models.BookingRequest) (confirmationID string, err error)
}

// BookingExecutor places non-dining bookings and returns the confirmation id.
type BookingExecutor interface {
	Execute(ctx context.Context, venue models.Venue, req models.BookingRequest) (confirmationID string, err error)
}

// Notifier is told about every confirmed booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, req models.BookingRequest, result models.BookingResult) error
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) BookingConfirmed(context.Context, models.BookingRequest, models.BookingResult) error {
	return nil
}
