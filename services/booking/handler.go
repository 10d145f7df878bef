package booking

import (
	"context"

	"concierge/models"
)

// execution is what a category handler reports after a successful booking.
type execution struct {
	ConfirmationID string
	Cost           float64
	Status         models.BookingStatus
}

// categoryHandler holds the per-category validation and execution logic.
// Handlers never see a request whose envelope or required fields are invalid,
// nor a venue that lacks the category's capability.
type categoryHandler interface {
	Category() models.Category
	// Validate runs checks that go beyond the required-field tags.
	Validate(req models.BookingRequest) error
	Execute(ctx context.Context, req models.BookingRequest) (execution, error)
}

// detailsAs extracts the concrete payload, accepting both pointer and value forms.
func detailsAs[T any](d models.BookingDetails) (*T, bool) {
	switch v := any(d).(type) {
	case *T:
		return v, v != nil
	case T:
		return &v, true
	}
	return nil, false
}

// executorBooking is the shared execute step of the non-dining categories.
func executorBooking(ctx context.Context, exec BookingExecutor, req models.BookingRequest, cost float64, status models.BookingStatus) (execution, error) {
	id, err := exec.Execute(ctx, *req.Venue, req)
	if err != nil {
		return execution{}, err
	}
	return execution{ConfirmationID: id, Cost: cost, Status: status}, nil
}
