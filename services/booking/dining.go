package booking

import (
	"context"

	"concierge/models"
	"concierge/services/classify"
)

type diningHandler struct {
	reservations ReservationService
}

func (diningHandler) Category() models.Category { return models.CategoryDining }

func (diningHandler) Validate(req models.BookingRequest) error {
	if _, ok := detailsAs[models.DiningDetails](req.Details); !ok {
		return newValidationError("dining details are required", "details")
	}
	return nil
}

// Execute checks the exact slot first and offers nearby times when it is taken.
func (h diningHandler) Execute(ctx context.Context, req models.BookingRequest) (execution, error) {
	d, _ := detailsAs[models.DiningDetails](req.Details)

	available, alternatives, err := h.reservations.CheckTime(ctx, *req.Venue, req.Date, d.PreferredTime, req.PartySize)
	if err != nil {
		return execution{}, classify.Wrap(models.CodeAvailabilityCheckFailed, err, "could not check table availability")
	}
	if !available {
		return execution{}, newSlotUnavailable(req.Date+" "+d.PreferredTime, alternatives)
	}

	id, err := h.reservations.Reserve(ctx, *req.Venue, req)
	if err != nil {
		return execution{}, err
	}
	return execution{
		ConfirmationID: id,
		Cost:           DiningCost(req.Venue.Price, req.PartySize),
		Status:         models.StatusConfirmed,
	}, nil
}
