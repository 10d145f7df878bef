package booking

import (
	"context"

	"concierge/models"
)

type entertainmentHandler struct {
	executor BookingExecutor
}

func (entertainmentHandler) Category() models.Category { return models.CategoryEntertainment }

func (entertainmentHandler) Validate(req models.BookingRequest) error {
	if _, ok := detailsAs[models.EntertainmentDetails](req.Details); !ok {
		return newValidationError("entertainment details are required", "details")
	}
	return nil
}

// Execute books one ticket per guest unless a ticket count was given.
func (h entertainmentHandler) Execute(ctx context.Context, req models.BookingRequest) (execution, error) {
	d, _ := detailsAs[models.EntertainmentDetails](req.Details)
	tickets := d.TicketCount
	if tickets == 0 {
		tickets = req.PartySize
	}
	cost := EntertainmentCost(req.Venue.Price, tickets)
	return executorBooking(ctx, h.executor, req, cost, models.StatusConfirmed)
}
