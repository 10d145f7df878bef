package booking

import (
	"context"

	"concierge/models"
)

type attractionHandler struct {
	executor BookingExecutor
}

func (attractionHandler) Category() models.Category { return models.CategoryAttraction }

func (attractionHandler) Validate(req models.BookingRequest) error {
	if _, ok := detailsAs[models.AttractionDetails](req.Details); !ok {
		return newValidationError("attraction details are required", "details")
	}
	return nil
}

func (h attractionHandler) Execute(ctx context.Context, req models.BookingRequest) (execution, error) {
	d, _ := detailsAs[models.AttractionDetails](req.Details)
	cost := AttractionCost(req.Venue.Price, d.TicketCount)
	return executorBooking(ctx, h.executor, req, cost, models.StatusConfirmed)
}
