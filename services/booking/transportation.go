package booking

import (
	"context"

	"concierge/models"
)

type transportationHandler struct {
	executor BookingExecutor
}

func (transportationHandler) Category() models.Category { return models.CategoryTransportation }

func (transportationHandler) Validate(req models.BookingRequest) error {
	if _, ok := detailsAs[models.TransportationDetails](req.Details); !ok {
		return newValidationError("transportation details are required", "details")
	}
	return nil
}

// Execute leaves rides pending until the operator assigns a vehicle.
func (h transportationHandler) Execute(ctx context.Context, req models.BookingRequest) (execution, error) {
	d, _ := detailsAs[models.TransportationDetails](req.Details)
	cost := TransportationCost(d.Mode, req.PartySize)
	return executorBooking(ctx, h.executor, req, cost, models.StatusPending)
}
