package booking

import (
	"context"

	"concierge/models"
)

type accommodationHandler struct {
	executor BookingExecutor
}

func (accommodationHandler) Category() models.Category { return models.CategoryAccommodation }

func (accommodationHandler) Validate(req models.BookingRequest) error {
	d, ok := detailsAs[models.AccommodationDetails](req.Details)
	if !ok {
		return newValidationError("accommodation details are required", "details")
	}
	if _, err := nights(d); err != nil {
		return err
	}
	return nil
}

func (h accommodationHandler) Execute(ctx context.Context, req models.BookingRequest) (execution, error) {
	d, _ := detailsAs[models.AccommodationDetails](req.Details)
	n, err := nights(d)
	if err != nil {
		return execution{}, err
	}
	cost := AccommodationCost(req.Venue.Price, n, d.Rooms)
	return executorBooking(ctx, h.executor, req, cost, models.StatusConfirmed)
}

// nights is the length of the stay; check-out must fall after check-in.
func nights(d *models.AccommodationDetails) (int, error) {
	in, err := parseDate(d.CheckIn)
	if err != nil {
		return 0, newValidationError("checkIn must be a date in YYYY-MM-DD format", "details.checkIn")
	}
	out, err := parseDate(d.CheckOut)
	if err != nil {
		return 0, newValidationError("checkOut must be a date in YYYY-MM-DD format", "details.checkOut")
	}
	n := int(out.Sub(in).Hours() / 24)
	if n < 1 {
		return 0, newValidationError("checkOut must be after checkIn", "details.checkOut")
	}
	return n, nil
}
