package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"concierge/models"
	"concierge/services/venue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiningHappyPath(t *testing.T) {
	h := newHarness(t, Options{})
	req := validRequest(models.CategoryDining)

	res := h.orch.CoordinateBooking(context.Background(), req)

	require.True(t, res.Success, res.Message)
	assert.Equal(t, "DIN-TEST0001", res.ConfirmationID)
	assert.Equal(t, models.CategoryDining, res.Category)
	assert.Equal(t, "Trattoria Roma", res.VenueName)
	assert.Equal(t, models.StatusConfirmed, res.Status)
	assert.Equal(t, 60.0, res.EstimatedCost)
	assert.Empty(t, res.Code)
	assert.Equal(t, 1, h.notifier.calls)
}

func TestAccommodationWithoutCapabilityFallsBackToManual(t *testing.T) {
	h := newHarness(t, Options{})
	req := validRequest(models.CategoryAccommodation)
	v := hotel("h-offline", 4.0, false)
	req.Venue = &v

	res := h.orch.CoordinateBooking(context.Background(), req)

	assert.False(t, res.Success)
	assert.Equal(t, models.CodeNoOnlineBookingSupport, res.Code)
	assert.False(t, res.Retryable)
	require.NotNil(t, res.ManualBooking)
	assert.Equal(t, v.Contact.Phone, res.ManualBooking.Phone)
	assert.Equal(t, "(415) 555-0199", res.ManualBooking.DisplayPhone)
	assert.Zero(t, h.executor.Calls())
	assert.Zero(t, h.notifier.calls)
}

func TestCapabilityGatingNeverReportsBookingFailed(t *testing.T) {
	for _, c := range models.Categories {
		t.Run(string(c), func(t *testing.T) {
			h := newHarness(t, Options{})
			h.executor.err = errors.New("boom")
			req := validRequest(c)
			req.Venue.Transactions = nil

			res := h.orch.CoordinateBooking(context.Background(), req)
			assert.Equal(t, models.CodeNoOnlineBookingSupport, res.Code)
			require.NotNil(t, res.ManualBooking)
			assert.NotEmpty(t, res.ManualBooking.Instructions)
		})
	}
}

func TestValidationCompleteness(t *testing.T) {
	type mutation struct {
		name   string
		mutate func(r *models.BookingRequest)
	}
	envelope := []mutation{
		{"venue", func(r *models.BookingRequest) { r.Venue = nil }},
		{"contact.name", func(r *models.BookingRequest) { r.Contact.Name = "" }},
		{"contact.email", func(r *models.BookingRequest) { r.Contact.Email = "" }},
		{"contact.email format", func(r *models.BookingRequest) { r.Contact.Email = "not-an-email" }},
		{"date", func(r *models.BookingRequest) { r.Date = "" }},
		{"date format", func(r *models.BookingRequest) { r.Date = "01/05/2030" }},
		{"partySize", func(r *models.BookingRequest) { r.PartySize = 0 }},
		{"details", func(r *models.BookingRequest) { r.Details = nil }},
	}
	perCategory := map[models.Category][]mutation{
		models.CategoryDining: {
			{"preferredTime", func(r *models.BookingRequest) { r.Details.(*models.DiningDetails).PreferredTime = "" }},
			{"preferredTime format", func(r *models.BookingRequest) { r.Details.(*models.DiningDetails).PreferredTime = "7pm" }},
			{"wrong payload", func(r *models.BookingRequest) { r.Details = &models.EntertainmentDetails{PreferredTime: "19:00"} }},
		},
		models.CategoryAccommodation: {
			{"checkIn", func(r *models.BookingRequest) { r.Details.(*models.AccommodationDetails).CheckIn = "" }},
			{"checkOut", func(r *models.BookingRequest) { r.Details.(*models.AccommodationDetails).CheckOut = "" }},
			{"rooms", func(r *models.BookingRequest) { r.Details.(*models.AccommodationDetails).Rooms = 0 }},
			{"checkOut before checkIn", func(r *models.BookingRequest) {
				r.Details.(*models.AccommodationDetails).CheckOut = "2030-04-30"
			}},
			{"same day stay", func(r *models.BookingRequest) {
				d := r.Details.(*models.AccommodationDetails)
				d.CheckOut = d.CheckIn
			}},
		},
		models.CategoryAttraction: {
			{"visitTime", func(r *models.BookingRequest) { r.Details.(*models.AttractionDetails).VisitTime = "" }},
			{"ticketType", func(r *models.BookingRequest) { r.Details.(*models.AttractionDetails).TicketType = "" }},
			{"ticketCount", func(r *models.BookingRequest) { r.Details.(*models.AttractionDetails).TicketCount = 0 }},
		},
		models.CategoryTransportation: {
			{"departureTime", func(r *models.BookingRequest) { r.Details.(*models.TransportationDetails).DepartureTime = "" }},
			{"arrivalTime", func(r *models.BookingRequest) { r.Details.(*models.TransportationDetails).ArrivalTime = "" }},
			{"mode", func(r *models.BookingRequest) { r.Details.(*models.TransportationDetails).Mode = "" }},
		},
		models.CategoryEntertainment: {
			{"preferredTime", func(r *models.BookingRequest) { r.Details.(*models.EntertainmentDetails).PreferredTime = "" }},
			{"negative ticketCount", func(r *models.BookingRequest) { r.Details.(*models.EntertainmentDetails).TicketCount = -1 }},
		},
	}

	for _, c := range models.Categories {
		for _, m := range append(append([]mutation{}, envelope...), perCategory[c]...) {
			t.Run(string(c)+"/"+m.name, func(t *testing.T) {
				h := newHarness(t, Options{})
				req := validRequest(c)
				m.mutate(&req)

				res := h.orch.CoordinateBooking(context.Background(), req)

				assert.False(t, res.Success)
				assert.Equal(t, models.CodeValidationError, res.Code)
				assert.False(t, res.Retryable)
				assert.NotEmpty(t, res.Message)
				assert.Zero(t, h.capability.calls.Load(), "capability check must not run")
				assert.Zero(t, h.executor.Calls())
				assert.Zero(t, h.reservations.checks)
			})
		}
	}
}

func TestValidRequestsPassEveryCategory(t *testing.T) {
	for _, c := range models.Categories {
		t.Run(string(c), func(t *testing.T) {
			h := newHarness(t, Options{})
			res := h.orch.CoordinateBooking(context.Background(), validRequest(c))
			require.True(t, res.Success, res.Message)
			assert.Regexp(t, regexp.MustCompile(`^[A-Z]{3}-[0-9A-Z]{4,8}$`), res.ConfirmationID)
			assert.EqualValues(t, 1, h.capability.calls.Load())
		})
	}
}

func TestUnsupportedCategory(t *testing.T) {
	h := newHarness(t, Options{})
	req := validRequest(models.CategoryDining)
	req.Category = "spa"

	res := h.orch.CoordinateBooking(context.Background(), req)
	assert.Equal(t, models.CodeUnsupportedCategory, res.Code)
	assert.False(t, res.Retryable)
	assert.Zero(t, h.capability.calls.Load())
}

func TestPanicBecomesOrchestrationError(t *testing.T) {
	h := newHarness(t, Options{})
	h.executor.panicWith = "reservation system exploded"

	var res models.BookingResult
	require.NotPanics(t, func() {
		res = h.orch.CoordinateBooking(context.Background(), validRequest(models.CategoryAttraction))
	})
	assert.False(t, res.Success)
	assert.Equal(t, models.CodeOrchestrationError, res.Code)
	assert.True(t, res.Retryable)
	assert.Contains(t, res.Message, "reservation system exploded")
}

func TestDiningTimeUnavailableOffersAlternatives(t *testing.T) {
	h := newHarness(t, Options{})
	h.reservations.unavailable = true
	h.reservations.alternatives = []string{"20:00", "21:00", "22:00"}

	res := h.orch.CoordinateBooking(context.Background(), validRequest(models.CategoryDining))
	assert.Equal(t, models.CodeTimeUnavailable, res.Code)
	assert.True(t, res.Retryable)
	assert.Equal(t, []string{"20:00", "21:00", "22:00"}, res.AlternativeTimes)
	assert.Empty(t, res.AlternativeVenues)
}

func TestDiningAvailabilityCheckError(t *testing.T) {
	h := newHarness(t, Options{})
	h.reservations.checkErr = errors.New("connection reset")

	res := h.orch.CoordinateBooking(context.Background(), validRequest(models.CategoryDining))
	assert.Equal(t, models.CodeAvailabilityCheckFailed, res.Code)
	assert.True(t, res.Retryable)
}

func TestExecutorFailureIsCategoryQualified(t *testing.T) {
	failed := hotel("h1", 4.2, true)
	catalogue := venue.NewMemoryProvider([]models.Venue{
		failed,
		hotel("h2", 4.9, true),
		hotel("h3", 3.1, true),
		hotel("h4", 4.5, false),
		hotel("h5", 4.0, true),
		hotel("h6", 3.5, true),
	})
	h := newHarness(t, Options{Venues: catalogue})
	h.executor.err = errors.New("upstream timeout")
	req := validRequest(models.CategoryAccommodation)
	req.Venue = &failed

	res := h.orch.CoordinateBooking(context.Background(), req)

	assert.False(t, res.Success)
	assert.Equal(t, models.CodeBookingFailed, res.Code)
	assert.Equal(t, "AccommodationBookingError", res.ErrorType)
	assert.True(t, res.Retryable)
	require.NotNil(t, res.ManualBooking)
	require.Len(t, res.AlternativeVenues, 3)
	assert.Equal(t, "h2", res.AlternativeVenues[0].ID)
	assert.Equal(t, "h5", res.AlternativeVenues[1].ID)
	assert.Equal(t, "h6", res.AlternativeVenues[2].ID)
}

func TestNonDiningCostsAndStatus(t *testing.T) {
	h := newHarness(t, Options{})
	ctx := context.Background()

	res := h.orch.CoordinateBooking(ctx, validRequest(models.CategoryAccommodation))
	assert.Equal(t, 1320.0, res.EstimatedCost) // 220 x 3 nights x 2 rooms
	assert.Equal(t, models.StatusConfirmed, res.Status)

	res = h.orch.CoordinateBooking(ctx, validRequest(models.CategoryAttraction))
	assert.Equal(t, 75.0, res.EstimatedCost)

	res = h.orch.CoordinateBooking(ctx, validRequest(models.CategoryEntertainment))
	assert.Equal(t, 40.0, res.EstimatedCost) // one ticket per guest

	res = h.orch.CoordinateBooking(ctx, validRequest(models.CategoryTransportation))
	assert.Equal(t, 25.0, res.EstimatedCost)
	assert.Equal(t, models.StatusPending, res.Status)
}

func TestVenueResolvedByID(t *testing.T) {
	catalogue := venue.NewMemoryProvider([]models.Venue{restaurant()})
	h := newHarness(t, Options{Venues: catalogue})
	ctx := context.Background()

	req := validRequest(models.CategoryDining)
	req.Venue = nil
	req.VenueID = "v-din"
	res := h.orch.CoordinateBooking(ctx, req)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Trattoria Roma", res.VenueName)

	req.VenueID = "missing"
	res = h.orch.CoordinateBooking(ctx, req)
	assert.Equal(t, models.CodeBusinessNotFound, res.Code)
	assert.False(t, res.Retryable)
}

func TestNotifierFailureDoesNotChangeResult(t *testing.T) {
	h := newHarness(t, Options{})
	h.notifier.err = errors.New("queue down")

	res := h.orch.CoordinateBooking(context.Background(), validRequest(models.CategoryDining))
	assert.True(t, res.Success)
	assert.Equal(t, 1, h.notifier.calls)
}

func TestMultiServiceBookingAggregateLaw(t *testing.T) {
	h := newHarness(t, Options{})
	offline := validRequest(models.CategoryAccommodation)
	v := hotel("h-offline", 4.0, false)
	offline.Venue = &v

	reqs := []models.BookingRequest{
		validRequest(models.CategoryDining),
		offline,
		validRequest(models.CategoryAttraction),
	}
	res := h.orch.CoordinateMultiServiceBooking(context.Background(), reqs)

	require.Len(t, res.Results, 3)
	assert.Equal(t, models.OverallPartialConfirmed, res.OverallStatus)
	assert.Equal(t, models.CategoryDining, res.Results[0].Category)
	assert.Equal(t, models.CategoryAccommodation, res.Results[1].Category)
	assert.Equal(t, models.CategoryAttraction, res.Results[2].Category)
	assert.Equal(t, 2, res.Confirmed)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, res.Results[0].EstimatedCost+res.Results[2].EstimatedCost, res.TotalCost)
}

func TestAggregate(t *testing.T) {
	ok := func(cost float64) models.BookingResult { return models.BookingResult{Success: true, EstimatedCost: cost} }
	fail := models.BookingResult{Code: models.CodeBookingFailed}

	tests := []struct {
		name    string
		results []models.BookingResult
		status  string
		total   float64
	}{
		{"all confirmed", []models.BookingResult{ok(10.5), ok(20.25)}, models.OverallAllConfirmed, 30.75},
		{"all failed", []models.BookingResult{fail, fail}, models.OverallAllFailed, 0},
		{"partial", []models.BookingResult{fail, ok(12)}, models.OverallPartialConfirmed, 12},
		{"empty", nil, models.OverallAllFailed, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(tt.results)
			assert.Equal(t, tt.status, agg.OverallStatus)
			assert.Equal(t, tt.total, agg.TotalCost)
			assert.NotNil(t, agg.Results)
		})
	}
}

func TestMultiServiceBookingPausesBetweenRequests(t *testing.T) {
	h := newHarness(t, Options{BatchPause: 30 * time.Millisecond})
	reqs := []models.BookingRequest{
		validRequest(models.CategoryAttraction),
		validRequest(models.CategoryAttraction),
		validRequest(models.CategoryAttraction),
	}

	start := time.Now()
	res := h.orch.CoordinateMultiServiceBooking(context.Background(), reqs)
	assert.GreaterOrEqual(t, time.Since(start), 55*time.Millisecond)
	assert.Equal(t, models.OverallAllConfirmed, res.OverallStatus)
}

// timedExecutor takes a fixed time per booking and records when each one ran.
type timedExecutor struct {
	took   time.Duration
	starts []time.Time
	ends   []time.Time
}

func (e *timedExecutor) Execute(_ context.Context, _ models.Venue, req models.BookingRequest) (string, error) {
	e.starts = append(e.starts, time.Now())
	time.Sleep(e.took)
	e.ends = append(e.ends, time.Now())
	return NewConfirmationID(req.Category), nil
}

func TestMultiServiceBookingPauseFollowsSlowBookings(t *testing.T) {
	exec := &timedExecutor{took: 60 * time.Millisecond}
	orch := NewOrchestrator(Options{Executor: exec, BatchPause: 40 * time.Millisecond})
	reqs := []models.BookingRequest{
		validRequest(models.CategoryAttraction),
		validRequest(models.CategoryAttraction),
		validRequest(models.CategoryAttraction),
	}

	res := orch.CoordinateMultiServiceBooking(context.Background(), reqs)
	require.Equal(t, models.OverallAllConfirmed, res.OverallStatus)
	require.Len(t, exec.starts, 3)
	for i := 1; i < 3; i++ {
		gap := exec.starts[i].Sub(exec.ends[i-1])
		assert.GreaterOrEqual(t, gap, 40*time.Millisecond, "gap before booking %d", i)
	}
}

func TestMultiServiceBookingCancelledPauseStillBooksEverything(t *testing.T) {
	h := newHarness(t, Options{BatchPause: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reqs := []models.BookingRequest{validRequest(models.CategoryAttraction), validRequest(models.CategoryAttraction)}
	res := h.orch.CoordinateMultiServiceBooking(ctx, reqs)
	assert.Len(t, res.Results, 2)
}

func TestCheckAvailability(t *testing.T) {
	h := newHarness(t, Options{Availability: NewSimulatedAvailability(nil, &fakeReservations{})})
	ctx := context.Background()

	a, err := h.orch.CheckAvailability(ctx, restaurant(), models.CategoryDining, "2030-05-01", &models.DiningDetails{PreferredTime: "19:00"})
	require.NoError(t, err)
	assert.True(t, a.Available)

	_, err = h.orch.CheckAvailability(ctx, restaurant(), "spa", "2030-05-01", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(models.CodeUnsupportedCategory))
}

func TestCheckAvailabilityWrapsUpstreamErrors(t *testing.T) {
	reservations := &fakeReservations{checkErr: errors.New("dial tcp: timeout")}
	h := newHarness(t, Options{Availability: NewSimulatedAvailability(nil, reservations)})

	_, err := h.orch.CheckAvailability(context.Background(), restaurant(), models.CategoryDining, "2030-05-01", &models.DiningDetails{PreferredTime: "19:00"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(models.CodeAvailabilityCheckFailed))
}
