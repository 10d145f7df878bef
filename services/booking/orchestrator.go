package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"concierge/metrics"
	"concierge/models"
	"concierge/services/classify"
	"concierge/services/venue"

	"go.uber.org/zap"
)

// Options configures a DefaultOrchestrator. Nil collaborators get simulated defaults.
type Options struct {
	Venues       venue.Provider
	Capability   CapabilityChecker
	Availability AvailabilityChecker
	Reservations ReservationService
	Executor     BookingExecutor
	Notifier     Notifier
	Logger       *zap.Logger
	// BatchPause is the gap between sub-bookings of a multi-venue booking.
	BatchPause time.Duration
}

// DefaultOrchestrator implements Orchestrator.
type DefaultOrchestrator struct {
	venues       venue.Provider
	capability   CapabilityChecker
	availability AvailabilityChecker
	notifier     Notifier
	logger       *zap.Logger
	batchPause   time.Duration
	handlers     map[models.Category]categoryHandler
}

func NewOrchestrator(opts Options) *DefaultOrchestrator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Capability == nil {
		opts.Capability = TransactionCapability{}
	}
	if opts.Reservations == nil {
		opts.Reservations = NewSimulatedReservations(nil, availabilityOdds[models.CategoryDining], 0)
	}
	if opts.Executor == nil {
		opts.Executor = NewSimulatedExecutor(nil, 1, 0)
	}
	if opts.Availability == nil {
		opts.Availability = NewSimulatedAvailability(rand.New(rand.NewSource(time.Now().UnixNano())), opts.Reservations)
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}

	o := &DefaultOrchestrator{
		venues:       opts.Venues,
		capability:   opts.Capability,
		availability: opts.Availability,
		notifier:     opts.Notifier,
		logger:       opts.Logger,
		batchPause:   opts.BatchPause,
		handlers:     make(map[models.Category]categoryHandler),
	}
	for _, h := range []categoryHandler{
		diningHandler{reservations: opts.Reservations},
		accommodationHandler{executor: opts.Executor},
		attractionHandler{executor: opts.Executor},
		transportationHandler{executor: opts.Executor},
		entertainmentHandler{executor: opts.Executor},
	} {
		o.handlers[h.Category()] = h
	}
	return o
}

// CoordinateBooking validates, dispatches and executes one booking. It always
// returns a result; panics are converted into an OrchestrationError result.
func (o *DefaultOrchestrator) CoordinateBooking(ctx context.Context, req models.BookingRequest) (result models.BookingResult) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("booking panicked",
				zap.String("category", string(req.Category)),
				zap.Any("panic", r))
			result = failedResult(req, classify.New(models.CodeOrchestrationError, fmt.Sprintf("unexpected error: %v", r)))
		}
		metrics.ObserveBooking(result)
	}()

	result = o.coordinate(ctx, req)
	if result.Success {
		o.logger.Info("booking confirmed",
			zap.String("venueID", result.VenueID),
			zap.String("category", string(result.Category)),
			zap.String("confirmationID", result.ConfirmationID))
		if err := o.notifier.BookingConfirmed(ctx, req, result); err != nil {
			o.logger.Warn("booking notification failed", zap.String("confirmationID", result.ConfirmationID), zap.Error(err))
		}
	} else {
		o.logger.Info("booking not completed",
			zap.String("venueID", result.VenueID),
			zap.String("category", string(result.Category)),
			zap.String("code", string(result.Code)))
	}
	return result
}

func (o *DefaultOrchestrator) coordinate(ctx context.Context, req models.BookingRequest) models.BookingResult {
	if err := validateEnvelope(&req); err != nil {
		return failedResult(req, err)
	}

	h, ok := o.handlers[req.Category]
	if !ok {
		return failedResult(req, classify.New(models.CodeUnsupportedCategory, fmt.Sprintf("unsupported category %q", req.Category)))
	}
	if err := validateDetails(&req); err != nil {
		return failedResult(req, err)
	}
	if err := h.Validate(req); err != nil {
		return failedResult(req, err)
	}

	if req.Venue == nil {
		v, err := o.resolveVenue(ctx, req.VenueID)
		if err != nil {
			return failedResult(req, err)
		}
		req.Venue = v
	}

	if !o.capability.Supports(*req.Venue, req.Category) {
		result := failedResult(req, classify.New(models.CodeNoOnlineBookingSupport,
			fmt.Sprintf("%s does not accept online %s bookings", req.Venue.Name, req.Category)))
		result.ManualBooking = ManualBookingFor(*req.Venue)
		return result
	}

	exec, err := h.Execute(ctx, req)
	if err != nil {
		return o.executionFailure(ctx, req, err)
	}
	return confirmedResult(req, exec.ConfirmationID, exec.Cost, exec.Status)
}

// executionFailure shapes an error from a handler's execute step. Errors
// without a taxonomy code are wrapped as a category-qualified booking error.
func (o *DefaultOrchestrator) executionFailure(ctx context.Context, req models.BookingRequest, err error) models.BookingResult {
	var f *classify.Failure
	if !errors.As(err, &f) {
		err = classify.Wrap(models.CodeBookingFailed, err, fmt.Sprintf("%s booking at %s failed", req.Category, req.Venue.Name))
	}
	result := failedResult(req, err)

	var slot *SlotUnavailableError
	if errors.As(err, &slot) {
		result.AlternativeTimes = slot.Alternatives
	}
	if result.Code == models.CodeBookingFailed {
		result.ErrorType = bookingErrorType(req.Category)
		result.ManualBooking = ManualBookingFor(*req.Venue)
		result.AlternativeVenues = alternativeVenues(ctx, o.venues, *req.Venue, req.Category, o.logger)
	}
	o.logger.Warn("booking execution failed",
		zap.String("venueID", req.Venue.ID),
		zap.String("category", string(req.Category)),
		zap.String("code", string(result.Code)),
		zap.Error(err))
	return result
}

func (o *DefaultOrchestrator) resolveVenue(ctx context.Context, id string) (*models.Venue, error) {
	if o.venues == nil {
		return nil, classify.New(models.CodeBusinessNotFound, fmt.Sprintf("venue %q cannot be resolved", id))
	}
	v, err := o.venues.GetByID(ctx, id)
	if err != nil {
		var f *classify.Failure
		if errors.As(err, &f) {
			return nil, err
		}
		return nil, classify.Wrap(models.CodeAvailabilityCheckFailed, err, "venue lookup failed")
	}
	return v, nil
}

// CheckAvailability probes inventory for one venue.
func (o *DefaultOrchestrator) CheckAvailability(ctx context.Context, v models.Venue, category models.Category, date string, details models.BookingDetails) (models.Availability, error) {
	if _, ok := o.handlers[category]; !ok {
		return models.Availability{}, classify.New(models.CodeUnsupportedCategory, fmt.Sprintf("unsupported category %q", category))
	}
	a, err := o.availability.CheckAvailability(ctx, v, category, date, details)
	if err != nil {
		var f *classify.Failure
		if !errors.As(err, &f) {
			err = classify.Wrap(models.CodeAvailabilityCheckFailed, err, "availability check failed")
		}
		o.logger.Warn("availability check failed", zap.String("venueID", v.ID), zap.String("category", string(category)), zap.Error(err))
		return models.Availability{}, err
	}
	return a, nil
}

// CoordinateMultiServiceBooking books each request in order, one at a time,
// waiting the batch pause after each booking before starting the next. A
// failure does not stop the remaining bookings.
func (o *DefaultOrchestrator) CoordinateMultiServiceBooking(ctx context.Context, reqs []models.BookingRequest) models.MultiBookingResult {
	results := make([]models.BookingResult, 0, len(reqs))
	for i, req := range reqs {
		if i > 0 {
			if err := wait(ctx, o.batchPause); err != nil {
				o.logger.Debug("batch pause interrupted", zap.Int("index", i), zap.Error(err))
			}
		}
		results = append(results, o.CoordinateBooking(ctx, req))
	}
	return Aggregate(results)
}

// Aggregate derives the overall status and total cost of a set of bookings.
func Aggregate(results []models.BookingResult) models.MultiBookingResult {
	agg := models.MultiBookingResult{Results: results}
	if agg.Results == nil {
		agg.Results = []models.BookingResult{}
	}
	for _, r := range results {
		if r.Success {
			agg.Confirmed++
			agg.TotalCost += r.EstimatedCost
		} else {
			agg.Failed++
		}
	}
	// An empty batch booked nothing, so it counts as all_failed.
	switch {
	case agg.Confirmed == 0:
		agg.OverallStatus = models.OverallAllFailed
	case agg.Failed == 0:
		agg.OverallStatus = models.OverallAllConfirmed
	default:
		agg.OverallStatus = models.OverallPartialConfirmed
	}
	return agg
}

// RejectedResult is the failed result for a request the caller could not hand
// to CoordinateBooking, such as one whose body did not decode.
func RejectedResult(req models.BookingRequest, err error) models.BookingResult {
	result := failedResult(req, err)
	metrics.ObserveBooking(result)
	return result
}

// failedResult is the result for err classified by the shared taxonomy.
func failedResult(req models.BookingRequest, err error) models.BookingResult {
	c := classify.Classify(err)
	result := models.BookingResult{
		Category:         req.Category,
		VenueID:          req.VenueID,
		Date:             req.Date,
		PartySize:        req.PartySize,
		Status:           models.StatusFailed,
		Code:             c.Code,
		ErrorType:        string(c.Code),
		Message:          c.Message,
		Retryable:        c.Retryable,
		SuggestedActions: c.SuggestedActions,
	}
	if req.Venue != nil {
		result.VenueID = req.Venue.ID
		result.VenueName = req.Venue.Name
	}
	return result
}
