package booking

import (
	"context"
	"fmt"
	"time"

	"concierge/models"
	"concierge/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the part of *asynq.Client the reminder notifier needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderNotifier schedules a reminder Lead before each confirmed booking starts.
type ReminderNotifier struct {
	Queue  Enqueuer
	Lead   time.Duration
	Logger *zap.Logger
	now    func() time.Time
}

func NewReminderNotifier(queue Enqueuer, lead time.Duration, logger *zap.Logger) *ReminderNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderNotifier{Queue: queue, Lead: lead, Logger: logger, now: time.Now}
}

// BookingConfirmed enqueues the reminder. Bookings that start too soon get none.
func (n *ReminderNotifier) BookingConfirmed(ctx context.Context, req models.BookingRequest, result models.BookingResult) error {
	start, ok := bookingStart(req)
	if !ok {
		return nil
	}
	fireAt := start.Add(-n.Lead)
	if !fireAt.After(n.now()) {
		n.Logger.Debug("booking starts too soon for a reminder", zap.String("confirmationID", result.ConfirmationID))
		return nil
	}

	payload := tasks.ReminderPayload{
		ConfirmationID: result.ConfirmationID,
		VenueName:      result.VenueName,
		Category:       string(result.Category),
		ContactName:    req.Contact.Name,
		ContactEmail:   req.Contact.Email,
		StartsAt:       start,
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	if _, err := n.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	n.Logger.Info("booking reminder scheduled",
		zap.String("confirmationID", result.ConfirmationID),
		zap.Time("fireAt", fireAt))
	return nil
}

// checkInClock is when hotel stays are assumed to start.
const checkInClock = "15:00"

// bookingStart combines the booking date with the category's time of day.
func bookingStart(req models.BookingRequest) (time.Time, bool) {
	date, clock := req.Date, requestedClock(req.Details)
	if d, ok := detailsAs[models.AccommodationDetails](req.Details); ok {
		date, clock = d.CheckIn, checkInClock
	}
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.ParseInLocation(dateLayout+" "+clockLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
