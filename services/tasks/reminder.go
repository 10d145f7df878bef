package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// ReminderPayload is the body of a booking reminder task.
type ReminderPayload struct {
	ConfirmationID string    `json:"confirmationId"`
	VenueName      string    `json:"venueName"`
	Category       string    `json:"category"`
	ContactName    string    `json:"contactName"`
	ContactEmail   string    `json:"contactEmail"`
	StartsAt       time.Time `json:"startsAt"`
}

// NewReminderTask builds a task that fires at fireAt. The task id is derived
// from the confirmation id so a booking is never reminded twice.
func NewReminderTask(payload ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	if payload.ConfirmationID != "" {
		opts = append(opts, asynq.TaskID("reminder:"+payload.ConfirmationID))
	}
	return task, opts, nil
}

// ParseReminder decodes a reminder task payload.
func ParseReminder(task *asynq.Task) (ReminderPayload, error) {
	var p ReminderPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
