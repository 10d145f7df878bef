package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"concierge/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHandleReminderTaskLogsReminder(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := HandleReminderTask(zap.New(core))

	task, _, err := tasks.NewReminderTask(tasks.ReminderPayload{ConfirmationID: "DIN-ABCDEF12", VenueName: "Trattoria Roma"}, time.Now())
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	entries := logs.FilterMessage("booking reminder").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "DIN-ABCDEF12", entries[0].ContextMap()["confirmationID"])
}

func TestHandleReminderTaskRejectsBadPayload(t *testing.T) {
	handler := HandleReminderTask(zap.NewNop())
	err := handler(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
