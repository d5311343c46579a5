package domain

import (
	"errors"
	"testing"
	"time"

	"taskflow-backend/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func pending(t *testing.T) Reminder {
	t.Helper()
	r, err := CreateReminder("rem-1", "task-1", "ws-1", now.Add(time.Hour), now)
	require.NoError(t, err)
	return r
}

func TestCreateReminder(t *testing.T) {
	r := pending(t)
	assert.Equal(t, StatusPending, r.Status)
	assert.Equal(t, now.Add(time.Hour), r.RemindAt)

	for name, remindAt := range map[string]time.Time{
		"equal to now": now,
		"in the past":  now.Add(-time.Second),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := CreateReminder("rem", "task", "ws", remindAt, now)
			var verr *shared.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "remindAt", verr.Field)
		})
	}
}

func TestUpdateReminderTime(t *testing.T) {
	r := pending(t)

	moved, err := UpdateReminderTime(r, now.Add(2*time.Hour), now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(2*time.Hour), moved.RemindAt)
	assert.Equal(t, now.Add(time.Hour), r.RemindAt, "input must not change")

	_, err = UpdateReminderTime(r, now, now)
	var verr *shared.ValidationError
	assert.True(t, errors.As(err, &verr))

	sent, err := MarkReminderSent(r, now)
	require.NoError(t, err)
	_, err = UpdateReminderTime(sent, now.Add(2*time.Hour), now)
	var terr *shared.InvalidStateTransitionError
	assert.True(t, errors.As(err, &terr))

	dismissed, err := DismissReminder(r, now)
	require.NoError(t, err)
	_, err = UpdateReminderTime(dismissed, now.Add(2*time.Hour), now)
	assert.True(t, errors.As(err, &terr))
}

func TestDismissReminder(t *testing.T) {
	r := pending(t)
	dismissed, err := DismissReminder(r, now)
	require.NoError(t, err)
	assert.Equal(t, StatusDismissed, dismissed.Status)

	sent, err := MarkReminderSent(r, now)
	require.NoError(t, err)
	dismissedAfterSend, err := DismissReminder(sent, now)
	require.NoError(t, err)
	assert.Equal(t, StatusDismissed, dismissedAfterSend.Status)

	_, err = DismissReminder(dismissed, now)
	var terr *shared.InvalidStateTransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "dismissed", terr.From)
}

func TestMarkReminderSent(t *testing.T) {
	sent, err := MarkReminderSent(pending(t), now)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, sent.Status)

	_, err = MarkReminderSent(sent, now)
	assert.Error(t, err)
}

func TestIsDue(t *testing.T) {
	r := pending(t)
	assert.False(t, IsDue(r, now))
	assert.True(t, IsDue(r, r.RemindAt))
	assert.True(t, IsDue(r, r.RemindAt.Add(time.Minute)))

	sent, _ := MarkReminderSent(r, now)
	assert.False(t, IsDue(sent, r.RemindAt.Add(time.Minute)))
}
