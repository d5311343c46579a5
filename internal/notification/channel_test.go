package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	authdomain "taskflow-backend/internal/auth/domain"
	reminderdomain "taskflow-backend/internal/reminder/domain"
	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"
	"taskflow-backend/pkg/fcm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryTokens struct {
	byUser  map[shared.UserID][]string
	deleted []string
}

func (m *memoryTokens) GetTokensByUserID(_ context.Context, userID shared.UserID) ([]authdomain.FCMToken, error) {
	var out []authdomain.FCMToken
	for _, tok := range m.byUser[userID] {
		out = append(out, authdomain.FCMToken{UserID: userID, Token: tok})
	}
	return out, nil
}

func (m *memoryTokens) DeleteToken(_ context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	return nil
}

type fakeSender struct {
	calls  int
	tokens []string
	sent   fcm.NotificationData
	reject []string
	err    error
}

func (f *fakeSender) SendToDevices(_ context.Context, tokens []string, n fcm.NotificationData) ([]string, error) {
	f.calls++
	f.tokens = tokens
	f.sent = n
	return f.reject, f.err
}

var now = time.Date(2026, 8, 3, 7, 30, 0, 0, time.UTC)

func fixture(t *testing.T) (reminderdomain.Reminder, taskdomain.Task) {
	due := now.Add(2 * time.Hour)
	notes := "bring the receipt"
	task, err := taskdomain.CreateTask(taskdomain.CreateParams{
		ID: "t1", Title: "Return parcel", OwnerUserID: "alice", WorkspaceID: "alice", DueAt: &due, Notes: &notes,
	}, now)
	require.NoError(t, err)
	r, err := reminderdomain.CreateReminder("r1", task.ID, task.WorkspaceID, now.Add(time.Hour), now)
	require.NoError(t, err)
	return r, task
}

func TestFCMChannel_SendsAndPrunesRejectedTokens(t *testing.T) {
	tokens := &memoryTokens{byUser: map[shared.UserID][]string{"alice": {"good", "stale"}}}
	sender := &fakeSender{reject: []string{"stale"}}
	ch := NewFCMChannel(tokens, sender)

	r, task := fixture(t)
	require.NoError(t, ch.Send(context.Background(), r, task))

	assert.Equal(t, []string{"good", "stale"}, sender.tokens)
	assert.Equal(t, "Reminder: Return parcel", sender.sent.Title)
	assert.Contains(t, sender.sent.Body, "bring the receipt")
	assert.Equal(t, "r1", sender.sent.Data["reminder_id"])
	assert.Equal(t, []string{"stale"}, tokens.deleted)
}

func TestFCMChannel_NoDevicesIsNoop(t *testing.T) {
	sender := &fakeSender{}
	ch := NewFCMChannel(&memoryTokens{}, sender)

	r, task := fixture(t)
	require.NoError(t, ch.Send(context.Background(), r, task))
	assert.Zero(t, sender.calls)
}

func TestFCMChannel_PropagatesSendError(t *testing.T) {
	tokens := &memoryTokens{byUser: map[shared.UserID][]string{"alice": {"good"}}}
	ch := NewFCMChannel(tokens, &fakeSender{err: errors.New("quota exceeded")})

	r, task := fixture(t)
	assert.Error(t, ch.Send(context.Background(), r, task))
	assert.Empty(t, tokens.deleted)
}
