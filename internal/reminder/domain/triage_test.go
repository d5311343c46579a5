package domain

import (
	"testing"
	"time"

	taskdomain "taskflow-backend/internal/task/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeTask(t *testing.T) taskdomain.Task {
	t.Helper()
	task, err := taskdomain.CreateTask(taskdomain.CreateParams{ID: "task-1", Title: "Call the dentist"}, now)
	require.NoError(t, err)
	return task
}

func TestTriageReminder_DecisionTable(t *testing.T) {
	due := now.Add(2 * time.Hour)

	active := activeTask(t)
	completed, _ := taskdomain.CompleteTask(active, now)
	canceled, _ := taskdomain.CancelTask(active, now)
	deleted, _ := taskdomain.DeleteTask(active, now)

	tests := []struct {
		name       string
		task       *taskdomain.Task
		want       Outcome
		wantStatus Status
	}{
		{"no task", nil, OutcomeDismiss, StatusDismissed},
		{"completed task", &completed, OutcomeDismiss, StatusDismissed},
		{"canceled task", &canceled, OutcomeDismiss, StatusDismissed},
		{"deleted active task", &deleted, OutcomeDismiss, StatusDismissed},
		{"active task", &active, OutcomeSend, StatusSent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TriageReminder(pending(t), tt.task, due)

			assert.Equal(t, tt.want, result.Outcome)
			assert.Equal(t, tt.wantStatus, result.Reminder.Status)
			assert.Equal(t, due, result.Reminder.UpdatedAt)
			assert.NoError(t, result.Err)
			if tt.want == OutcomeSend {
				require.NotNil(t, result.Task)
				assert.Equal(t, active.ID, result.Task.ID)
			} else {
				assert.Nil(t, result.Task)
			}
		})
	}
}

func TestTriageReminder_SkipsWhenMutatorRejects(t *testing.T) {
	active := activeTask(t)

	dismissed, err := DismissReminder(pending(t), now)
	require.NoError(t, err)
	result := TriageReminder(dismissed, nil, now)
	assert.Equal(t, OutcomeSkip, result.Outcome)
	assert.Equal(t, dismissed, result.Reminder)
	assert.Error(t, result.Err)

	sent, err := MarkReminderSent(pending(t), now)
	require.NoError(t, err)
	result = TriageReminder(sent, &active, now)
	assert.Equal(t, OutcomeSkip, result.Outcome)
	assert.Equal(t, StatusSent, result.Reminder.Status)
	assert.Error(t, result.Err)
}
