package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"taskflow-backend/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newTask(t *testing.T) Task {
	t.Helper()
	task, err := CreateTask(CreateParams{
		ID:          "task-1",
		Title:       "Water the plants",
		OwnerUserID: "user-1",
		WorkspaceID: "ws-1",
	}, now)
	require.NoError(t, err)
	return task
}

func taskIn(t *testing.T, status Status) Task {
	t.Helper()
	task := newTask(t)
	switch status {
	case StatusCompleted:
		task, _ = CompleteTask(task, now)
	case StatusCanceled:
		task, _ = CancelTask(task, now)
	}
	require.Equal(t, status, task.Status)
	return task
}

func TestCreateTask_NormalizesInputs(t *testing.T) {
	due := time.Date(2025, 6, 20, 17, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))
	project := shared.ProjectID("proj-1")
	rule := shared.RecurrenceRuleID("rule-1")

	task, err := CreateTask(CreateParams{
		ID:               "task-1",
		Title:            "  Pay rent  ",
		OwnerUserID:      "user-1",
		WorkspaceID:      "ws-1",
		ProjectID:        &project,
		DueAt:            &due,
		Notes:            ptr("  transfer before noon "),
		TagIDs:           shared.TagIDs{"home", "money", "home"},
		RecurrenceRuleID: &rule,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, TaskID("task-1"), task.ID)
	assert.Equal(t, "Pay rent", task.Title)
	assert.Equal(t, "transfer before noon", *task.Notes)
	assert.Equal(t, StatusActive, task.Status)
	assert.Equal(t, project, *task.ProjectID)
	assert.True(t, due.Equal(*task.DueAt))
	assert.Equal(t, time.UTC, task.DueAt.Location())
	assert.Equal(t, shared.TagIDs{"home", "money"}, task.TagIDs)
	assert.Equal(t, rule, *task.RecurrenceRuleID)
	assert.Nil(t, task.CompletedAt)
	assert.Nil(t, task.DeletedAt)
	assert.Equal(t, now, task.CreatedAt)
	assert.Equal(t, now, task.UpdatedAt)
}

func TestCreateTask_BlankNotesBecomeNil(t *testing.T) {
	task, err := CreateTask(CreateParams{ID: "t", Title: "x", Notes: ptr("   ")}, now)
	require.NoError(t, err)
	assert.Nil(t, task.Notes)
}

func TestCreateTask_TitleBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"exactly 200", strings.Repeat("a", 200), false},
		{"201", strings.Repeat("a", 201), true},
		{"empty", "", true},
		{"whitespace", "    ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateTask(CreateParams{ID: "t", Title: tt.title}, now)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *shared.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "title", verr.Field)
		})
	}
}

// Every (status, operation) pair yields either a specific status or a
// specific error type.
func TestStateMachine_Totality(t *testing.T) {
	later := now.Add(time.Hour)
	rename := UpdateParams{Title: shared.Some("Renamed")}

	type op func(Task) (Task, error)
	ops := map[string]op{
		"complete":   func(t Task) (Task, error) { return CompleteTask(t, later) },
		"uncomplete": func(t Task) (Task, error) { return UncompleteTask(t, later) },
		"cancel":     func(t Task) (Task, error) { return CancelTask(t, later) },
		"update":     func(t Task) (Task, error) { return UpdateTask(t, rename, later) },
	}

	tests := []struct {
		from Status
		op   string
		want Status // empty means InvalidStateTransitionError
	}{
		{StatusActive, "complete", StatusCompleted},
		{StatusActive, "uncomplete", ""},
		{StatusActive, "cancel", StatusCanceled},
		{StatusActive, "update", StatusActive},
		{StatusCompleted, "complete", ""},
		{StatusCompleted, "uncomplete", StatusActive},
		{StatusCompleted, "cancel", StatusCanceled},
		{StatusCompleted, "update", StatusCompleted},
		{StatusCanceled, "complete", ""},
		{StatusCanceled, "uncomplete", ""},
		{StatusCanceled, "cancel", ""},
		{StatusCanceled, "update", StatusCanceled},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+tt.op, func(t *testing.T) {
			before := taskIn(t, tt.from)
			got, err := ops[tt.op](before)

			if tt.want == "" {
				var terr *shared.InvalidStateTransitionError
				require.True(t, errors.As(err, &terr), "expected transition error, got %v", err)
				assert.Equal(t, "task", terr.Entity)
				assert.Equal(t, string(tt.from), terr.From)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
			switch {
			case got.Status == StatusCompleted:
				assert.NotNil(t, got.CompletedAt)
			case tt.from == StatusCompleted && tt.op == "cancel":
				assert.NotNil(t, got.CompletedAt, "cancel keeps the completion time")
			default:
				assert.Nil(t, got.CompletedAt)
			}
			assert.Equal(t, later, got.UpdatedAt)
			assert.Equal(t, tt.from, before.Status, "input must not change")
		})
	}
}

func TestCompleteTask_SetsCompletedAt(t *testing.T) {
	done, err := CompleteTask(newTask(t), now)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, now, *done.CompletedAt)

	_, err = CompleteTask(done, now)
	var terr *shared.InvalidStateTransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "completed", terr.To)
	assert.Equal(t, "task is already completed", terr.Message)
}

func TestUncompleteTask_ClearsCompletedAt(t *testing.T) {
	reopened, err := UncompleteTask(taskIn(t, StatusCompleted), now)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, reopened.Status)
	assert.Nil(t, reopened.CompletedAt)
}

func TestCancelTask_CompletedKeepsCompletedAt(t *testing.T) {
	canceled, err := CancelTask(taskIn(t, StatusCompleted), now)
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, canceled.Status)
	assert.NotNil(t, canceled.CompletedAt)

	_, err = CancelTask(canceled, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already canceled")
}

func TestUpdateTask_NoOpOnlyTouchesUpdatedAt(t *testing.T) {
	original := newTask(t)
	later := now.Add(time.Minute)

	updated, err := UpdateTask(original, UpdateParams{}, later)
	require.NoError(t, err)

	expected := original
	expected.UpdatedAt = later
	assert.Equal(t, expected, updated)
}

func TestUpdateTask_TriState(t *testing.T) {
	due := now.Add(48 * time.Hour)
	project := shared.ProjectID("proj-1")
	original, err := CreateTask(CreateParams{
		ID: "t", Title: "Draft", Notes: ptr("n"), ProjectID: &project, DueAt: &due,
		TagIDs: shared.TagIDs{"a"},
	}, now)
	require.NoError(t, err)

	cleared, err := UpdateTask(original, UpdateParams{
		Notes:     shared.Null[string](),
		ProjectID: shared.Null[shared.ProjectID](),
		DueAt:     shared.Null[time.Time](),
		TagIDs:    shared.Null[shared.TagIDs](),
	}, now)
	require.NoError(t, err)
	assert.Nil(t, cleared.Notes)
	assert.Nil(t, cleared.ProjectID)
	assert.Nil(t, cleared.DueAt)
	assert.Empty(t, cleared.TagIDs)
	assert.Equal(t, "Draft", cleared.Title)

	newDue := now.Add(72 * time.Hour)
	replaced, err := UpdateTask(original, UpdateParams{
		Title:  shared.Some("  Final  "),
		Notes:  shared.Some("  "),
		DueAt:  shared.Some(newDue),
		TagIDs: shared.Some(shared.TagIDs{"b", "b", "c"}),
	}, now)
	require.NoError(t, err)
	assert.Equal(t, "Final", replaced.Title)
	assert.Nil(t, replaced.Notes)
	assert.Equal(t, newDue, *replaced.DueAt)
	assert.Equal(t, shared.TagIDs{"b", "c"}, replaced.TagIDs)
	assert.Equal(t, project, *replaced.ProjectID)
	assert.Equal(t, shared.TagIDs{"a"}, original.TagIDs)
}

func TestUpdateTask_RejectsBadTitle(t *testing.T) {
	task := newTask(t)

	for name, p := range map[string]UpdateParams{
		"null":  {Title: shared.Null[string]()},
		"blank": {Title: shared.Some("  ")},
		"long":  {Title: shared.Some(strings.Repeat("x", 201))},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := UpdateTask(task, p, now)
			var verr *shared.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "title", verr.Field)
		})
	}
}

func TestDeleteTask(t *testing.T) {
	deleted, err := DeleteTask(newTask(t), now)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted())

	_, err = DeleteTask(deleted, now)
	assert.Error(t, err)
}

func TestIsOverdue(t *testing.T) {
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	active := newTask(t)
	assert.False(t, IsOverdue(active, now), "no due date")

	active.DueAt = &past
	assert.True(t, IsOverdue(active, now))

	active.DueAt = &now
	assert.False(t, IsOverdue(active, now), "due exactly now is not overdue")

	active.DueAt = &future
	assert.False(t, IsOverdue(active, now))

	done := taskIn(t, StatusCompleted)
	done.DueAt = &past
	assert.False(t, IsOverdue(done, now))
}

func TestIsDueOn(t *testing.T) {
	task := taskIn(t, StatusCanceled)
	assert.False(t, IsDueOn(task, now))

	due := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)
	task.DueAt = &due
	assert.True(t, IsDueOn(task, now))
	assert.False(t, IsDueOn(task, now.AddDate(0, 0, 1)))

	// 01:00 at UTC+3 on the 16th is still the 15th in UTC.
	local := time.Date(2025, 6, 16, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))
	assert.True(t, IsDueOn(task, local))
}

func TestAllowedTransitions(t *testing.T) {
	assert.True(t, CanTransition(StatusActive, StatusCompleted))
	assert.True(t, CanTransition(StatusActive, StatusCanceled))
	assert.True(t, CanTransition(StatusCompleted, StatusActive))
	assert.True(t, CanTransition(StatusCanceled, StatusActive))
	assert.False(t, CanTransition(StatusCompleted, StatusCanceled))
	assert.False(t, CanTransition(StatusCanceled, StatusCompleted))

	// CancelTask is broader than the table.
	_, err := CancelTask(taskIn(t, StatusCompleted), now)
	assert.NoError(t, err)

	list := AllowedTransitions(StatusActive)
	list[0] = StatusCanceled
	assert.Equal(t, []Status{StatusCompleted, StatusCanceled}, AllowedTransitions(StatusActive))
}
