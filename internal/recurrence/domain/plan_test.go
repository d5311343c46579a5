package domain

import (
	"testing"

	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recurringTask(t *testing.T, ruleID *shared.RecurrenceRuleID) taskdomain.Task {
	t.Helper()
	due := at("2025-06-20T09:00:00Z")
	notes := "bring the blue bin too"
	project := shared.ProjectID("home")
	task, err := taskdomain.CreateTask(taskdomain.CreateParams{
		ID:               "task-1",
		Title:            "Take out recycling",
		OwnerUserID:      "user-1",
		WorkspaceID:      "ws-1",
		ProjectID:        &project,
		DueAt:            &due,
		Notes:            &notes,
		TagIDs:           shared.TagIDs{"chores"},
		RecurrenceRuleID: ruleID,
	}, at("2025-06-01T00:00:00Z"))
	require.NoError(t, err)
	return task
}

func TestBuildNextRecurringTask(t *testing.T) {
	rule := mustRule(t, RuleParams{Frequency: FrequencyWeekly, DaysOfWeek: []int{1, 3, 5}})
	task := recurringTask(t, &rule.ID)
	completedAt := at("2025-06-21T12:00:00Z")
	done, err := taskdomain.CompleteTask(task, completedAt)
	require.NoError(t, err)

	params, err := BuildNextRecurringTask(done, rule, "task-2", completedAt)
	require.NoError(t, err)

	assert.Equal(t, taskdomain.TaskID("task-2"), params.ID)
	assert.Equal(t, done.Title, params.Title)
	assert.Equal(t, done.OwnerUserID, params.OwnerUserID)
	assert.Equal(t, done.WorkspaceID, params.WorkspaceID)
	assert.Equal(t, *done.Notes, *params.Notes)
	assert.Equal(t, *done.ProjectID, *params.ProjectID)
	assert.Equal(t, done.TagIDs, params.TagIDs)
	assert.Equal(t, rule.ID, *params.RecurrenceRuleID)
	assert.Equal(t, at("2025-06-23T09:00:00Z"), *params.DueAt)

	next, err := taskdomain.CreateTask(params, completedAt)
	require.NoError(t, err)
	assert.Equal(t, taskdomain.StatusActive, next.Status)

	params.TagIDs[0] = "changed"
	assert.Equal(t, shared.TagIDs{"chores"}, done.TagIDs)
}

func TestPlanReplace(t *testing.T) {
	now := at("2025-06-15T09:00:00Z")
	oldID := shared.RecurrenceRuleID("old")
	task := recurringTask(t, &oldID)
	rule, err := CreateRule("new", RuleParams{Frequency: FrequencyDaily}, now)
	require.NoError(t, err)

	change := PlanReplace(task, rule, now)

	require.NotNil(t, change.DeleteRuleID)
	assert.Equal(t, oldID, *change.DeleteRuleID)
	require.NotNil(t, change.SaveRule)
	assert.Equal(t, rule.ID, change.SaveRule.ID)
	assert.Equal(t, rule.ID, *change.Task.RecurrenceRuleID)
	assert.Equal(t, oldID, *task.RecurrenceRuleID)

	fresh := recurringTask(t, nil)
	change = PlanReplace(fresh, rule, now)
	assert.Nil(t, change.DeleteRuleID)
}

func TestPlanRemove(t *testing.T) {
	now := at("2025-06-15T09:00:00Z")
	_, ok := PlanRemove(recurringTask(t, nil), now)
	assert.False(t, ok)

	id := shared.RecurrenceRuleID("r1")
	change, ok := PlanRemove(recurringTask(t, &id), now)
	require.True(t, ok)
	assert.Nil(t, change.SaveRule)
	assert.Equal(t, id, *change.DeleteRuleID)
	assert.Nil(t, change.Task.RecurrenceRuleID)
	assert.Equal(t, now, change.Task.UpdatedAt)
}
