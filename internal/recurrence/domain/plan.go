package domain

import (
	"time"

	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"
)

// BuildNextRecurringTask returns the parameters of the task that follows
// completed. It only builds parameters; creating and storing the task is the
// caller's job.
func BuildNextRecurringTask(completed taskdomain.Task, rule Rule, nextID taskdomain.TaskID, completedAt time.Time) (taskdomain.CreateParams, error) {
	nextDue, err := ComputeNextDueDate(rule, completed.DueAt, completedAt)
	if err != nil {
		return taskdomain.CreateParams{}, err
	}

	ruleID := rule.ID
	if completed.RecurrenceRuleID != nil {
		ruleID = *completed.RecurrenceRuleID
	}

	var notes *string
	if completed.Notes != nil {
		n := *completed.Notes
		notes = &n
	}
	var project *shared.ProjectID
	if completed.ProjectID != nil {
		p := *completed.ProjectID
		project = &p
	}

	return taskdomain.CreateParams{
		ID:               nextID,
		Title:            completed.Title,
		OwnerUserID:      completed.OwnerUserID,
		WorkspaceID:      completed.WorkspaceID,
		ProjectID:        project,
		DueAt:            &nextDue,
		Notes:            notes,
		TagIDs:           append(shared.TagIDs(nil), completed.TagIDs...),
		RecurrenceRuleID: &ruleID,
	}, nil
}

// Change is the set of writes that must be applied together when a task's
// rule is replaced or removed.
type Change struct {
	Task         taskdomain.Task
	SaveRule     *Rule
	DeleteRuleID *shared.RecurrenceRuleID
}

// PlanReplace installs rule on t, dropping the rule t pointed to before.
func PlanReplace(t taskdomain.Task, rule Rule, now time.Time) Change {
	change := Change{SaveRule: &rule}
	if t.RecurrenceRuleID != nil {
		old := *t.RecurrenceRuleID
		change.DeleteRuleID = &old
	}
	change.Task = taskdomain.AttachRecurrenceRule(t, &rule.ID, now)
	return change
}

// PlanRemove detaches and deletes t's rule. The second result is false when t
// has no rule.
func PlanRemove(t taskdomain.Task, now time.Time) (Change, bool) {
	if t.RecurrenceRuleID == nil {
		return Change{}, false
	}
	old := *t.RecurrenceRuleID
	return Change{
		Task:         taskdomain.AttachRecurrenceRule(t, nil, now),
		DeleteRuleID: &old,
	}, true
}
