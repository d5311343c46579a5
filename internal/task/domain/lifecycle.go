package domain

import (
	"strings"
	"time"

	"taskflow-backend/internal/shared"
	"taskflow-backend/pkg/validation"
)

const entityName = "task"

// CreateTask validates p and returns a new active task.
func CreateTask(p CreateParams, now time.Time) (Task, error) {
	title, err := validateTitle(p.Title)
	if err != nil {
		return Task{}, err
	}

	return Task{
		ID:               p.ID,
		OwnerUserID:      p.OwnerUserID,
		WorkspaceID:      p.WorkspaceID,
		Title:            title,
		Notes:            validation.TrimToNil(p.Notes),
		Status:           StatusActive,
		ProjectID:        copyPtr(p.ProjectID),
		DueAt:            utcPtr(p.DueAt),
		TagIDs:           p.TagIDs.Normalize(),
		RecurrenceRuleID: copyPtr(p.RecurrenceRuleID),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// CompleteTask moves an active task to completed.
func CompleteTask(t Task, now time.Time) (Task, error) {
	if t.Status != StatusActive {
		msg := "cannot complete a canceled task"
		if t.Status == StatusCompleted {
			msg = "task is already completed"
		}
		return Task{}, transitionError(t.Status, StatusCompleted, msg)
	}

	next := t.clone()
	next.Status = StatusCompleted
	completedAt := now
	next.CompletedAt = &completedAt
	next.UpdatedAt = now
	return next, nil
}

// UncompleteTask reopens a completed task.
func UncompleteTask(t Task, now time.Time) (Task, error) {
	if t.Status != StatusCompleted {
		return Task{}, transitionError(t.Status, StatusActive, "task is not completed")
	}

	next := t.clone()
	next.Status = StatusActive
	next.CompletedAt = nil
	next.UpdatedAt = now
	return next, nil
}

// CancelTask cancels an active or completed task. A completed task keeps its
// CompletedAt. This is broader than AllowedTransitions, which does not list
// completed -> canceled.
func CancelTask(t Task, now time.Time) (Task, error) {
	if t.Status == StatusCanceled {
		return Task{}, transitionError(t.Status, StatusCanceled, "task is already canceled")
	}

	next := t.clone()
	next.Status = StatusCanceled
	next.UpdatedAt = now
	return next, nil
}

// UpdateTask applies p regardless of status; done and canceled items can
// still be retitled.
func UpdateTask(t Task, p UpdateParams, now time.Time) (Task, error) {
	next := t.clone()

	if p.Title.IsSet() {
		raw, ok := p.Title.Get()
		if !ok {
			return Task{}, shared.NewValidationError("title", "title cannot be cleared")
		}
		title, err := validateTitle(raw)
		if err != nil {
			return Task{}, err
		}
		next.Title = title
	}
	if p.Notes.IsSet() {
		next.Notes = validation.TrimToNil(p.Notes.Apply(nil))
	}
	next.ProjectID = p.ProjectID.Apply(next.ProjectID)
	if p.DueAt.IsSet() {
		next.DueAt = utcPtr(p.DueAt.Apply(nil))
	}
	if p.TagIDs.IsSet() {
		tags, _ := p.TagIDs.Get()
		next.TagIDs = tags.Normalize()
	}

	next.UpdatedAt = now
	return next, nil
}

// DeleteTask soft-deletes the task.
func DeleteTask(t Task, now time.Time) (Task, error) {
	if t.IsDeleted() {
		return Task{}, shared.NewTransitionError(entityName, string(t.Status), "deleted", "task is already deleted")
	}

	next := t.clone()
	deletedAt := now
	next.DeletedAt = &deletedAt
	next.UpdatedAt = now
	return next, nil
}

// AttachRecurrenceRule points the task at rule id, or detaches it when id is nil.
func AttachRecurrenceRule(t Task, id *shared.RecurrenceRuleID, now time.Time) Task {
	next := t.clone()
	next.RecurrenceRuleID = copyPtr(id)
	next.UpdatedAt = now
	return next
}

// IsOverdue reports whether an active task's due date has passed.
func IsOverdue(t Task, now time.Time) bool {
	return t.Status == StatusActive && t.DueAt != nil && t.DueAt.Before(now)
}

// IsDueOn reports whether the task is due on date's UTC calendar day, whatever
// its status.
func IsDueOn(t Task, date time.Time) bool {
	return t.DueAt != nil && shared.SameUTCDay(*t.DueAt, date)
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", shared.NewValidationError("title", "title is required")
	}
	if !validation.Title(title) {
		return "", shared.NewValidationError("title", "title must be at most 200 characters")
	}
	return title, nil
}

func transitionError(from, to Status, msg string) error {
	return shared.NewTransitionError(entityName, string(from), string(to), msg)
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
