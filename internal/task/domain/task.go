package domain

import (
	"time"

	"taskflow-backend/internal/shared"
)

// TaskID identifies a Task.
type TaskID string

// Status represents the current state of a task
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Task is a single to-do item. Values are never mutated in place: every
// lifecycle function returns a new Task.
//
// CompletedAt is non-nil iff Status == StatusCompleted. DeletedAt marks a soft
// delete and is terminal.
type Task struct {
	ID               TaskID                   `json:"id" gorm:"primaryKey"`
	OwnerUserID      shared.UserID            `json:"owner_user_id" gorm:"index;not null"`
	WorkspaceID      shared.WorkspaceID       `json:"workspace_id" gorm:"index;not null"`
	Title            string                   `json:"title" gorm:"not null"`
	Notes            *string                  `json:"notes"`
	Status           Status                   `json:"status" gorm:"index;not null"`
	ProjectID        *shared.ProjectID        `json:"project_id" gorm:"index"`
	DueAt            *time.Time               `json:"due_at"`
	TagIDs           shared.TagIDs            `json:"tag_ids" gorm:"type:text"`
	CompletedAt      *time.Time               `json:"completed_at"`
	DeletedAt        *time.Time               `json:"deleted_at,omitempty" gorm:"index"`
	RecurrenceRuleID *shared.RecurrenceRuleID `json:"recurrence_rule_id"`
	CreatedAt        time.Time                `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time                `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// IsDeleted reports whether the task has been soft-deleted.
func (t Task) IsDeleted() bool {
	return t.DeletedAt != nil
}

// clone returns a copy that shares no mutable backing storage with t.
func (t Task) clone() Task {
	c := t
	if t.TagIDs != nil {
		c.TagIDs = make(shared.TagIDs, len(t.TagIDs))
		copy(c.TagIDs, t.TagIDs)
	}
	return c
}

// CreateParams are the inputs of CreateTask. ID is chosen by the caller.
type CreateParams struct {
	ID               TaskID
	Title            string
	OwnerUserID      shared.UserID
	WorkspaceID      shared.WorkspaceID
	ProjectID        *shared.ProjectID
	DueAt            *time.Time
	Notes            *string
	TagIDs           shared.TagIDs
	RecurrenceRuleID *shared.RecurrenceRuleID
}

// UpdateParams describes a partial update. An unset field is left alone, a
// null field is cleared and a value replaces the current one.
type UpdateParams struct {
	Title     shared.Optional[string]
	Notes     shared.Optional[string]
	ProjectID shared.Optional[shared.ProjectID]
	DueAt     shared.Optional[time.Time]
	TagIDs    shared.Optional[shared.TagIDs]
}
