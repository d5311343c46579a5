package repository

import (
	"context"
	"time"

	"taskflow-backend/internal/shared"
	"taskflow-backend/internal/task/domain"
)

// ListFilter narrows a workspace listing. Nil fields do not filter.
type ListFilter struct {
	Status    *domain.Status
	ProjectID *shared.ProjectID
	// NoProject keeps only tasks outside every project (the inbox).
	NoProject bool
	// DueBefore keeps tasks whose due date is strictly before the instant.
	DueBefore *time.Time
	// DueFrom and DueUntil bound the due date to [DueFrom, DueUntil).
	DueFrom  *time.Time
	DueUntil *time.Time
}

// TaskRepository defines the interface for task data access.
// Soft-deleted tasks are returned by FindByID but never by listings.
type TaskRepository interface {
	// Create inserts a new task
	Create(ctx context.Context, task *domain.Task) error

	// Save writes every column of an existing task
	Save(ctx context.Context, task *domain.Task) error

	// SaveAll upserts the given tasks in a single transaction
	SaveAll(ctx context.Context, tasks ...*domain.Task) error

	// FindByID finds a task by its ID; (nil, nil) when absent
	FindByID(ctx context.Context, id domain.TaskID) (*domain.Task, error)

	// FindByWorkspace lists the workspace's live tasks, due date first
	FindByWorkspace(ctx context.Context, workspaceID shared.WorkspaceID, filter ListFilter) ([]*domain.Task, error)

	// ClearProject detaches every task of the workspace from the project
	ClearProject(ctx context.Context, workspaceID shared.WorkspaceID, projectID shared.ProjectID, now time.Time) (int64, error)

	// RemoveTag drops the tag from every task of the workspace
	RemoveTag(ctx context.Context, workspaceID shared.WorkspaceID, tagID shared.TagID, now time.Time) (int64, error)
}
