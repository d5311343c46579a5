package usecase

import (
	"context"
	"time"

	"taskflow-backend/internal/shared"
	"taskflow-backend/internal/task/domain"
)

// TaskUsecase defines the interface for task business logic.
// Every method resolves the task inside the actor's workspace; a task that is
// missing, soft-deleted or not visible to the actor is a *shared.NotFoundError.
type TaskUsecase interface {
	// CreateTask creates a new active task
	CreateTask(ctx context.Context, actor shared.Actor, input CreateTaskInput) (*domain.Task, error)

	// GetTask retrieves a task by ID (with ownership check)
	GetTask(ctx context.Context, actor shared.Actor, id domain.TaskID) (*domain.Task, error)

	// ListTasks lists the actor's tasks for a view
	ListTasks(ctx context.Context, actor shared.Actor, query ListQuery) ([]*domain.Task, error)

	// SearchTasks ranks live tasks against a free-text query, best first
	SearchTasks(ctx context.Context, actor shared.Actor, query string) ([]*domain.Task, error)

	// UpdateTask applies a partial update
	UpdateTask(ctx context.Context, actor shared.Actor, id domain.TaskID, params domain.UpdateParams) (*domain.Task, error)

	// CompleteTask completes a task and spawns the next occurrence of a
	// recurring one
	CompleteTask(ctx context.Context, actor shared.Actor, id domain.TaskID) (*Completion, error)

	// UncompleteTask reopens a completed task
	UncompleteTask(ctx context.Context, actor shared.Actor, id domain.TaskID) (*domain.Task, error)

	// CancelTask cancels an active or completed task
	CancelTask(ctx context.Context, actor shared.Actor, id domain.TaskID) (*domain.Task, error)

	// DeleteTask soft-deletes a task
	DeleteTask(ctx context.Context, actor shared.Actor, id domain.TaskID) error

	// SetReferenceLookups enables project and tag reference checks
	SetReferenceLookups(projects ProjectLookup, tags TagLookup)
}

// CreateTaskInput holds the caller-supplied fields of a new task.
type CreateTaskInput struct {
	Title     string
	Notes     *string
	ProjectID *shared.ProjectID
	DueAt     *time.Time
	TagIDs    shared.TagIDs
}

// View names a predefined task listing.
type View string

const (
	ViewAll     View = "all"
	ViewInbox   View = "inbox"
	ViewToday   View = "today"
	ViewOverdue View = "overdue"
)

// ListQuery selects tasks for ListTasks. An empty View means ViewAll.
type ListQuery struct {
	View      View
	Status    *domain.Status
	ProjectID *shared.ProjectID
}

// Completion is the result of CompleteTask. Next is the spawned occurrence of
// a recurring task, nil otherwise.
type Completion struct {
	Task *domain.Task `json:"task"`
	Next *domain.Task `json:"next,omitempty"`
}

// ProjectLookup checks project references.
type ProjectLookup interface {
	ProjectExists(ctx context.Context, workspaceID shared.WorkspaceID, id shared.ProjectID) (bool, error)
}

// TagLookup checks tag references. It returns the first id that does not
// exist in the workspace, or "" when all do.
type TagLookup interface {
	FirstMissingTag(ctx context.Context, workspaceID shared.WorkspaceID, ids shared.TagIDs) (shared.TagID, error)
}
