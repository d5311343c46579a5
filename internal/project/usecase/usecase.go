package usecase

import (
	"context"
	"log"
	"strconv"
	"time"

	"taskflow-backend/internal/events"
	"taskflow-backend/internal/project/domain"
	"taskflow-backend/internal/project/repository"
	"taskflow-backend/internal/shared"

	"github.com/google/uuid"
)

// TaskReferences detaches tasks from a deleted project. The task repository
// satisfies it.
type TaskReferences interface {
	ClearProject(ctx context.Context, workspaceID shared.WorkspaceID, projectID shared.ProjectID, now time.Time) (int64, error)
}

// ProjectUsecase defines project business logic
type ProjectUsecase interface {
	ListProjects(ctx context.Context, actor shared.Actor) ([]*domain.Project, error)
	CreateProject(ctx context.Context, actor shared.Actor, name string) (*domain.Project, error)
	RenameProject(ctx context.Context, actor shared.Actor, id shared.ProjectID, name string) (*domain.Project, error)
	DeleteProject(ctx context.Context, actor shared.Actor, id shared.ProjectID) error

	// ProjectExists backs the task use case's reference check
	ProjectExists(ctx context.Context, workspaceID shared.WorkspaceID, id shared.ProjectID) (bool, error)
}

type projectUsecase struct {
	projectRepo repository.ProjectRepository
	tasks       TaskReferences
	publisher   events.Publisher
	clock       shared.Clock
}

// NewProjectUsecase creates a new ProjectUsecase
func NewProjectUsecase(projectRepo repository.ProjectRepository, tasks TaskReferences, publisher events.Publisher, clock shared.Clock) ProjectUsecase {
	if publisher == nil {
		publisher = events.Discard{}
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &projectUsecase{projectRepo: projectRepo, tasks: tasks, publisher: publisher, clock: clock}
}

func (u *projectUsecase) ListProjects(ctx context.Context, actor shared.Actor) ([]*domain.Project, error) {
	return u.projectRepo.FindByWorkspace(ctx, actor.WorkspaceID)
}

func (u *projectUsecase) CreateProject(ctx context.Context, actor shared.Actor, name string) (*domain.Project, error) {
	now := u.clock.Now()
	project, err := domain.NewProject(shared.ProjectID(uuid.New().String()), actor.WorkspaceID, name, now)
	if err != nil {
		return nil, err
	}
	if err := u.projectRepo.Create(ctx, &project); err != nil {
		return nil, err
	}

	u.publisher.Publish(ctx, events.New(events.ProjectCreated, actor.WorkspaceID, actor.UserID, string(project.ID), now))
	return &project, nil
}

func (u *projectUsecase) RenameProject(ctx context.Context, actor shared.Actor, id shared.ProjectID, name string) (*domain.Project, error) {
	project, err := u.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	renamed, err := domain.Rename(*project, name, now)
	if err != nil {
		return nil, err
	}
	if err := u.projectRepo.Save(ctx, &renamed); err != nil {
		return nil, err
	}

	u.publisher.Publish(ctx, events.New(events.ProjectRenamed, actor.WorkspaceID, actor.UserID, string(id), now))
	return &renamed, nil
}

// DeleteProject detaches the project's tasks first so a failed delete leaves
// no task pointing at a missing project.
func (u *projectUsecase) DeleteProject(ctx context.Context, actor shared.Actor, id shared.ProjectID) error {
	if _, err := u.visible(ctx, actor, id); err != nil {
		return err
	}

	now := u.clock.Now()
	cleared, err := u.tasks.ClearProject(ctx, actor.WorkspaceID, id, now)
	if err != nil {
		return err
	}
	if err := u.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("[ProjectUsecase] Deleted project %s, detached %d tasks", id, cleared)
	u.publisher.Publish(ctx, events.New(events.ProjectDeleted, actor.WorkspaceID, actor.UserID, string(id), now).
		With("detached_tasks", strconv.FormatInt(cleared, 10)))
	return nil
}

func (u *projectUsecase) ProjectExists(ctx context.Context, workspaceID shared.WorkspaceID, id shared.ProjectID) (bool, error) {
	return u.projectRepo.Exists(ctx, workspaceID, id)
}

func (u *projectUsecase) visible(ctx context.Context, actor shared.Actor, id shared.ProjectID) (*domain.Project, error) {
	project, err := u.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil || project.WorkspaceID != actor.WorkspaceID {
		return nil, shared.NewNotFoundError("project", string(id))
	}
	return project, nil
}
