package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"taskflow-backend/internal/events"
	"taskflow-backend/internal/shared"
	"taskflow-backend/internal/tag/domain"
	"taskflow-backend/internal/tag/repository"

	"github.com/google/uuid"
)

// TaskReferences strips a deleted tag from tasks. The task repository
// satisfies it.
type TaskReferences interface {
	RemoveTag(ctx context.Context, workspaceID shared.WorkspaceID, tagID shared.TagID, now time.Time) (int64, error)
}

// TagUsecase defines tag business logic
type TagUsecase interface {
	ListTags(ctx context.Context, actor shared.Actor) ([]*domain.Tag, error)
	CreateTag(ctx context.Context, actor shared.Actor, name string) (*domain.Tag, error)
	RenameTag(ctx context.Context, actor shared.Actor, id shared.TagID, name string) (*domain.Tag, error)
	DeleteTag(ctx context.Context, actor shared.Actor, id shared.TagID) error

	// FirstMissingTag backs the task use case's reference check
	FirstMissingTag(ctx context.Context, workspaceID shared.WorkspaceID, ids shared.TagIDs) (shared.TagID, error)
}

type tagUsecase struct {
	tagRepo   repository.TagRepository
	tasks     TaskReferences
	publisher events.Publisher
	clock     shared.Clock
}

// NewTagUsecase creates a new TagUsecase
func NewTagUsecase(tagRepo repository.TagRepository, tasks TaskReferences, publisher events.Publisher, clock shared.Clock) TagUsecase {
	if publisher == nil {
		publisher = events.Discard{}
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &tagUsecase{tagRepo: tagRepo, tasks: tasks, publisher: publisher, clock: clock}
}

func (u *tagUsecase) ListTags(ctx context.Context, actor shared.Actor) ([]*domain.Tag, error) {
	return u.tagRepo.FindByWorkspace(ctx, actor.WorkspaceID)
}

func (u *tagUsecase) CreateTag(ctx context.Context, actor shared.Actor, name string) (*domain.Tag, error) {
	now := u.clock.Now()
	tag, err := domain.NewTag(shared.TagID(uuid.New().String()), actor.WorkspaceID, name, now)
	if err != nil {
		return nil, err
	}
	if err := u.ensureUnique(ctx, tag); err != nil {
		return nil, err
	}
	if err := u.tagRepo.Create(ctx, &tag); err != nil {
		return nil, conflictOr(err, tag.Name)
	}

	u.publisher.Publish(ctx, events.New(events.TagCreated, actor.WorkspaceID, actor.UserID, string(tag.ID), now))
	return &tag, nil
}

func (u *tagUsecase) RenameTag(ctx context.Context, actor shared.Actor, id shared.TagID, name string) (*domain.Tag, error) {
	tag, err := u.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	renamed, err := domain.Rename(*tag, name, now)
	if err != nil {
		return nil, err
	}
	if err := u.ensureUnique(ctx, renamed); err != nil {
		return nil, err
	}
	if err := u.tagRepo.Save(ctx, &renamed); err != nil {
		return nil, conflictOr(err, renamed.Name)
	}

	u.publisher.Publish(ctx, events.New(events.TagRenamed, actor.WorkspaceID, actor.UserID, string(id), now))
	return &renamed, nil
}

func (u *tagUsecase) DeleteTag(ctx context.Context, actor shared.Actor, id shared.TagID) error {
	if _, err := u.visible(ctx, actor, id); err != nil {
		return err
	}

	now := u.clock.Now()
	stripped, err := u.tasks.RemoveTag(ctx, actor.WorkspaceID, id, now)
	if err != nil {
		return err
	}
	if err := u.tagRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("[TagUsecase] Deleted tag %s, removed from %d tasks", id, stripped)
	u.publisher.Publish(ctx, events.New(events.TagDeleted, actor.WorkspaceID, actor.UserID, string(id), now).
		With("untagged_tasks", strconv.FormatInt(stripped, 10)))
	return nil
}

func (u *tagUsecase) FirstMissingTag(ctx context.Context, workspaceID shared.WorkspaceID, ids shared.TagIDs) (shared.TagID, error) {
	existing, err := u.tagRepo.ExistingIDs(ctx, workspaceID, ids)
	if err != nil {
		return "", err
	}
	for _, id := range ids {
		if !existing[id] {
			return id, nil
		}
	}
	return "", nil
}

// ensureUnique rejects a name another tag of the workspace already uses.
// Renaming a tag to a different casing of its own name is allowed.
func (u *tagUsecase) ensureUnique(ctx context.Context, tag domain.Tag) error {
	existing, err := u.tagRepo.FindByKey(ctx, tag.WorkspaceID, tag.NameKey)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != tag.ID {
		return duplicate(tag.Name)
	}
	return nil
}

func (u *tagUsecase) visible(ctx context.Context, actor shared.Actor, id shared.TagID) (*domain.Tag, error) {
	tag, err := u.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil || tag.WorkspaceID != actor.WorkspaceID {
		return nil, shared.NewNotFoundError("tag", string(id))
	}
	return tag, nil
}

func conflictOr(err error, name string) error {
	if errors.Is(err, repository.ErrDuplicateName) {
		return duplicate(name)
	}
	return err
}

func duplicate(name string) error {
	return shared.NewConflictError("tag", "name", fmt.Sprintf("a tag named %q already exists", name))
}
