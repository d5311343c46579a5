package repository

import (
	"context"
	"errors"
	"fmt"

	"taskflow-backend/internal/shared"
	"taskflow-backend/internal/tag/domain"

	"gorm.io/gorm"
)

// ErrDuplicateName is returned when the workspace already has a tag with the
// same folded name.
var ErrDuplicateName = errors.New("duplicate tag name")

// TagRepository defines the interface for tag data access
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	Save(ctx context.Context, tag *domain.Tag) error

	// FindByID returns nil, nil when the tag does not exist
	FindByID(ctx context.Context, id shared.TagID) (*domain.Tag, error)

	// FindByKey looks a tag up by its folded name
	FindByKey(ctx context.Context, workspaceID shared.WorkspaceID, key string) (*domain.Tag, error)

	// FindByWorkspace lists a workspace's tags by name
	FindByWorkspace(ctx context.Context, workspaceID shared.WorkspaceID) ([]*domain.Tag, error)

	// ExistingIDs returns the subset of ids that exist in the workspace
	ExistingIDs(ctx context.Context, workspaceID shared.WorkspaceID, ids shared.TagIDs) (map[shared.TagID]bool, error)

	Delete(ctx context.Context, id shared.TagID) error
}

type gormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GORM-based TagRepository
func NewGormTagRepository(db *gorm.DB) TagRepository {
	return &gormTagRepository{db: db}
}

func (r *gormTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *gormTagRepository) Save(ctx context.Context, tag *domain.Tag) error {
	if err := r.db.WithContext(ctx).Save(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return fmt.Errorf("save tag %s: %w", tag.ID, err)
	}
	return nil
}

func (r *gormTagRepository) FindByID(ctx context.Context, id shared.TagID) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find tag %s: %w", id, err)
	}
	return &tag, nil
}

func (r *gormTagRepository) FindByKey(ctx context.Context, workspaceID shared.WorkspaceID, key string) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.db.WithContext(ctx).Where("workspace_id = ? AND name_key = ?", workspaceID, key).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find tag by name: %w", err)
	}
	return &tag, nil
}

func (r *gormTagRepository) FindByWorkspace(ctx context.Context, workspaceID shared.WorkspaceID) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("name_key ASC, id ASC").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *gormTagRepository) ExistingIDs(ctx context.Context, workspaceID shared.WorkspaceID, ids shared.TagIDs) (map[shared.TagID]bool, error) {
	found := make(map[shared.TagID]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var rows []shared.TagID
	err := r.db.WithContext(ctx).Model(&domain.Tag{}).
		Where("workspace_id = ? AND id IN ?", workspaceID, []shared.TagID(ids)).
		Pluck("id", &rows).Error
	if err != nil {
		return nil, fmt.Errorf("check tags: %w", err)
	}
	for _, id := range rows {
		found[id] = true
	}
	return found, nil
}

func (r *gormTagRepository) Delete(ctx context.Context, id shared.TagID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Tag{}).Error; err != nil {
		return fmt.Errorf("delete tag %s: %w", id, err)
	}
	return nil
}
