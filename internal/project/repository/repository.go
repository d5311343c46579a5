package repository

import (
	"context"
	"errors"
	"fmt"

	"taskflow-backend/internal/project/domain"
	"taskflow-backend/internal/shared"

	"gorm.io/gorm"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	Save(ctx context.Context, project *domain.Project) error

	// FindByID returns nil, nil when the project does not exist
	FindByID(ctx context.Context, id shared.ProjectID) (*domain.Project, error)

	// FindByWorkspace lists a workspace's projects by name
	FindByWorkspace(ctx context.Context, workspaceID shared.WorkspaceID) ([]*domain.Project, error)

	Exists(ctx context.Context, workspaceID shared.WorkspaceID, id shared.ProjectID) (bool, error)
	Delete(ctx context.Context, id shared.ProjectID) error
}

type gormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GORM-based ProjectRepository
func NewGormProjectRepository(db *gorm.DB) ProjectRepository {
	return &gormProjectRepository{db: db}
}

func (r *gormProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *gormProjectRepository) Save(ctx context.Context, project *domain.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return fmt.Errorf("save project %s: %w", project.ID, err)
	}
	return nil
}

func (r *gormProjectRepository) FindByID(ctx context.Context, id shared.ProjectID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find project %s: %w", id, err)
	}
	return &project, nil
}

func (r *gormProjectRepository) FindByWorkspace(ctx context.Context, workspaceID shared.WorkspaceID) ([]*domain.Project, error) {
	var projects []*domain.Project
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("LOWER(name) ASC, id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *gormProjectRepository) Exists(ctx context.Context, workspaceID shared.WorkspaceID, id shared.ProjectID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).
		Where("id = ? AND workspace_id = ?", id, workspaceID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check project %s: %w", id, err)
	}
	return count > 0, nil
}

func (r *gormProjectRepository) Delete(ctx context.Context, id shared.ProjectID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Project{}).Error; err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}
