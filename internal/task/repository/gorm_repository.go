package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskflow-backend/internal/shared"
	"taskflow-backend/internal/task/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task %s: %w", task.ID, err)
	}
	return nil
}

func (r *gormTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task %s: %w", task.ID, err)
	}
	return nil
}

func (r *gormTaskRepository) SaveAll(ctx context.Context, tasks ...*domain.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, task := range tasks {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(task).Error; err != nil {
				return fmt.Errorf("save task %s: %w", task.ID, err)
			}
		}
		return nil
	})
}

func (r *gormTaskRepository) FindByID(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find task %s: %w", id, err)
	}
	return &task, nil
}

func (r *gormTaskRepository) FindByWorkspace(ctx context.Context, workspaceID shared.WorkspaceID, filter ListFilter) ([]*domain.Task, error) {
	query := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("workspace_id = ? AND deleted_at IS NULL", workspaceID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.NoProject {
		query = query.Where("project_id IS NULL")
	}
	if filter.DueBefore != nil {
		query = query.Where("due_at IS NOT NULL AND due_at < ?", *filter.DueBefore)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_at >= ?", *filter.DueFrom)
	}
	if filter.DueUntil != nil {
		query = query.Where("due_at < ?", *filter.DueUntil)
	}

	// Ordered by due_at (nulls last), then newest first
	var tasks []*domain.Task
	err := query.Order("CASE WHEN due_at IS NULL THEN 1 ELSE 0 END, due_at ASC, created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks of workspace %s: %w", workspaceID, err)
	}
	return tasks, nil
}

func (r *gormTaskRepository) ClearProject(ctx context.Context, workspaceID shared.WorkspaceID, projectID shared.ProjectID, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("workspace_id = ? AND project_id = ?", workspaceID, projectID).
		Updates(map[string]interface{}{
			"project_id": nil,
			"updated_at": now,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("clear project %s: %w", projectID, res.Error)
	}
	return res.RowsAffected, nil
}

// RemoveTag rewrites the tag list in Go since the column is a JSON array
// shared by both drivers.
func (r *gormTaskRepository) RemoveTag(ctx context.Context, workspaceID shared.WorkspaceID, tagID shared.TagID, now time.Time) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tasks []*domain.Task
		pattern := fmt.Sprintf("%%%q%%", string(tagID))
		if err := tx.Where("workspace_id = ? AND tag_ids LIKE ?", workspaceID, pattern).Find(&tasks).Error; err != nil {
			return err
		}
		for _, task := range tasks {
			if !task.TagIDs.Contains(tagID) {
				continue
			}
			err := tx.Model(&domain.Task{}).Where("id = ?", task.ID).
				Updates(map[string]interface{}{
					"tag_ids":    task.TagIDs.Without(tagID),
					"updated_at": now,
				}).Error
			if err != nil {
				return err
			}
			affected++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("remove tag %s: %w", tagID, err)
	}
	return affected, nil
}
