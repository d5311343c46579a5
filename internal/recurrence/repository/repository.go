package repository

import (
	"context"
	"errors"
	"fmt"

	"taskflow-backend/internal/recurrence/domain"
	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RuleRepository defines data access for recurrence rules
type RuleRepository interface {
	// FindByID returns the rule or (nil, nil) when absent
	FindByID(ctx context.Context, id shared.RecurrenceRuleID) (*domain.Rule, error)

	// Apply writes a planned change: the task, the rule delete and the rule
	// insert succeed or fail together
	Apply(ctx context.Context, change domain.Change) error
}

type gormRuleRepository struct {
	db *gorm.DB
}

// NewGormRuleRepository creates a new GORM-based RuleRepository
func NewGormRuleRepository(db *gorm.DB) RuleRepository {
	return &gormRuleRepository{db: db}
}

func (r *gormRuleRepository) FindByID(ctx context.Context, id shared.RecurrenceRuleID) (*domain.Rule, error) {
	var rule domain.Rule
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find recurrence rule %s: %w", id, err)
	}
	return &rule, nil
}

func (r *gormRuleRepository) Apply(ctx context.Context, change domain.Change) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if change.SaveRule != nil {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(change.SaveRule).Error; err != nil {
				return fmt.Errorf("save recurrence rule %s: %w", change.SaveRule.ID, err)
			}
		}

		task := change.Task
		if err := tx.Model(&taskdomain.Task{}).Where("id = ?", task.ID).
			Updates(map[string]interface{}{
				"recurrence_rule_id": task.RecurrenceRuleID,
				"updated_at":         task.UpdatedAt,
			}).Error; err != nil {
			return fmt.Errorf("update task %s: %w", task.ID, err)
		}

		if change.DeleteRuleID != nil {
			if err := tx.Delete(&domain.Rule{}, "id = ?", *change.DeleteRuleID).Error; err != nil {
				return fmt.Errorf("delete recurrence rule %s: %w", *change.DeleteRuleID, err)
			}
		}
		return nil
	})
}
