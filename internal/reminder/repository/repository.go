package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskflow-backend/internal/reminder/domain"
	taskdomain "taskflow-backend/internal/task/domain"

	"gorm.io/gorm"
)

// ReminderRepository defines data access for reminders
type ReminderRepository interface {
	// Create inserts a new reminder
	Create(ctx context.Context, reminder *domain.Reminder) error

	// Save writes every column of an existing reminder
	Save(ctx context.Context, reminder *domain.Reminder) error

	// FindByID returns the reminder or (nil, nil) when absent
	FindByID(ctx context.Context, id domain.ReminderID) (*domain.Reminder, error)

	// FindByTask lists a task's reminders by remind time
	FindByTask(ctx context.Context, taskID taskdomain.TaskID) ([]*domain.Reminder, error)

	// FindDue returns pending reminders with remindAt <= before, earliest
	// first, at most limit of them (0 means no limit)
	FindDue(ctx context.Context, before time.Time, limit int) ([]*domain.Reminder, error)

	// Delete removes a reminder
	Delete(ctx context.Context, id domain.ReminderID) error
}

type gormReminderRepository struct {
	db *gorm.DB
}

// NewGormReminderRepository creates a new GORM-based ReminderRepository
func NewGormReminderRepository(db *gorm.DB) ReminderRepository {
	return &gormReminderRepository{db: db}
}

func (r *gormReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder %s: %w", reminder.ID, err)
	}
	return nil
}

func (r *gormReminderRepository) Save(ctx context.Context, reminder *domain.Reminder) error {
	if err := r.db.WithContext(ctx).Save(reminder).Error; err != nil {
		return fmt.Errorf("save reminder %s: %w", reminder.ID, err)
	}
	return nil
}

func (r *gormReminderRepository) FindByID(ctx context.Context, id domain.ReminderID) (*domain.Reminder, error) {
	var reminder domain.Reminder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find reminder %s: %w", id, err)
	}
	return &reminder, nil
}

func (r *gormReminderRepository) FindByTask(ctx context.Context, taskID taskdomain.TaskID) ([]*domain.Reminder, error) {
	var reminders []*domain.Reminder
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).
		Order("remind_at ASC, id ASC").Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("list reminders of task %s: %w", taskID, err)
	}
	return reminders, nil
}

func (r *gormReminderRepository) FindDue(ctx context.Context, before time.Time, limit int) ([]*domain.Reminder, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND remind_at <= ?", domain.StatusPending, before).
		Order("remind_at ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var reminders []*domain.Reminder
	if err := query.Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("find due reminders: %w", err)
	}
	return reminders, nil
}

func (r *gormReminderRepository) Delete(ctx context.Context, id domain.ReminderID) error {
	return r.db.WithContext(ctx).Delete(&domain.Reminder{}, "id = ?", id).Error
}
