package domain

import (
	"time"

	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"
)

// ReminderID identifies a Reminder.
type ReminderID string

// Status represents the delivery state of a reminder
type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusDismissed Status = "dismissed"
)

const entityName = "reminder"

// Reminder asks for a notification about a task at RemindAt. It references
// the task by id only. Sent and dismissed reminders can no longer be
// rescheduled.
type Reminder struct {
	ID          ReminderID         `json:"id" gorm:"primaryKey"`
	TaskID      taskdomain.TaskID  `json:"task_id" gorm:"index;not null"`
	WorkspaceID shared.WorkspaceID `json:"workspace_id" gorm:"index;not null"`
	RemindAt    time.Time          `json:"remind_at" gorm:"index;not null"`
	Status      Status             `json:"status" gorm:"index;not null"`
	CreatedAt   time.Time          `json:"created_at" gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time          `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// CreateReminder returns a pending reminder; remindAt must be after now.
func CreateReminder(id ReminderID, taskID taskdomain.TaskID, workspaceID shared.WorkspaceID, remindAt, now time.Time) (Reminder, error) {
	if err := validateRemindAt(remindAt, now); err != nil {
		return Reminder{}, err
	}
	return Reminder{
		ID:          id,
		TaskID:      taskID,
		WorkspaceID: workspaceID,
		RemindAt:    remindAt.UTC(),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateReminderTime reschedules a pending reminder.
func UpdateReminderTime(r Reminder, remindAt, now time.Time) (Reminder, error) {
	if r.Status != StatusPending {
		return Reminder{}, shared.NewTransitionError(entityName, string(r.Status), string(StatusPending),
			"only pending reminders can be rescheduled")
	}
	if err := validateRemindAt(remindAt, now); err != nil {
		return Reminder{}, err
	}
	r.RemindAt = remindAt.UTC()
	r.UpdatedAt = now
	return r, nil
}

// DismissReminder dismisses a pending or sent reminder.
func DismissReminder(r Reminder, now time.Time) (Reminder, error) {
	if r.Status == StatusDismissed {
		return Reminder{}, shared.NewTransitionError(entityName, string(r.Status), string(StatusDismissed),
			"reminder is already dismissed")
	}
	r.Status = StatusDismissed
	r.UpdatedAt = now
	return r, nil
}

// MarkReminderSent records delivery of a pending reminder.
func MarkReminderSent(r Reminder, now time.Time) (Reminder, error) {
	if r.Status != StatusPending {
		return Reminder{}, shared.NewTransitionError(entityName, string(r.Status), string(StatusSent),
			"only pending reminders can be sent")
	}
	r.Status = StatusSent
	r.UpdatedAt = now
	return r, nil
}

// IsDue reports whether a pending reminder's time has come.
func IsDue(r Reminder, now time.Time) bool {
	return r.Status == StatusPending && !r.RemindAt.After(now)
}

func validateRemindAt(remindAt, now time.Time) error {
	if !remindAt.After(now) {
		return shared.NewValidationError("remindAt", "remindAt must be in the future")
	}
	return nil
}
