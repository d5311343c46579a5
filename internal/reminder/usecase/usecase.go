package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskflow-backend/internal/events"
	"taskflow-backend/internal/reminder/domain"
	"taskflow-backend/internal/reminder/repository"
	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"

	"github.com/google/uuid"
)

// TaskFinder loads tasks regardless of visibility. The task repository
// satisfies it.
type TaskFinder interface {
	FindByID(ctx context.Context, id taskdomain.TaskID) (*taskdomain.Task, error)
}

// CreateReminderCommand schedules a reminder for a task.
type CreateReminderCommand struct {
	TaskID   taskdomain.TaskID
	RemindAt time.Time
}

// ReminderUsecase defines reminder business logic. A reminder is visible to
// the owner of its task.
type ReminderUsecase interface {
	CreateReminder(ctx context.Context, actor shared.Actor, cmd CreateReminderCommand) (*domain.Reminder, error)
	ListByTask(ctx context.Context, actor shared.Actor, taskID taskdomain.TaskID) ([]*domain.Reminder, error)
	UpdateReminderTime(ctx context.Context, actor shared.Actor, id domain.ReminderID, remindAt time.Time) (*domain.Reminder, error)
	DismissReminder(ctx context.Context, actor shared.Actor, id domain.ReminderID) (*domain.Reminder, error)
	DeleteReminder(ctx context.Context, actor shared.Actor, id domain.ReminderID) error
}

type reminderUsecase struct {
	reminderRepo repository.ReminderRepository
	tasks        TaskFinder
	publisher    events.Publisher
	clock        shared.Clock
}

// NewReminderUsecase creates a new ReminderUsecase
func NewReminderUsecase(reminderRepo repository.ReminderRepository, tasks TaskFinder, publisher events.Publisher, clock shared.Clock) ReminderUsecase {
	if publisher == nil {
		publisher = events.Discard{}
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &reminderUsecase{reminderRepo: reminderRepo, tasks: tasks, publisher: publisher, clock: clock}
}

func (u *reminderUsecase) CreateReminder(ctx context.Context, actor shared.Actor, cmd CreateReminderCommand) (*domain.Reminder, error) {
	task, err := u.ownedTask(ctx, actor, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if task.IsDeleted() {
		return nil, shared.NewNotFoundError("task", string(cmd.TaskID))
	}
	if task.Status != taskdomain.StatusActive {
		return nil, shared.NewTransitionError("reminder", string(task.Status), string(domain.StatusPending),
			fmt.Sprintf("cannot add a reminder to a %s task", task.Status))
	}

	now := u.clock.Now()
	reminder, err := domain.CreateReminder(domain.ReminderID(uuid.New().String()), task.ID, task.WorkspaceID, cmd.RemindAt, now)
	if err != nil {
		return nil, err
	}
	if err := u.reminderRepo.Create(ctx, &reminder); err != nil {
		return nil, err
	}

	u.publish(ctx, events.ReminderCreated, actor, reminder, now)
	return &reminder, nil
}

func (u *reminderUsecase) ListByTask(ctx context.Context, actor shared.Actor, taskID taskdomain.TaskID) ([]*domain.Reminder, error) {
	task, err := u.ownedTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsDeleted() {
		return nil, shared.NewNotFoundError("task", string(taskID))
	}
	return u.reminderRepo.FindByTask(ctx, taskID)
}

func (u *reminderUsecase) UpdateReminderTime(ctx context.Context, actor shared.Actor, id domain.ReminderID, remindAt time.Time) (*domain.Reminder, error) {
	reminder, err := u.ownedReminder(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	updated, err := domain.UpdateReminderTime(*reminder, remindAt, now)
	if err != nil {
		return nil, err
	}
	if err := u.reminderRepo.Save(ctx, &updated); err != nil {
		return nil, err
	}

	u.publish(ctx, events.ReminderUpdated, actor, updated, now)
	return &updated, nil
}

func (u *reminderUsecase) DismissReminder(ctx context.Context, actor shared.Actor, id domain.ReminderID) (*domain.Reminder, error) {
	reminder, err := u.ownedReminder(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	dismissed, err := domain.DismissReminder(*reminder, now)
	if err != nil {
		return nil, err
	}
	if err := u.reminderRepo.Save(ctx, &dismissed); err != nil {
		return nil, err
	}

	u.publish(ctx, events.ReminderDismissed, actor, dismissed, now)
	return &dismissed, nil
}

func (u *reminderUsecase) DeleteReminder(ctx context.Context, actor shared.Actor, id domain.ReminderID) error {
	reminder, err := u.ownedReminder(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := u.reminderRepo.Delete(ctx, reminder.ID); err != nil {
		return err
	}

	u.publish(ctx, events.ReminderDeleted, actor, *reminder, u.clock.Now())
	return nil
}

// ownedTask returns the task, soft-deleted or not, when the actor owns it.
func (u *reminderUsecase) ownedTask(ctx context.Context, actor shared.Actor, id taskdomain.TaskID) (*taskdomain.Task, error) {
	task, err := u.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil || task.WorkspaceID != actor.WorkspaceID || task.OwnerUserID != actor.UserID {
		return nil, shared.NewNotFoundError("task", string(id))
	}
	return task, nil
}

func (u *reminderUsecase) ownedReminder(ctx context.Context, actor shared.Actor, id domain.ReminderID) (*domain.Reminder, error) {
	reminder, err := u.reminderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reminder == nil || reminder.WorkspaceID != actor.WorkspaceID {
		return nil, shared.NewNotFoundError("reminder", string(id))
	}
	if _, err := u.ownedTask(ctx, actor, reminder.TaskID); err != nil {
		var notFound *shared.NotFoundError
		if errors.As(err, &notFound) {
			return nil, shared.NewNotFoundError("reminder", string(id))
		}
		return nil, err
	}
	return reminder, nil
}

func (u *reminderUsecase) publish(ctx context.Context, eventType events.Type, actor shared.Actor, r domain.Reminder, now time.Time) {
	u.publisher.Publish(ctx, events.New(eventType, r.WorkspaceID, actor.UserID, string(r.ID), now).
		With("task_id", string(r.TaskID)))
}
