package usecase

import (
	"context"
	"log"

	"taskflow-backend/internal/events"
	"taskflow-backend/internal/recurrence/domain"
	"taskflow-backend/internal/recurrence/repository"
	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"

	"github.com/google/uuid"
)

// TaskReader resolves a task visible to the actor. The task use case
// satisfies it.
type TaskReader interface {
	GetTask(ctx context.Context, actor shared.Actor, id taskdomain.TaskID) (*taskdomain.Task, error)
}

// SetRecurrenceRuleCommand replaces the rule of a task.
type SetRecurrenceRuleCommand struct {
	TaskID taskdomain.TaskID
	Params domain.RuleParams
}

// RecurrenceUsecase manages the recurrence rule attached to a task
type RecurrenceUsecase interface {
	// GetRule returns the task's rule; NotFoundError when it has none
	GetRule(ctx context.Context, actor shared.Actor, taskID taskdomain.TaskID) (*domain.Rule, error)

	// SetRule creates a rule and attaches it, deleting any previous one
	SetRule(ctx context.Context, actor shared.Actor, cmd SetRecurrenceRuleCommand) (*domain.Rule, error)

	// RemoveRule detaches and deletes the task's rule
	RemoveRule(ctx context.Context, actor shared.Actor, taskID taskdomain.TaskID) error
}

type recurrenceUsecase struct {
	tasks     TaskReader
	ruleRepo  repository.RuleRepository
	publisher events.Publisher
	clock     shared.Clock
}

// NewRecurrenceUsecase creates a new RecurrenceUsecase
func NewRecurrenceUsecase(tasks TaskReader, ruleRepo repository.RuleRepository, publisher events.Publisher, clock shared.Clock) RecurrenceUsecase {
	if publisher == nil {
		publisher = events.Discard{}
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &recurrenceUsecase{tasks: tasks, ruleRepo: ruleRepo, publisher: publisher, clock: clock}
}

func (u *recurrenceUsecase) GetRule(ctx context.Context, actor shared.Actor, taskID taskdomain.TaskID) (*domain.Rule, error) {
	task, err := u.tasks.GetTask(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	if task.RecurrenceRuleID == nil {
		return nil, shared.NewNotFoundError("recurrence rule", string(taskID))
	}

	rule, err := u.ruleRepo.FindByID(ctx, *task.RecurrenceRuleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, shared.NewNotFoundError("recurrence rule", string(*task.RecurrenceRuleID))
	}
	return rule, nil
}

func (u *recurrenceUsecase) SetRule(ctx context.Context, actor shared.Actor, cmd SetRecurrenceRuleCommand) (*domain.Rule, error) {
	task, err := u.tasks.GetTask(ctx, actor, cmd.TaskID)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	rule, err := domain.CreateRule(shared.RecurrenceRuleID(uuid.New().String()), cmd.Params, now)
	if err != nil {
		return nil, err
	}

	change := domain.PlanReplace(*task, rule, now)
	if err := u.ruleRepo.Apply(ctx, change); err != nil {
		return nil, err
	}

	event := events.New(events.RecurrenceRuleSet, task.WorkspaceID, actor.UserID, string(rule.ID), now).
		With("task_id", string(task.ID))
	if change.DeleteRuleID != nil {
		event = event.With("replaced_rule_id", string(*change.DeleteRuleID))
	}
	u.publisher.Publish(ctx, event)

	log.Printf("[RecurrenceUsecase] Task %s now repeats %s every %d", task.ID, rule.Frequency, rule.Interval)
	return &rule, nil
}

func (u *recurrenceUsecase) RemoveRule(ctx context.Context, actor shared.Actor, taskID taskdomain.TaskID) error {
	task, err := u.tasks.GetTask(ctx, actor, taskID)
	if err != nil {
		return err
	}

	now := u.clock.Now()
	change, ok := domain.PlanRemove(*task, now)
	if !ok {
		return shared.NewNotFoundError("recurrence rule", string(taskID))
	}
	if err := u.ruleRepo.Apply(ctx, change); err != nil {
		return err
	}

	u.publisher.Publish(ctx, events.New(events.RecurrenceRuleRemoved, task.WorkspaceID, actor.UserID, string(*change.DeleteRuleID), now).
		With("task_id", string(task.ID)))
	return nil
}
