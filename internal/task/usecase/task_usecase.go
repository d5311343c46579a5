package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"taskflow-backend/internal/events"
	recurrencedomain "taskflow-backend/internal/recurrence/domain"
	recurrencerepo "taskflow-backend/internal/recurrence/repository"
	"taskflow-backend/internal/shared"
	"taskflow-backend/internal/task/domain"
	"taskflow-backend/internal/task/repository"
	"taskflow-backend/pkg/fuzzy"

	"github.com/google/uuid"
)

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo  repository.TaskRepository
	ruleRepo  recurrencerepo.RuleRepository
	publisher events.Publisher
	clock     shared.Clock
	projects  ProjectLookup
	tags      TagLookup
	newID     func() string
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository, ruleRepo recurrencerepo.RuleRepository, publisher events.Publisher, clock shared.Clock) TaskUsecase {
	if publisher == nil {
		publisher = events.Discard{}
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &taskUsecase{
		taskRepo:  taskRepo,
		ruleRepo:  ruleRepo,
		publisher: publisher,
		clock:     clock,
		newID:     func() string { return uuid.New().String() },
	}
}

func (u *taskUsecase) SetReferenceLookups(projects ProjectLookup, tags TagLookup) {
	u.projects = projects
	u.tags = tags
}

func (u *taskUsecase) CreateTask(ctx context.Context, actor shared.Actor, input CreateTaskInput) (*domain.Task, error) {
	now := u.clock.Now()
	task, err := domain.CreateTask(domain.CreateParams{
		ID:          domain.TaskID(u.newID()),
		Title:       input.Title,
		OwnerUserID: actor.UserID,
		WorkspaceID: actor.WorkspaceID,
		ProjectID:   input.ProjectID,
		DueAt:       input.DueAt,
		Notes:       input.Notes,
		TagIDs:      input.TagIDs,
	}, now)
	if err != nil {
		return nil, err
	}
	if err := u.checkReferences(ctx, actor.WorkspaceID, task.ProjectID, task.TagIDs); err != nil {
		return nil, err
	}

	if err := u.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}

	u.publish(ctx, events.TaskCreated, actor, task, now)
	return &task, nil
}

func (u *taskUsecase) GetTask(ctx context.Context, actor shared.Actor, id domain.TaskID) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil || task.IsDeleted() || task.WorkspaceID != actor.WorkspaceID || task.OwnerUserID != actor.UserID {
		return nil, shared.NewNotFoundError("task", string(id))
	}
	return task, nil
}

func (u *taskUsecase) ListTasks(ctx context.Context, actor shared.Actor, query ListQuery) ([]*domain.Task, error) {
	if query.Status != nil && !query.Status.Valid() {
		return nil, shared.NewValidationError("status", fmt.Sprintf("unknown status %q", *query.Status))
	}

	now := u.clock.Now()
	filter := repository.ListFilter{Status: query.Status, ProjectID: query.ProjectID}
	var keep func(domain.Task) bool

	switch query.View {
	case "", ViewAll:
	case ViewInbox:
		filter.NoProject = true
		filter.ProjectID = nil
		defaultStatus(&filter, domain.StatusActive)
	case ViewToday:
		y, m, d := now.UTC().Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 1)
		filter.DueFrom = &start
		filter.DueUntil = &end
		defaultStatus(&filter, domain.StatusActive)
		keep = func(t domain.Task) bool { return domain.IsDueOn(t, now) }
	case ViewOverdue:
		active := domain.StatusActive
		filter.Status = &active
		filter.DueBefore = &now
		keep = func(t domain.Task) bool { return domain.IsOverdue(t, now) }
	default:
		return nil, shared.NewValidationError("view", fmt.Sprintf("unknown view %q", query.View))
	}

	tasks, err := u.taskRepo.FindByWorkspace(ctx, actor.WorkspaceID, filter)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.OwnerUserID != actor.UserID {
			continue
		}
		if keep != nil && !keep(*t) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (u *taskUsecase) SearchTasks(ctx context.Context, actor shared.Actor, query string) ([]*domain.Task, error) {
	if fuzzy.Normalize(query) == "" {
		return nil, shared.NewValidationError("q", "search query is required")
	}

	tasks, err := u.taskRepo.FindByWorkspace(ctx, actor.WorkspaceID, repository.ListFilter{})
	if err != nil {
		return nil, err
	}

	type scored struct {
		task  *domain.Task
		score float64
	}
	var hits []scored
	for _, t := range tasks {
		if t.OwnerUserID != actor.UserID {
			continue
		}
		if s := fuzzy.Score(query, t.Title, t.Notes); s > 0 {
			hits = append(hits, scored{task: t, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	result := make([]*domain.Task, len(hits))
	for i, h := range hits {
		result[i] = h.task
	}
	log.Printf("[TaskUsecase] Search %q matched %d of %d tasks", query, len(result), len(tasks))
	return result, nil
}

func (u *taskUsecase) UpdateTask(ctx context.Context, actor shared.Actor, id domain.TaskID, params domain.UpdateParams) (*domain.Task, error) {
	task, err := u.GetTask(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	updated, err := domain.UpdateTask(*task, params, now)
	if err != nil {
		return nil, err
	}

	var project *shared.ProjectID
	if params.ProjectID.IsSet() {
		project = updated.ProjectID
	}
	var tags shared.TagIDs
	if params.TagIDs.IsSet() {
		tags = updated.TagIDs
	}
	if err := u.checkReferences(ctx, actor.WorkspaceID, project, tags); err != nil {
		return nil, err
	}

	if err := u.taskRepo.Save(ctx, &updated); err != nil {
		return nil, err
	}

	u.publish(ctx, events.TaskUpdated, actor, updated, now)
	return &updated, nil
}

func (u *taskUsecase) CompleteTask(ctx context.Context, actor shared.Actor, id domain.TaskID) (*Completion, error) {
	task, err := u.GetTask(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	completed, err := domain.CompleteTask(*task, now)
	if err != nil {
		return nil, err
	}

	next, err := u.spawnNext(ctx, completed, now)
	if err != nil {
		return nil, err
	}

	if next == nil {
		if err := u.taskRepo.Save(ctx, &completed); err != nil {
			return nil, err
		}
		u.publish(ctx, events.TaskCompleted, actor, completed, now)
		return &Completion{Task: &completed}, nil
	}

	// The successor takes over the rule so that it keeps a single owner.
	completed = domain.AttachRecurrenceRule(completed, nil, now)
	if err := u.taskRepo.SaveAll(ctx, &completed, next); err != nil {
		return nil, err
	}

	u.publish(ctx, events.TaskCompleted, actor, completed, now)
	spawned := events.New(events.RecurringTaskSpawned, actor.WorkspaceID, actor.UserID, string(next.ID), now).
		With("previous_task_id", string(completed.ID)).
		With("recurrence_rule_id", string(*next.RecurrenceRuleID))
	u.publisher.Publish(ctx, spawned)

	log.Printf("[TaskUsecase] Task %s completed, next occurrence %s due %s", completed.ID, next.ID, next.DueAt.Format(time.RFC3339))
	return &Completion{Task: &completed, Next: next}, nil
}

// spawnNext builds the next occurrence of a recurring task. It returns nil
// when the task does not recur or its rule can no longer be used.
func (u *taskUsecase) spawnNext(ctx context.Context, completed domain.Task, now time.Time) (*domain.Task, error) {
	if completed.RecurrenceRuleID == nil || u.ruleRepo == nil {
		return nil, nil
	}

	rule, err := u.ruleRepo.FindByID(ctx, *completed.RecurrenceRuleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		log.Printf("[TaskUsecase] Recurrence rule %s of task %s not found, completing without a successor", *completed.RecurrenceRuleID, completed.ID)
		return nil, nil
	}

	params, err := recurrencedomain.BuildNextRecurringTask(completed, *rule, domain.TaskID(u.newID()), now)
	if err != nil {
		log.Printf("[TaskUsecase] Recurrence rule %s is unusable: %v", rule.ID, err)
		return nil, nil
	}
	next, err := domain.CreateTask(params, now)
	if err != nil {
		return nil, err
	}
	return &next, nil
}

func (u *taskUsecase) UncompleteTask(ctx context.Context, actor shared.Actor, id domain.TaskID) (*domain.Task, error) {
	return u.transition(ctx, actor, id, domain.UncompleteTask, events.TaskUncompleted)
}

func (u *taskUsecase) CancelTask(ctx context.Context, actor shared.Actor, id domain.TaskID) (*domain.Task, error) {
	return u.transition(ctx, actor, id, domain.CancelTask, events.TaskCanceled)
}

func (u *taskUsecase) DeleteTask(ctx context.Context, actor shared.Actor, id domain.TaskID) error {
	_, err := u.transition(ctx, actor, id, domain.DeleteTask, events.TaskDeleted)
	return err
}

func (u *taskUsecase) transition(ctx context.Context, actor shared.Actor, id domain.TaskID,
	apply func(domain.Task, time.Time) (domain.Task, error), eventType events.Type) (*domain.Task, error) {
	task, err := u.GetTask(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	next, err := apply(*task, now)
	if err != nil {
		return nil, err
	}
	if err := u.taskRepo.Save(ctx, &next); err != nil {
		return nil, err
	}

	u.publish(ctx, eventType, actor, next, now)
	return &next, nil
}

// checkReferences validates the project first, then the tags.
func (u *taskUsecase) checkReferences(ctx context.Context, workspaceID shared.WorkspaceID, project *shared.ProjectID, tags shared.TagIDs) error {
	if project != nil && u.projects != nil {
		ok, err := u.projects.ProjectExists(ctx, workspaceID, *project)
		if err != nil {
			return err
		}
		if !ok {
			return shared.NewValidationError("projectId", fmt.Sprintf("project %s does not exist", *project))
		}
	}
	if len(tags) > 0 && u.tags != nil {
		missing, err := u.tags.FirstMissingTag(ctx, workspaceID, tags)
		if err != nil {
			return err
		}
		if missing != "" {
			return shared.NewValidationError("tagIds", fmt.Sprintf("tag %s does not exist", missing))
		}
	}
	return nil
}

func (u *taskUsecase) publish(ctx context.Context, eventType events.Type, actor shared.Actor, task domain.Task, now time.Time) {
	u.publisher.Publish(ctx, events.New(eventType, task.WorkspaceID, actor.UserID, string(task.ID), now))
}

func defaultStatus(filter *repository.ListFilter, status domain.Status) {
	if filter.Status == nil {
		filter.Status = &status
	}
}
