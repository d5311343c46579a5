// Package events carries the informational records emitted after a command
// has been applied and persisted. Events hold ids and a timestamp only, never
// entity payloads.
package events

import (
	"context"
	"time"

	"taskflow-backend/internal/shared"

	"github.com/google/uuid"
)

// Type names an event.
type Type string

const (
	TaskCreated          Type = "task.created"
	TaskUpdated          Type = "task.updated"
	TaskCompleted        Type = "task.completed"
	TaskUncompleted      Type = "task.uncompleted"
	TaskCanceled         Type = "task.canceled"
	TaskDeleted          Type = "task.deleted"
	RecurringTaskSpawned Type = "task.recurring_spawned"

	ReminderCreated   Type = "reminder.created"
	ReminderUpdated   Type = "reminder.updated"
	ReminderTriggered Type = "reminder.triggered"
	ReminderDismissed Type = "reminder.dismissed"
	ReminderDeleted   Type = "reminder.deleted"

	RecurrenceRuleSet     Type = "recurrence.rule_set"
	RecurrenceRuleRemoved Type = "recurrence.rule_removed"

	ProjectCreated Type = "project.created"
	ProjectRenamed Type = "project.renamed"
	ProjectDeleted Type = "project.deleted"

	TagCreated Type = "tag.created"
	TagRenamed Type = "tag.renamed"
	TagDeleted Type = "tag.deleted"
)

// AllTypes lists every event type, for subscribers that want everything.
func AllTypes() []Type {
	return []Type{
		TaskCreated, TaskUpdated, TaskCompleted, TaskUncompleted, TaskCanceled, TaskDeleted, RecurringTaskSpawned,
		ReminderCreated, ReminderUpdated, ReminderTriggered, ReminderDismissed, ReminderDeleted,
		RecurrenceRuleSet, RecurrenceRuleRemoved,
		ProjectCreated, ProjectRenamed, ProjectDeleted,
		TagCreated, TagRenamed, TagDeleted,
	}
}

// Event is an informational record of a successful mutation.
type Event struct {
	ID          string            `json:"id"`
	Type        Type              `json:"type"`
	WorkspaceID string            `json:"workspace_id"`
	UserID      string            `json:"user_id,omitempty"`
	AggregateID string            `json:"aggregate_id"`
	Related     map[string]string `json:"related,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// New builds an event for aggregateID.
func New(t Type, workspaceID shared.WorkspaceID, userID shared.UserID, aggregateID string, occurredAt time.Time) Event {
	return Event{
		ID:          uuid.New().String(),
		Type:        t,
		WorkspaceID: string(workspaceID),
		UserID:      string(userID),
		AggregateID: aggregateID,
		OccurredAt:  occurredAt,
	}
}

// With returns a copy of e with an extra related id.
func (e Event) With(key, value string) Event {
	related := make(map[string]string, len(e.Related)+1)
	for k, v := range e.Related {
		related[k] = v
	}
	related[key] = value
	e.Related = related
	return e
}

// Publisher is fire-and-forget: publishing never fails the command that
// produced the event.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, Event) {}
