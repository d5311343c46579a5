package domain

import (
	"time"

	taskdomain "taskflow-backend/internal/task/domain"
)

// Outcome is the decision triage reaches for one due reminder.
type Outcome string

const (
	OutcomeSend    Outcome = "send"
	OutcomeDismiss Outcome = "dismiss"
	OutcomeSkip    Outcome = "skip"
)

// TriageResult always holds exactly one outcome. Reminder is the updated
// value for send and dismiss and the untouched input for skip. Task is set for
// send only; Err carries the mutator's rejection for skip.
type TriageResult struct {
	Outcome  Outcome
	Reminder Reminder
	Task     *taskdomain.Task
	Err      error
}

// TriageReminder decides the fate of a due reminder from the current state of
// its task: a missing, inactive or deleted task dismisses the reminder, an
// eligible one sends it.
func TriageReminder(r Reminder, task *taskdomain.Task, now time.Time) TriageResult {
	if !eligible(task) {
		dismissed, err := DismissReminder(r, now)
		if err != nil {
			return TriageResult{Outcome: OutcomeSkip, Reminder: r, Err: err}
		}
		return TriageResult{Outcome: OutcomeDismiss, Reminder: dismissed}
	}

	sent, err := MarkReminderSent(r, now)
	if err != nil {
		return TriageResult{Outcome: OutcomeSkip, Reminder: r, Err: err}
	}
	t := *task
	return TriageResult{Outcome: OutcomeSend, Reminder: sent, Task: &t}
}

func eligible(task *taskdomain.Task) bool {
	return task != nil && task.Status == taskdomain.StatusActive && !task.IsDeleted()
}
