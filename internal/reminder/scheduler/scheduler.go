package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"taskflow-backend/internal/events"
	"taskflow-backend/internal/notification"
	"taskflow-backend/internal/reminder/domain"
	"taskflow-backend/internal/shared"
	taskdomain "taskflow-backend/internal/task/domain"

	"golang.org/x/sync/semaphore"
)

// ReminderStore is the reminder persistence the scheduler needs.
type ReminderStore interface {
	FindDue(ctx context.Context, before time.Time, limit int) ([]*domain.Reminder, error)
	Save(ctx context.Context, reminder *domain.Reminder) error
}

// TaskStore loads the task a reminder points to; (nil, nil) when it is gone.
type TaskStore interface {
	FindByID(ctx context.Context, id taskdomain.TaskID) (*taskdomain.Task, error)
}

// Lease guards a scan across instances. Acquire reports false when another
// instance holds it.
type Lease interface {
	Acquire(ctx context.Context) (release func(), ok bool, err error)
}

// Config tunes the scheduler. Zero values take the defaults.
type Config struct {
	Interval    time.Duration
	SendTimeout time.Duration
	BatchSize   int
}

// Report summarises one scan.
type Report struct {
	Scanned   int
	Sent      int
	Dismissed int
	Skipped   int
	Failed    int
	// NotRun is set when the scan did not happen because another one held
	// the local guard or the lease.
	NotRun bool
}

// ReminderScheduler triages due reminders on a fixed interval
type ReminderScheduler struct {
	reminders   ReminderStore
	tasks       TaskStore
	channel     notification.Channel
	publisher   events.Publisher
	clock       shared.Clock
	lease       Lease
	interval    time.Duration
	sendTimeout time.Duration
	batchSize   int

	guard    *semaphore.Weighted
	ticks    sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewReminderScheduler creates a new scheduler
func NewReminderScheduler(
	reminders ReminderStore,
	tasks TaskStore,
	channel notification.Channel,
	publisher events.Publisher,
	clock shared.Clock,
	cfg Config,
) *ReminderScheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if publisher == nil {
		publisher = events.Discard{}
	}
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &ReminderScheduler{
		reminders:   reminders,
		tasks:       tasks,
		channel:     channel,
		publisher:   publisher,
		clock:       clock,
		interval:    cfg.Interval,
		sendTimeout: cfg.SendTimeout,
		batchSize:   cfg.BatchSize,
		guard:       semaphore.NewWeighted(1),
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// SetLease adds a cross-instance guard around every scan
func (s *ReminderScheduler) SetLease(lease Lease) {
	s.lease = lease
}

// Start begins the scheduler loop. It runs a scan immediately and then on
// every tick until ctx is canceled or Stop is called.
func (s *ReminderScheduler) Start(ctx context.Context) {
	log.Printf("[ReminderScheduler] Starting reminder scheduler (interval: %s)", s.interval)

	go func() {
		defer close(s.done)

		// Run immediately on start
		s.RunOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// Overlapping ticks are dropped by RunOnce's guard.
				s.ticks.Add(1)
				go func() {
					defer s.ticks.Done()
					s.RunOnce(ctx)
				}()
			case <-ctx.Done():
				log.Println("[ReminderScheduler] Context done, scheduler stopped")
				return
			case <-s.stopChan:
				log.Println("[ReminderScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop ends the loop and waits for the in-flight scan, if any, to finish.
// It must only be called after Start.
func (s *ReminderScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	<-s.done
	s.ticks.Wait()
}

// RunOnce performs a single scan. At most one scan runs at a time per
// process; a call that finds one in flight returns immediately.
func (s *ReminderScheduler) RunOnce(ctx context.Context) Report {
	if !s.guard.TryAcquire(1) {
		log.Println("[ReminderScheduler] Previous scan still running, skipping tick")
		return Report{NotRun: true}
	}
	defer s.guard.Release(1)

	if s.lease != nil {
		release, ok, err := s.lease.Acquire(ctx)
		if err != nil {
			log.Printf("[ReminderScheduler] Could not acquire scan lease: %v", err)
			return Report{NotRun: true}
		}
		if !ok {
			return Report{NotRun: true}
		}
		defer release()
	}

	return s.scan(ctx)
}

func (s *ReminderScheduler) scan(ctx context.Context) Report {
	var report Report
	now := s.clock.Now()

	due, err := s.reminders.FindDue(ctx, now, s.batchSize)
	if err != nil {
		log.Printf("[ReminderScheduler] Error finding due reminders: %v", err)
		return report
	}
	if len(due) == 0 {
		return report
	}

	log.Printf("[ReminderScheduler] Found %d due reminders", len(due))

	for _, reminder := range due {
		if ctx.Err() != nil {
			log.Printf("[ReminderScheduler] Scan interrupted: %v", ctx.Err())
			break
		}
		report.Scanned++
		s.process(ctx, *reminder, now, &report)
	}

	log.Printf("[ReminderScheduler] Scan done: scanned=%d sent=%d dismissed=%d skipped=%d failed=%d",
		report.Scanned, report.Sent, report.Dismissed, report.Skipped, report.Failed)
	return report
}

// process triages one reminder. Failures are counted and logged, never
// returned, so one bad reminder cannot stall the rest of the batch.
func (s *ReminderScheduler) process(ctx context.Context, reminder domain.Reminder, now time.Time, report *Report) {
	task, err := s.tasks.FindByID(ctx, reminder.TaskID)
	if err != nil {
		log.Printf("[ReminderScheduler] Error loading task %s for reminder %s: %v", reminder.TaskID, reminder.ID, err)
		report.Failed++
		return
	}

	result := domain.TriageReminder(reminder, task, now)
	switch result.Outcome {
	case domain.OutcomeSkip:
		log.Printf("[ReminderScheduler] Skipping reminder %s: %v", reminder.ID, result.Err)
		report.Skipped++

	case domain.OutcomeDismiss:
		if err := s.reminders.Save(ctx, &result.Reminder); err != nil {
			log.Printf("[ReminderScheduler] Error dismissing reminder %s: %v", reminder.ID, err)
			report.Failed++
			return
		}
		s.publisher.Publish(ctx, events.New(events.ReminderDismissed, reminder.WorkspaceID, "", string(reminder.ID), now).
			With("task_id", string(reminder.TaskID)))
		report.Dismissed++

	case domain.OutcomeSend:
		// Marked sent before delivery: a crash between the two loses a
		// notification instead of repeating it.
		if err := s.reminders.Save(ctx, &result.Reminder); err != nil {
			log.Printf("[ReminderScheduler] Error marking reminder %s as sent: %v", reminder.ID, err)
			report.Failed++
			return
		}

		sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		err := s.channel.Send(sendCtx, result.Reminder, *result.Task)
		cancel()
		if err != nil {
			log.Printf("[ReminderScheduler] Error sending reminder %s for task %s: %v", reminder.ID, reminder.TaskID, err)
			report.Failed++
			return
		}

		s.publisher.Publish(ctx, events.New(events.ReminderTriggered, reminder.WorkspaceID, result.Task.OwnerUserID, string(reminder.ID), now).
			With("task_id", string(reminder.TaskID)))
		report.Sent++
	}
}
