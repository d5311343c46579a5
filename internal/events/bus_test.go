package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishReachesSubscribers(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var got []Event
	record := func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	}

	bus.Subscribe(TaskCompleted, record)
	bus.SubscribeAll(record)
	assert.Equal(t, 2, bus.HandlerCount(TaskCompleted))
	assert.Equal(t, 1, bus.HandlerCount(TaskCreated))

	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	bus.Publish(context.Background(), New(TaskCompleted, "ws-1", "user-1", "task-1", now))
	bus.Publish(context.Background(), New(TaskCreated, "ws-1", "user-1", "task-2", now))
	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 3)
	counts := map[Type]int{}
	for _, e := range got {
		counts[e.Type]++
		assert.Equal(t, now, e.OccurredAt)
		assert.NotEmpty(t, e.ID)
	}
	assert.Equal(t, 2, counts[TaskCompleted])
	assert.Equal(t, 1, counts[TaskCreated])
}

func TestBus_HandlerPanicIsContained(t *testing.T) {
	bus := NewBus()
	done := make(chan struct{})

	bus.Subscribe(TaskDeleted, func(Event) { panic("boom") })
	bus.Subscribe(TaskDeleted, func(Event) { close(done) })

	bus.Publish(context.Background(), New(TaskDeleted, "ws", "u", "t", time.Now()))
	bus.Wait()

	select {
	case <-done:
	default:
		t.Fatal("second handler did not run")
	}
}

func TestEvent_WithCopiesRelated(t *testing.T) {
	base := New(RecurringTaskSpawned, "ws", "u", "task-2", time.Now()).With("previous_task_id", "task-1")
	extended := base.With("recurrence_rule_id", "rule-1")

	assert.Len(t, base.Related, 1)
	assert.Len(t, extended.Related, 2)
	assert.Equal(t, "task-1", extended.Related["previous_task_id"])
}
