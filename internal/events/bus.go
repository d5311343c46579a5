package events

import (
	"context"
	"log"
	"sync"
)

// Handler handles one event.
type Handler func(event Event)

// Bus is an in-memory publish/subscribe hub. Handlers run asynchronously and a
// panicking handler is logged, not propagated.
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
	inflight sync.WaitGroup
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type.
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers a handler for all event types.
func (b *Bus) SubscribeAll(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, t := range AllTypes() {
		b.handlers[t] = append(b.handlers[t], handler)
	}
	log.Println("[Events] Subscribed handler to all event types")
}

// Publish hands the event to every handler of its type.
func (b *Bus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.inflight.Add(1)
		go func(h Handler) {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Events] Handler panic for %s: %v", event.Type, r)
				}
			}()
			h(event)
		}(handler)
	}
}

// Wait blocks until every handler started so far has returned.
func (b *Bus) Wait() {
	b.inflight.Wait()
}

// HandlerCount returns the number of handlers for a specific event type.
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}
