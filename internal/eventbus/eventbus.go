package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"github.com/utcofficial/sophon-search/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventQueryCommitted     = domain.EventQueryCommitted
	EventSuggestionsFetched = domain.EventSuggestionsFetched
	EventSearchStarted      = domain.EventSearchStarted
	EventProbeCompleted     = domain.EventProbeCompleted
	EventSearchSettled      = domain.EventSearchSettled
	EventSearchFailed       = domain.EventSearchFailed
	EventError              = domain.EventError
	EventSessionSaved       = domain.EventSessionSaved
	EventHealthChecked      = domain.EventHealthChecked
)

// Re-export domain event types
type QueryCommittedEvent = domain.QueryCommittedEvent
type SuggestionsFetchedEvent = domain.SuggestionsFetchedEvent
type SearchStartedEvent = domain.SearchStartedEvent
type ProbeCompletedEvent = domain.ProbeCompletedEvent
type SearchSettledEvent = domain.SearchSettledEvent
type SearchFailedEvent = domain.SearchFailedEvent
type ErrorEvent = domain.ErrorEvent
type SessionSavedEvent = domain.SessionSavedEvent
type HealthCheckedEvent = domain.HealthCheckedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

// subscription pairs a handler with the id its unsubscribe closure
// removes it by
type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Suggestion fetches fire on every debounce settle; don't log them
	switch event.Type() {
	case EventSuggestionsFetched:
	default:
		log.Printf("EventBus: publishing event %s", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		// Channel full, log and drop
		log.Printf("EventBus: channel full, dropping event %s", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	// Removal is by id, not position: earlier unsubscribes shift the
	// slice under later closures
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Close stops the dispatcher and drains pending events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// Copy so handlers run without holding the lock
			handlers := make([]EventHandler, len(subs))
			for i, s := range subs {
				handlers[i] = s.handler
			}
			b.mu.RUnlock()

			for _, handler := range handlers {
				func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("EventBus: handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
