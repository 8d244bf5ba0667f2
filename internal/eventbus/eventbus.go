// Package eventbus carries search events between the controller and the widgets.
package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"searchalicious/internal/domain"
)

// Re-export domain types for convenience
type Event = domain.Event
type EventType = domain.EventType

// Handler is a function that handles search events
type Handler func(Event)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event Event)
	// Subscribe returns an unsubscribe function. Calling it more than once is a no-op.
	Subscribe(eventType EventType, handler Handler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler Handler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64

	eventChan chan Event
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	sync      bool
}

// New creates an event bus delivering events on a dispatcher goroutine.
// Handlers run one at a time, in publish order.
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan Event, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// NewSync creates an event bus delivering events inline, on the publisher's goroutine
func NewSync() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
		sync:     true,
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event Event) {
	slog.Debug("publishing event", "type", event.Type(), "search_name", event.SearchName())

	if b.sync {
		b.deliver(event)
		return
	}

	select {
	case <-b.quit:
		slog.Debug("event bus closed, dropping event", "type", event.Type())
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		// Channel full, log and drop
		slog.Error("event bus channel full, dropping event", "type", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
func (b *bus) Subscribe(eventType EventType, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		handlers := b.handlers[eventType]
		for i, s := range handlers {
			if s.id == id {
				remaining := make([]subscription, 0, len(handlers)-1)
				remaining = append(remaining, handlers[:i]...)
				b.handlers[eventType] = append(remaining, handlers[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Events still queued are discarded.
func (b *bus) Close() {
	if b.sync {
		return
	}
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)
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

func (b *bus) deliver(event Event) {
	// Copy to avoid holding the lock during handler execution
	b.mu.RLock()
	handlers := make([]subscription, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range handlers {
		b.call(s.handler, event)
	}
}

func (b *bus) call(h Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event handler panic",
				"type", event.Type(),
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	h(event)
}

// ForSearch wraps h so it only sees events routed to searchName
func ForSearch(searchName string, h Handler) Handler {
	return func(event Event) {
		if event.SearchName() != searchName {
			slog.Debug("ignoring event for another search",
				"type", event.Type(),
				"search_name", searchName,
				"event_search_name", event.SearchName())
			return
		}
		h(event)
	}
}
