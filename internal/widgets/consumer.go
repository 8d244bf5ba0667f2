// Package widgets holds the components reacting to search results and
// emitting search events. Rendering lives in internal/ui.
package widgets

import (
	"sync"

	"searchalicious/internal/domain"
	"searchalicious/internal/eventbus"
)

// Consumer is the base of every widget bound to a search name. It only
// forwards events routed to that name.
type Consumer struct {
	searchName string
	bus        eventbus.EventBus
	registrar  *eventbus.Registrar

	mu             sync.RWMutex
	searchLaunched bool
}

func newConsumer(searchName string, bus eventbus.EventBus) *Consumer {
	if searchName == "" {
		searchName = domain.DefaultSearchName
	}
	return &Consumer{
		searchName: searchName,
		bus:        bus,
		registrar:  eventbus.NewRegistrar(bus, 0),
	}
}

// SearchName returns the search the widget belongs to
func (c *Consumer) SearchName() string {
	return c.searchName
}

// SearchLaunched reports whether a result for this search was received
func (c *Consumer) SearchLaunched() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.searchLaunched
}

// Flush applies pending subscriptions immediately
func (c *Consumer) Flush() {
	c.registrar.Flush()
}

// Detach removes every subscription of the widget
func (c *Consumer) Detach() {
	c.registrar.Close()
}

// onResult subscribes fn to the results of this search
func (c *Consumer) onResult(fn func(domain.NewResultEvent)) {
	c.on(domain.EventNewResult, func(e eventbus.Event) {
		ev, ok := e.(domain.NewResultEvent)
		if !ok {
			return
		}
		c.mu.Lock()
		c.searchLaunched = true
		c.mu.Unlock()
		fn(ev)
	})
}

// on subscribes fn to events of the given type routed to this search
func (c *Consumer) on(eventType domain.EventType, fn eventbus.Handler) eventbus.Registration {
	return c.registrar.Add(eventType, eventbus.ForSearch(c.searchName, fn))
}

func (c *Consumer) routed() domain.Routed {
	return domain.Routed{Name: c.searchName}
}

func (c *Consumer) launchSearch() {
	c.bus.Publish(domain.LaunchSearchEvent{Routed: c.routed()})
}
