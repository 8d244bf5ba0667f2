package widgets

import (
	"fmt"
	"sync"

	"searchalicious/internal/domain"
	"searchalicious/internal/eventbus"
)

// Count shows the number of hits of the last result
type Count struct {
	*Consumer

	mu    sync.RWMutex
	count int
}

// NewCount creates a count widget
func NewCount(searchName string, bus eventbus.EventBus) *Count {
	return &Count{Consumer: newConsumer(searchName, bus)}
}

// Attach subscribes the widget to the results of its search
func (c *Count) Attach() {
	c.onResult(func(ev domain.NewResultEvent) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.count = ev.Count
	})
}

// Count returns the total number of hits
func (c *Count) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}

// Text returns the count as displayed, empty before the first result
func (c *Count) Text() string {
	if !c.SearchLaunched() {
		return ""
	}
	switch n := c.Count(); n {
	case 0:
		return "no results"
	case 1:
		return "1 result"
	default:
		return fmt.Sprintf("%d results", n)
	}
}
