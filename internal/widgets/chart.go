package widgets

import (
	"sync"

	"searchalicious/internal/domain"
	"searchalicious/internal/eventbus"
)

// Chart keeps the payload of one named chart of the last result. Drawing it
// is left to the renderer.
type Chart struct {
	*Consumer
	name string

	mu   sync.RWMutex
	data domain.ChartData
}

// NewChart creates a chart widget
func NewChart(searchName, name string, bus eventbus.EventBus) *Chart {
	return &Chart{Consumer: newConsumer(searchName, bus), name: name}
}

// Attach subscribes the widget to the results of its search
func (c *Chart) Attach() {
	c.onResult(func(ev domain.NewResultEvent) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.data = ev.Charts[c.name]
	})
}

// Name returns the chart name
func (c *Chart) Name() string {
	return c.name
}

// Data returns the chart payload, nil when the last result had none
func (c *Chart) Data() domain.ChartData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

// ChartSidebar is the panel holding the charts. Toggling publishes
// ChangeChartSidebarState; the sidebar and any layout follow the event.
type ChartSidebar struct {
	*Consumer

	mu    sync.RWMutex
	state domain.ChartSidebarState
}

// NewChartSidebar creates a closed sidebar
func NewChartSidebar(searchName string, bus eventbus.EventBus) *ChartSidebar {
	return &ChartSidebar{
		Consumer: newConsumer(searchName, bus),
		state:    domain.SidebarClosed,
	}
}

// Attach subscribes the sidebar to state changes of its search
func (s *ChartSidebar) Attach() {
	s.on(domain.EventChangeChartSidebarState, func(e eventbus.Event) {
		ev, ok := e.(domain.ChangeChartSidebarStateEvent)
		if !ok {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.state = ev.State
	})
}

// State returns the display state
func (s *ChartSidebar) State() domain.ChartSidebarState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Toggle publishes the next state: closed, opened, expanded, closed again
func (s *ChartSidebar) Toggle() {
	s.bus.Publish(domain.ChangeChartSidebarStateEvent{Routed: s.routed(), State: s.State().Next()})
}
