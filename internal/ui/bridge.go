package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"searchalicious/internal/domain"
	"searchalicious/internal/eventbus"
)

// bridgedEvents are the events the screen redraws on
var bridgedEvents = []eventbus.EventType{
	domain.EventLaunchSearch,
	domain.EventChangePage,
	domain.EventNewResult,
	domain.EventSortOptionSelected,
	domain.EventChangeChartSidebarState,
	domain.EventAutocompleteSubmit,
}

// Bridge forwards bus events to the program as EventMsg. The returned
// function removes the subscriptions.
func Bridge(bus eventbus.EventBus, program *tea.Program) func() {
	unsubs := make([]func(), 0, len(bridgedEvents))
	for _, eventType := range bridgedEvents {
		unsubs = append(unsubs, bus.Subscribe(eventType, func(e eventbus.Event) {
			program.Send(EventMsg{Event: e})
		}))
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}
