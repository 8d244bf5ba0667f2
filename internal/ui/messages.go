package ui

import (
	"searchalicious/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.Event
}

// refreshMsg asks for a redraw after state changed outside the event bus,
// such as suggestions arriving for an input
type refreshMsg struct{}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// historyMsg is sent once the searches followed a history move
type historyMsg struct {
	err error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
