package widgets

import (
	"searchalicious/internal/eventbus"
	"searchalicious/internal/search"
)

// ResetButton clears the facet selection of a search and searches again
type ResetButton struct {
	*Consumer
	ctrl *search.Controller
}

// NewResetButton creates a reset button bound to ctrl
func NewResetButton(ctrl *search.Controller, bus eventbus.EventBus) *ResetButton {
	return &ResetButton{Consumer: newConsumer(ctrl.SearchName(), bus), ctrl: ctrl}
}

// Visible reports whether resetting would change anything
func (r *ResetButton) Visible() bool {
	return r.ctrl.CanReset()
}

// Press clears the facets and launches a search
func (r *ResetButton) Press() {
	r.ctrl.ClearFacets()
	r.launchSearch()
}
