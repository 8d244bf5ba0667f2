package widgets

import (
	"sync"

	"searchalicious/internal/domain"
	"searchalicious/internal/eventbus"
	"searchalicious/internal/registry"
)

// Sort holds the sort options of a search. Selecting an option publishes
// SortOptionSelected; the container applies it and, with auto refresh,
// launches a new search.
type Sort struct {
	*Consumer
	registry    *registry.Registry
	options     []domain.SortOption
	autoRefresh bool
	unregister  func()

	mu      sync.RWMutex
	current int
}

// NewSort creates a sort container. No option is active initially.
func NewSort(searchName string, options []domain.SortOption, autoRefresh bool, bus eventbus.EventBus, reg *registry.Registry) *Sort {
	return &Sort{
		Consumer:    newConsumer(searchName, bus),
		registry:    reg,
		options:     options,
		autoRefresh: autoRefresh,
		current:     -1,
	}
}

// Attach registers the container and listens for option selections
func (s *Sort) Attach() {
	if s.registry != nil {
		s.unregister = s.registry.RegisterSort(s)
	}
	s.on(domain.EventSortOptionSelected, func(e eventbus.Event) {
		ev, ok := e.(domain.SortOptionSelectedEvent)
		if !ok {
			return
		}
		if !s.SelectByID(ev.OptionID) {
			return
		}
		if s.autoRefresh {
			s.launchSearch()
		}
	})
}

// Detach unregisters the container and its subscriptions
func (s *Sort) Detach() {
	if s.unregister != nil {
		s.unregister()
		s.unregister = nil
	}
	s.Consumer.Detach()
}

// Options returns the available options
func (s *Sort) Options() []domain.SortOption {
	return append([]domain.SortOption(nil), s.options...)
}

// Current returns the active option
func (s *Sort) Current() (domain.SortOption, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current < 0 {
		return domain.SortOption{}, false
	}
	return s.options[s.current], true
}

// Select publishes the selection of an option
func (s *Sort) Select(id string) {
	s.bus.Publish(domain.SortOptionSelectedEvent{Routed: s.routed(), OptionID: id})
}

// Cycle selects the option after the active one
func (s *Sort) Cycle() {
	if len(s.options) == 0 {
		return
	}
	s.mu.RLock()
	next := (s.current + 1) % len(s.options)
	s.mu.RUnlock()
	s.Select(s.options[next].ID)
}

// SortOptionID implements domain.SortProvider
func (s *Sort) SortOptionID() string {
	if opt, ok := s.Current(); ok {
		return opt.ID
	}
	return ""
}

// SortBy implements domain.SortProvider
func (s *Sort) SortBy() string {
	if opt, ok := s.Current(); ok {
		return opt.Field
	}
	return ""
}

// SelectByID implements domain.SortProvider. It does not publish anything.
func (s *Sort) SelectByID(id string) bool {
	for i, opt := range s.options {
		if opt.ID == id {
			s.mu.Lock()
			s.current = i
			s.mu.Unlock()
			return true
		}
	}
	return false
}
