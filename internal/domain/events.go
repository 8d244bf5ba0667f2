package domain

// DefaultSearchName is the search name used by every component that does not
// declare one explicitly
const DefaultSearchName = "searchalicious"

// EventType represents the type of a search event
type EventType string

// Event types
const (
	EventLaunchSearch            EventType = "searchalicious-search"
	EventChangePage              EventType = "searchalicious-change-page"
	EventNewResult               EventType = "searchalicious-new-result"
	EventAutocompleteInput       EventType = "searchalicious-autocomplete-input"
	EventAutocompleteSubmit      EventType = "searchalicious-autocomplete-submit"
	EventSortOptionSelected      EventType = "searchalicious-sort-option-selected"
	EventChangeChartSidebarState EventType = "searchalicious-change-chart-sidebar-state"
)

// Event is the interface for all search events. SearchName is the routing key:
// a component only reacts to events carrying its own search name.
type Event interface {
	Type() EventType
	SearchName() string
}

// Routed carries the search name every event is routed by
type Routed struct {
	Name string
}

// SearchName returns the routing key of the event
func (r Routed) SearchName() string { return r.Name }

// LaunchSearchEvent asks the search controller to run a search
type LaunchSearchEvent struct {
	Routed
}

func (e LaunchSearchEvent) Type() EventType { return EventLaunchSearch }

// ChangePageEvent asks the search controller to load another page
type ChangePageEvent struct {
	Routed
	Page int
}

func (e ChangePageEvent) Type() EventType { return EventChangePage }

// NewResultEvent is broadcast by the search controller once a response was applied
type NewResultEvent struct {
	Routed
	Results     []Hit
	Count       int
	PageCount   int
	CurrentPage int
	PageSize    int
	Facets      map[string]FacetResult
	Charts      map[string]ChartData
}

func (e NewResultEvent) Type() EventType { return EventNewResult }

// AutocompleteInputEvent is emitted when the value of an autocomplete input changes.
// InputName identifies the owning facet or suggester.
type AutocompleteInputEvent struct {
	Routed
	InputName string
	Value     string
}

func (e AutocompleteInputEvent) Type() EventType { return EventAutocompleteInput }

// AutocompleteSubmitEvent is emitted when an autocomplete value is submitted
type AutocompleteSubmitEvent struct {
	Routed
	InputName string
	Value     string
	Label     string
}

func (e AutocompleteSubmitEvent) Type() EventType { return EventAutocompleteSubmit }

// SortOptionSelectedEvent is emitted when a sort option is picked
type SortOptionSelectedEvent struct {
	Routed
	OptionID string
}

func (e SortOptionSelectedEvent) Type() EventType { return EventSortOptionSelected }

// ChangeChartSidebarStateEvent is emitted when the chart sidebar is toggled
type ChangeChartSidebarStateEvent struct {
	Routed
	State ChartSidebarState
}

func (e ChangeChartSidebarStateEvent) Type() EventType { return EventChangeChartSidebarState }
