package widgets

import (
	"context"
	"log/slog"
	"sync"

	"searchalicious/internal/debounce"
	"searchalicious/internal/domain"
	"searchalicious/internal/eventbus"
	"searchalicious/internal/registry"
	"searchalicious/internal/search"
)

// SearchBarInput is the input name of the search bar autocomplete
const SearchBarInput = "search-bar"

// SearchBar edits the query of a controller. Picking a taxonomy suggestion
// selects the term in the matching facet instead of searching it as text.
type SearchBar struct {
	*Consumer
	ctrl      *search.Controller
	registry  *registry.Registry
	suggester Suggester
	ctx       context.Context

	mu         sync.Mutex
	taxonomyOf map[string]string

	Input *Autocomplete
}

// NewSearchBar creates a search bar bound to ctrl. A nil suggester disables suggestions.
func NewSearchBar(ctrl *search.Controller, suggester Suggester, bus eventbus.EventBus, reg *registry.Registry, blur *debounce.Debouncer) *SearchBar {
	if suggester == nil {
		suggester = NoSuggester{}
	}
	return &SearchBar{
		Consumer:   newConsumer(ctrl.SearchName(), bus),
		ctrl:       ctrl,
		registry:   reg,
		suggester:  suggester,
		ctx:        context.Background(),
		taxonomyOf: make(map[string]string),
		Input:      NewAutocomplete(ctrl.SearchName(), SearchBarInput, bus, blur),
	}
}

// Attach subscribes the bar to its autocomplete events
func (b *SearchBar) Attach(ctx context.Context) {
	b.ctx = ctx
	b.on(domain.EventAutocompleteInput, b.handleInput)
	b.on(domain.EventAutocompleteSubmit, b.handleSubmit)
}

// Query returns the query of the controller
func (b *SearchBar) Query() string {
	return b.ctrl.Query()
}

// SetQuery updates the query and asks for suggestions
func (b *SearchBar) SetQuery(q string) {
	b.ctrl.SetQuery(q)
	b.Input.SetValue(q)
}

// Submit launches a search, or applies the highlighted suggestion
func (b *SearchBar) Submit() {
	if b.Input.Selected() >= 0 && b.Input.Submit() {
		return
	}
	b.Input.Reset()
	b.launchSearch()
}

// Label is the action the submit key performs, as shown to the user
func (b *SearchBar) Label() string {
	if b.ctrl.IsSearchChanged() {
		return "Search"
	}
	return "Refresh"
}

func (b *SearchBar) handleInput(e eventbus.Event) {
	ev, ok := e.(domain.AutocompleteInputEvent)
	if !ok || ev.InputName != SearchBarInput {
		return
	}
	go func() {
		suggestions, latest, err := b.suggester.Suggest(b.ctx, ev.Value)
		if err != nil {
			slog.DebugContext(b.ctx, "no search bar suggestions", "error", err)
			return
		}
		if !latest {
			return
		}
		b.mu.Lock()
		for _, s := range suggestions {
			b.taxonomyOf[s.Value] = s.Taxonomy
		}
		b.mu.Unlock()
		b.Input.SetSuggestions(suggestions)
	}()
}

func (b *SearchBar) handleSubmit(e eventbus.Event) {
	ev, ok := e.(domain.AutocompleteSubmitEvent)
	if !ok || ev.InputName != SearchBarInput {
		return
	}

	b.mu.Lock()
	taxonomy := b.taxonomyOf[ev.Value]
	b.mu.Unlock()

	if taxonomy != "" && b.registry != nil {
		for _, p := range b.registry.Facets(b.SearchName()) {
			if p.SelectTermByTaxonomy(taxonomy, ev.Value) {
				b.ctrl.SetQuery("")
				b.launchSearch()
				return
			}
		}
	}

	// no facet for the term, search it as text
	query := ev.Label
	if query == "" {
		query = ev.Value
	}
	b.ctrl.SetQuery(query)
	b.launchSearch()
}
