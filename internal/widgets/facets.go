package widgets

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"searchalicious/internal/debounce"
	"searchalicious/internal/domain"
	"searchalicious/internal/eventbus"
	"searchalicious/internal/history"
	"searchalicious/internal/registry"
)

// TermsFacet is one facet: the buckets of the last result plus the terms
// the user selected
type TermsFacet struct {
	name     string
	taxonomy string

	mu       sync.RWMutex
	title    string
	items    []domain.FacetItem
	selected []string

	// Input adds terms that are not among the buckets
	Input *Autocomplete
}

// Name returns the facet name sent to the API
func (f *TermsFacet) Name() string {
	return f.name
}

// Taxonomy returns the taxonomy the facet terms belong to, if any
func (f *TermsFacet) Taxonomy() string {
	return f.taxonomy
}

// Title returns the display name reported by the API, falling back to the name
func (f *TermsFacet) Title() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.title != "" {
		return f.title
	}
	return f.name
}

// Items returns the buckets of the last result followed by selected terms
// missing from them, so they can still be unselected
func (f *TermsFacet) Items() []domain.FacetItem {
	f.mu.RLock()
	defer f.mu.RUnlock()

	items := append([]domain.FacetItem(nil), f.items...)
	known := make(map[string]bool, len(items))
	for _, item := range items {
		known[item.Key] = true
	}
	for _, term := range f.selected {
		if !known[term] {
			items = append(items, domain.FacetItem{Key: term})
		}
	}
	return items
}

// Selected returns the selected terms in selection order
func (f *TermsFacet) Selected() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.selected...)
}

// IsSelected reports whether term is selected
func (f *TermsFacet) IsSelected(term string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return indexOf(f.selected, term) >= 0
}

// Toggle flips the selection of term and returns the new state
func (f *TermsFacet) Toggle(term string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := indexOf(f.selected, term); i >= 0 {
		f.selected = append(f.selected[:i:i], f.selected[i+1:]...)
		return false
	}
	f.selected = append(f.selected, term)
	return true
}

// Select adds term to the selection
func (f *TermsFacet) Select(term string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if indexOf(f.selected, term) < 0 {
		f.selected = append(f.selected, term)
	}
}

func (f *TermsFacet) setSelected(terms []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = nil
	for _, t := range terms {
		if t != "" && indexOf(f.selected, t) < 0 {
			f.selected = append(f.selected, t)
		}
	}
}

func (f *TermsFacet) setResult(result domain.FacetResult, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !ok {
		f.items = nil
		return
	}
	f.title = result.Name
	f.items = result.Items
}

// FacetsOptions configures a facets container
type FacetsOptions struct {
	SearchName string
	Facets     []string
	// Taxonomies maps a facet name to the taxonomy of its terms
	Taxonomies map[string]string
	// Suggester provides term suggestions for the facet inputs
	Suggester Suggester
	// NewSuggester builds a suggester per facet taxonomy and takes
	// precedence over Suggester
	NewSuggester func(taxonomy string) Suggester
	BlurWait     time.Duration
}

// Facets is the container of the TermsFacets of one search. It is
// registered as a domain.FacetsProvider so the controller can poll it.
type Facets struct {
	*Consumer
	registry   *registry.Registry
	facets     []*TermsFacet
	byName     map[string]*TermsFacet
	suggesters map[string]Suggester
	unregister func()
	ctx        context.Context
}

// NewFacets creates a facets container
func NewFacets(opts FacetsOptions, bus eventbus.EventBus, reg *registry.Registry) *Facets {
	f := &Facets{
		Consumer:   newConsumer(opts.SearchName, bus),
		registry:   reg,
		byName:     make(map[string]*TermsFacet),
		suggesters: make(map[string]Suggester),
		ctx:        context.Background(),
	}
	for _, name := range opts.Facets {
		if _, dup := f.byName[name]; dup {
			continue
		}
		facet := &TermsFacet{
			name:     name,
			taxonomy: opts.Taxonomies[name],
			Input:    NewAutocomplete(f.SearchName(), name, bus, debounce.New(opts.BlurWait)),
		}
		f.facets = append(f.facets, facet)
		f.byName[name] = facet

		switch {
		case opts.NewSuggester != nil && facet.taxonomy != "":
			f.suggesters[name] = opts.NewSuggester(facet.taxonomy)
		case opts.Suggester != nil:
			f.suggesters[name] = opts.Suggester
		default:
			f.suggesters[name] = NoSuggester{}
		}
	}
	return f
}

// Attach registers the container and subscribes it to its events
func (f *Facets) Attach(ctx context.Context) {
	f.ctx = ctx
	if f.registry != nil {
		f.unregister = f.registry.RegisterFacets(f)
	}
	f.onResult(f.handleResult)
	f.on(domain.EventAutocompleteInput, f.handleInput)
	f.on(domain.EventAutocompleteSubmit, f.handleSubmit)
}

// Detach unregisters the container and its subscriptions
func (f *Facets) Detach() {
	if f.unregister != nil {
		f.unregister()
		f.unregister = nil
	}
	f.Consumer.Detach()
}

// Facet returns the facet with the given name, or nil
func (f *Facets) Facet(name string) *TermsFacet {
	return f.byName[name]
}

// List returns the facets in configuration order
func (f *Facets) List() []*TermsFacet {
	return append([]*TermsFacet(nil), f.facets...)
}

// FacetNames implements domain.FacetsProvider
func (f *Facets) FacetNames() []string {
	names := make([]string, 0, len(f.facets))
	for _, facet := range f.facets {
		names = append(names, facet.name)
	}
	return names
}

// SearchFilters implements domain.FacetsProvider
func (f *Facets) SearchFilters() string {
	return history.EncodeFacetsFilters(f.SelectedTerms(), f.FacetNames())
}

// SelectedTerms returns the selection of every facet having one
func (f *Facets) SelectedTerms() map[string][]string {
	terms := make(map[string][]string)
	for _, facet := range f.facets {
		if selected := facet.Selected(); len(selected) > 0 {
			terms[facet.name] = selected
		}
	}
	return terms
}

// SetSelectedTerms implements domain.FacetsProvider
func (f *Facets) SetSelectedTerms(name string, terms []string) {
	if facet, ok := f.byName[name]; ok {
		facet.setSelected(terms)
	}
}

// SelectTermByTaxonomy implements domain.FacetsProvider
func (f *Facets) SelectTermByTaxonomy(taxonomy, term string) bool {
	for _, facet := range f.facets {
		if facet.taxonomy == taxonomy {
			facet.Select(term)
			return true
		}
	}
	return false
}

// ResetSelection implements domain.FacetsProvider
func (f *Facets) ResetSelection() {
	for _, facet := range f.facets {
		facet.setSelected(nil)
		facet.Input.Reset()
	}
}

// ToggleTerm flips a term of the named facet and launches a search
func (f *Facets) ToggleTerm(name, term string) bool {
	facet, ok := f.byName[name]
	if !ok {
		return false
	}
	facet.Toggle(term)
	f.launchSearch()
	return true
}

// Reset clears the selection and optionally launches a search
func (f *Facets) Reset(launch bool) {
	f.ResetSelection()
	if launch {
		f.launchSearch()
	}
}

func (f *Facets) handleResult(ev domain.NewResultEvent) {
	for _, facet := range f.facets {
		result, ok := ev.Facets[facet.name]
		facet.setResult(result, ok)
	}
}

func (f *Facets) handleInput(e eventbus.Event) {
	ev, ok := e.(domain.AutocompleteInputEvent)
	if !ok {
		return
	}
	facet, ok := f.byName[ev.InputName]
	if !ok {
		return
	}
	suggester := f.suggesters[facet.name]
	go func() {
		suggestions, latest, err := suggester.Suggest(f.ctx, ev.Value)
		if err != nil {
			slog.DebugContext(f.ctx, "no facet suggestions", "facet", facet.name, "error", err)
			return
		}
		if !latest {
			return
		}
		facet.Input.SetSuggestions(suggestions)
	}()
}

func (f *Facets) handleSubmit(e eventbus.Event) {
	ev, ok := e.(domain.AutocompleteSubmitEvent)
	if !ok {
		return
	}
	facet, ok := f.byName[ev.InputName]
	if !ok {
		return
	}
	facet.Select(ev.Value)
	f.launchSearch()
}

func indexOf(list []string, s string) int {
	for i, item := range list {
		if item == s {
			return i
		}
	}
	return -1
}
