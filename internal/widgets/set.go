package widgets

import (
	"context"

	"searchalicious/internal/config"
	"searchalicious/internal/debounce"
	"searchalicious/internal/eventbus"
	"searchalicious/internal/history"
	"searchalicious/internal/httpclient"
	"searchalicious/internal/registry"
	"searchalicious/internal/search"
	"searchalicious/internal/taxonomy"
)

// Deps are the collaborators shared by every search of the application
type Deps struct {
	Config   *config.Config
	Bus      eventbus.EventBus
	Registry *registry.Registry
	Location *history.Location
	HTTP     *httpclient.Client
	// Taxonomy is optional; without it inputs offer no suggestions
	Taxonomy *taxonomy.Client
}

// Set is the controller of one search name with every widget bound to it
type Set struct {
	Name       string
	Controller *search.Controller
	Bar        *SearchBar
	Facets     *Facets
	Sort       *Sort
	Pagination *Pagination
	Results    *Results
	Count      *Count
	Charts     []*Chart
	Sidebar    *ChartSidebar
	Reset      *ResetButton
}

// NewSet builds the controller and widgets of one configured search
func NewSet(sc config.SearchConfig, deps Deps) (*Set, error) {
	cfg := deps.Config
	ctrl, err := search.New(search.Options{
		SearchName: sc.Name,
		BaseURL:    cfg.BaseURL,
		Index:      cfg.Index,
		Langs:      cfg.Langs,
		PageSize:   cfg.PageSize,
		Charts:     sc.Charts,
	}, deps.HTTP, deps.Bus, deps.Registry, deps.Location)
	if err != nil {
		return nil, err
	}

	results, err := NewResults(sc.Name, templatesOf(sc), deps.Bus)
	if err != nil {
		return nil, err
	}

	lang := ""
	if len(cfg.Langs) > 0 {
		lang = cfg.Langs[0]
	}
	var barSuggester Suggester
	var facetSuggester func(string) Suggester
	if deps.Taxonomy != nil {
		if len(sc.Taxonomies) > 0 {
			barSuggester = &TaxonomySuggester{Client: deps.Taxonomy, Lang: lang, Taxonomies: sc.Taxonomies, Size: sc.SuggestionSize}
		}
		facetSuggester = func(taxonomy string) Suggester {
			return &TaxonomySuggester{Client: deps.Taxonomy, Lang: lang, Taxonomies: []string{taxonomy}, Size: sc.SuggestionSize}
		}
	}

	wait := cfg.DebounceWait.Duration
	s := &Set{
		Name:       sc.Name,
		Controller: ctrl,
		Bar:        NewSearchBar(ctrl, barSuggester, deps.Bus, deps.Registry, debounce.New(wait)),
		Facets: NewFacets(FacetsOptions{
			SearchName:   sc.Name,
			Facets:       sc.Facets,
			Taxonomies:   sc.FacetTaxonomies,
			NewSuggester: facetSuggester,
			BlurWait:     wait,
		}, deps.Bus, deps.Registry),
		Sort:       NewSort(sc.Name, sc.SortOptions, sc.AutoRefreshSort, deps.Bus, deps.Registry),
		Pagination: NewPagination(sc.Name, cfg.DisplayedPages, deps.Bus),
		Results:    results,
		Count:      NewCount(sc.Name, deps.Bus),
		Sidebar:    NewChartSidebar(sc.Name, deps.Bus),
		Reset:      NewResetButton(ctrl, deps.Bus),
	}
	for _, chart := range sc.Charts {
		s.Charts = append(s.Charts, NewChart(sc.Name, chart, deps.Bus))
	}
	return s, nil
}

func templatesOf(sc config.SearchConfig) []string {
	if sc.ResultTemplate == "" {
		return nil
	}
	return []string{sc.ResultTemplate}
}

// Attach subscribes every component. Subscriptions apply on the next frame.
func (s *Set) Attach(ctx context.Context) {
	s.Controller.Attach(ctx)
	s.Bar.Attach(ctx)
	s.Facets.Attach(ctx)
	s.Sort.Attach()
	s.Pagination.Attach()
	s.Results.Attach()
	s.Count.Attach()
	s.Sidebar.Attach()
	for _, c := range s.Charts {
		c.Attach()
	}
}

// Flush applies pending subscriptions of every component immediately
func (s *Set) Flush() {
	s.Controller.Flush()
	for _, c := range s.consumers() {
		c.Flush()
	}
}

// Detach removes every subscription and registration
func (s *Set) Detach() {
	s.Controller.Detach()
	s.Facets.Detach()
	s.Sort.Detach()
	for _, c := range s.consumers() {
		c.Detach()
	}
}

func (s *Set) consumers() []*Consumer {
	consumers := []*Consumer{
		s.Bar.Consumer,
		s.Facets.Consumer,
		s.Sort.Consumer,
		s.Pagination.Consumer,
		s.Results.Consumer,
		s.Count.Consumer,
		s.Sidebar.Consumer,
		s.Reset.Consumer,
	}
	for _, c := range s.Charts {
		consumers = append(consumers, c.Consumer)
	}
	return consumers
}

// FirstSearch runs the deep-link search of the controller
func (s *Set) FirstSearch(ctx context.Context) (bool, error) {
	return s.Controller.FirstSearch(ctx)
}
