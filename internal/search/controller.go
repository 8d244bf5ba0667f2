// Package search runs searches against the search API and broadcasts the results.
package search

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"searchalicious/internal/domain"
	"searchalicious/internal/errors"
	"searchalicious/internal/eventbus"
	"searchalicious/internal/history"
	"searchalicious/internal/httpclient"
	"searchalicious/internal/log"
	"searchalicious/internal/registry"
	"searchalicious/internal/version"
)

const searchPath = "search"

// Controller owns the query and pagination state of one search name. Facet
// filters and the sort option are polled from the registry on every search.
type Controller struct {
	opts      Options
	client    *httpclient.Client
	bus       eventbus.EventBus
	registry  *registry.Registry
	location  *history.Location
	registrar *eventbus.Registrar
	guard     version.Guard

	// issueMu serializes the state read, the token and the history push of
	// each search, and query writes.
	issueMu sync.Mutex

	mu                sync.RWMutex
	ctx               context.Context
	query             string
	currentPage       *int
	pageCount         *int
	totalCount        *int
	results           []domain.Hit
	status            Status
	lastQuery         string
	lastFacetsFilters string
	lastErr           error
}

// New creates a controller
func New(opts Options, client *httpclient.Client, bus eventbus.EventBus, reg *registry.Registry, loc *history.Location) (*Controller, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	return &Controller{
		opts:      opts,
		client:    client,
		bus:       bus,
		registry:  reg,
		location:  loc,
		registrar: eventbus.NewRegistrar(bus, 0),
		ctx:       context.Background(),
	}, nil
}

// SearchName returns the routing key of the controller
func (c *Controller) SearchName() string {
	return c.opts.SearchName
}

// Attach subscribes the controller to LaunchSearch and ChangePage events of
// its search name. Searches triggered by events run with ctx.
func (c *Controller) Attach(ctx context.Context) {
	c.mu.Lock()
	c.ctx = log.AppendCtx(ctx, slog.String("search_name", c.opts.SearchName))
	c.mu.Unlock()

	c.registrar.Add(domain.EventLaunchSearch, eventbus.ForSearch(c.opts.SearchName, func(eventbus.Event) {
		go c.searchFromEvent(nil)
	}))
	c.registrar.Add(domain.EventChangePage, eventbus.ForSearch(c.opts.SearchName, func(e eventbus.Event) {
		ev, ok := e.(domain.ChangePageEvent)
		if !ok {
			return
		}
		page := ev.Page
		go c.searchFromEvent(&page)
	}))
}

// Flush applies pending event subscriptions immediately
func (c *Controller) Flush() {
	c.registrar.Flush()
}

// Detach removes every event subscription of the controller
func (c *Controller) Detach() {
	c.registrar.Close()
}

func (c *Controller) searchFromEvent(page *int) {
	c.mu.RLock()
	ctx := c.ctx
	c.mu.RUnlock()

	if err := c.Search(ctx, page); err != nil {
		slog.ErrorContext(ctx, "search failed", "error", err)
	}
}

// SetQuery replaces the free text query
func (c *Controller) SetQuery(q string) {
	c.issueMu.Lock()
	defer c.issueMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
}

// Query returns the free text query
func (c *Controller) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// Status returns the lifecycle state
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		SearchName:  c.opts.SearchName,
		Query:       c.query,
		CurrentPage: copyInt(c.currentPage),
		PageSize:    c.opts.PageSize,
		PageCount:   copyInt(c.pageCount),
		TotalCount:  copyInt(c.totalCount),
		Status:      c.status,
		Results:     append([]domain.Hit(nil), c.results...),
		Err:         c.lastErr,
	}
}

// Search runs a search for the current state. page is optional.
func (c *Controller) Search(ctx context.Context, page *int) error {
	return c.search(ctx, page, true)
}

func (c *Controller) search(ctx context.Context, page *int, pushHistory bool) error {
	if page != nil && *page < 1 {
		return errors.NewValidation("page must be greater than zero, got " + strconv.Itoa(*page))
	}

	token, query, facetsFilters, params, previous := c.issue(page, pushHistory)
	ctx = log.AppendCtx(ctx, slog.Int("search_version", token))

	slog.DebugContext(ctx, "searching", "params", params.Encode())

	var resp domain.SearchResponse
	err := c.client.GetJSON(ctx, c.opts.BaseURL, searchPath, params, &resp)
	if !c.guard.IsLatest(token) {
		slog.DebugContext(ctx, "discarding stale search response", "latest", c.guard.Current())
		return nil
	}
	if err != nil {
		c.mu.Lock()
		c.status = previous
		c.lastErr = err
		c.mu.Unlock()
		return err
	}

	currentPage := resp.Page
	if currentPage == 0 {
		currentPage = 1
		if page != nil {
			currentPage = *page
		}
	}
	pageSize := resp.PageSize
	if pageSize == 0 {
		pageSize = c.opts.PageSize
	}

	c.mu.Lock()
	c.currentPage = &currentPage
	c.pageCount = &resp.PageCount
	c.totalCount = &resp.Count
	c.results = resp.Hits
	c.lastQuery = query
	c.lastFacetsFilters = facetsFilters
	c.status = StatusReady
	c.lastErr = nil
	c.mu.Unlock()

	c.bus.Publish(domain.NewResultEvent{
		Routed:      domain.Routed{Name: c.opts.SearchName},
		Results:     resp.Hits,
		Count:       resp.Count,
		PageCount:   resp.PageCount,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		Facets:      resp.Facets,
		Charts:      resp.Charts,
	})
	return nil
}

// issue snapshots the search state, takes the version token and pushes the
// history entry in one critical section, so tokens follow snapshot order.
func (c *Controller) issue(page *int, pushHistory bool) (token int, query, facetsFilters string, params url.Values, previous Status) {
	c.issueMu.Lock()
	defer c.issueMu.Unlock()

	c.mu.RLock()
	query = c.query
	c.mu.RUnlock()
	facetsFilters = c.FacetsFilters()
	sortID, sortBy := c.sortOption()
	params = c.buildParams(query, facetsFilters, sortBy, page)

	token = c.guard.Increment()

	c.mu.Lock()
	previous = c.status
	c.status = StatusSearching
	c.mu.Unlock()

	if pushHistory && c.location != nil {
		c.location.PushMerged(c.opts.SearchName, history.BuildParams(c.opts.SearchName, history.Values{
			Query:         query,
			FacetsFilters: facetsFilters,
			Page:          page,
			SortOptionID:  sortID,
		}))
	}
	return token, query, facetsFilters, params, previous
}

// buildParams composes the query parameters of GET /search
func (c *Controller) buildParams(query, facetsFilters, sortBy string, page *int) url.Values {
	params := url.Values{}
	params.Set("q", joinNonEmpty([]string{strings.TrimSpace(query), facetsFilters}, " AND "))
	params.Set("langs", strings.Join(c.opts.Langs, ","))
	params.Set("page_size", strconv.Itoa(c.opts.PageSize))
	if c.opts.Index != "" {
		params.Set("index", c.opts.Index)
	}
	if page != nil {
		params.Set("page", strconv.Itoa(*page))
	}
	if facets := c.facetNames(); len(facets) > 0 {
		params.Set("facets", strings.Join(facets, ","))
	}
	if sortBy != "" {
		params.Set("sort_by", sortBy)
	}
	if len(c.opts.Charts) > 0 {
		params.Set("charts", strings.Join(c.opts.Charts, ","))
	}
	return params
}

// FacetsFilters returns the filter expression of every facets component, AND-joined
func (c *Controller) FacetsFilters() string {
	if c.registry == nil {
		return ""
	}
	var parts []string
	for _, p := range c.registry.Facets(c.opts.SearchName) {
		parts = append(parts, p.SearchFilters())
	}
	return joinNonEmpty(parts, " AND ")
}

func (c *Controller) facetNames() []string {
	if c.registry == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, p := range c.registry.Facets(c.opts.SearchName) {
		for _, name := range p.FacetNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

func (c *Controller) sortOption() (id, sortBy string) {
	if c.registry == nil {
		return "", ""
	}
	s := c.registry.Sort(c.opts.SearchName)
	if s == nil {
		return "", ""
	}
	return s.SortOptionID(), s.SortBy()
}

// ClearFacets clears the selection of every facets component
func (c *Controller) ClearFacets() {
	if c.registry == nil {
		return
	}
	for _, p := range c.registry.Facets(c.opts.SearchName) {
		p.ResetSelection()
	}
}

// ResetFacets clears the facets, then optionally searches again
func (c *Controller) ResetFacets(ctx context.Context, launch bool) error {
	c.ClearFacets()
	if !launch {
		return nil
	}
	return c.Search(ctx, nil)
}

// IsQueryChanged reports whether the query differs from the last applied search
func (c *Controller) IsQueryChanged() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query != c.lastQuery
}

// IsFacetsChanged reports whether the facet filters differ from the last applied search
func (c *Controller) IsFacetsChanged() bool {
	filters := c.FacetsFilters()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return filters != c.lastFacetsFilters
}

// IsSearchChanged reports whether the query or the facet filters changed
func (c *Controller) IsSearchChanged() bool {
	return c.IsQueryChanged() || c.IsFacetsChanged()
}

// CanReset reports whether there is something to reset
func (c *Controller) CanReset() bool {
	return c.Query() != "" || c.IsQueryChanged() || c.FacetsFilters() != "" || c.IsFacetsChanged()
}

// SetValuesFromHistory applies decoded URL values onto the live state. An
// absent query leaves the current query untouched.
func (c *Controller) SetValuesFromHistory(values history.Output) {
	if values.Query != nil {
		c.SetQuery(*values.Query)
	}
	if c.registry == nil {
		return
	}
	if values.SortOptionID != "" {
		if s := c.registry.Sort(c.opts.SearchName); s != nil {
			if !s.SelectByID(values.SortOptionID) {
				slog.Debug("unknown sort option in history", "search_name", c.opts.SearchName, "sort_option", values.SortOptionID)
			}
		}
	}
	for _, p := range c.registry.Facets(c.opts.SearchName) {
		for _, name := range p.FacetNames() {
			p.SetSelectedTerms(name, values.FacetsFilters[name])
		}
	}
}

// SetParamFromURL decodes the values of this search from the location and
// applies them. It reports whether a search should be launched, which is
// the case when any value was found.
func (c *Controller) SetParamFromURL() (bool, history.Output) {
	if c.location == nil {
		return false, history.Output{}
	}
	values := history.ConvertParams(c.opts.SearchName, c.location.Query())
	c.SetValuesFromHistory(values)
	return !values.Empty(), values
}

// FirstSearch runs the deep-link search, if the location carries values for
// this search. It waits one tick so that facets and sort components finish
// registering before the values are applied.
func (c *Controller) FirstSearch(ctx context.Context) (bool, error) {
	launch, values := c.SetParamFromURL()
	if !launch {
		return false, nil
	}

	timer := time.NewTimer(c.opts.FirstSearchDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timer.C:
	}

	c.SetValuesFromHistory(values)
	return true, c.Search(ctx, values.Page)
}

// OnHistoryNavigate re-applies the location after a back or forward move and
// searches again without adding a history entry
func (c *Controller) OnHistoryNavigate(ctx context.Context) error {
	if c.location == nil {
		return nil
	}
	values := history.ConvertParams(c.opts.SearchName, c.location.Query())
	c.SetValuesFromHistory(values)
	return c.search(ctx, values.Page, false)
}

func joinNonEmpty(parts []string, sep string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
