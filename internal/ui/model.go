package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"searchalicious/internal/domain"
	"searchalicious/internal/history"
	"searchalicious/internal/search"
	"searchalicious/internal/ui/views"
	"searchalicious/internal/widgets"
)

// statusTimeout is how long a status message stays on screen
const statusTimeout = 3 * time.Second

type focusArea int

const (
	focusResults focusArea = iota
	focusQuery
	focusFacets
	focusTerm
)

// facetEntry is one selectable line of the facets panel
type facetEntry struct {
	facet string
	term  string
}

// Model represents the UI state
type Model struct {
	ctx      context.Context
	sets     []*widgets.Set
	active   int
	location *history.Location

	// UI-specific state
	width        int
	height       int
	keys         KeyMap
	help         help.Model
	spinner      spinner.Model
	query        textinput.Model
	term         textinput.Model
	focus        focusArea
	resultCursor int
	facetCursor  int
	termFacet    string
	status       string
	statusErr    bool
	inPagerMode  bool

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model over the given searches. sets must not be empty.
func NewModel(ctx context.Context, sets []*widgets.Set, loc *history.Location) *Model {
	query := textinput.New()
	query.Prompt = "> "
	query.Placeholder = "Search products"

	term := textinput.New()
	term.Prompt = "+ "
	term.Placeholder = "term"

	keys := DefaultKeyMap()
	m := &Model{
		ctx:          ctx,
		sets:         sets,
		location:     loc,
		keys:         keys,
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		query:        query,
		term:         term,
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(keys),
		pager:        NewPagerOps(),
	}
	m.syncQuery()
	return m
}

// SetProgram sets the program reference for terminal management and
// redraws whenever suggestions of an input change
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
	for _, set := range m.sets {
		set.Bar.Input.SetOnChange(m.refresh)
		for _, facet := range set.Facets.List() {
			facet.Input.SetOnChange(m.refresh)
		}
	}
}

func (m *Model) refresh() {
	if m.program != nil {
		m.program.Send(refreshMsg{})
	}
}

func (m *Model) current() *widgets.Set {
	return m.sets[m.active]
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.query.Width = msg.Width - 24
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusQuery:
			return m.handleQueryKey(msg)
		case focusTerm:
			return m.handleTermKey(msg)
		default:
			return m.handleKey(msg)
		}

	case spinner.TickMsg:
		// Don't continue the tick loop while in pager mode
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// handleKey handles keys while no input is focused
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	set := m.current()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, m.showHelpPager()

	case key.Matches(msg, m.keys.Edit):
		m.focus = focusQuery
		set.Bar.Input.Focus()
		return m, m.query.Focus()

	case key.Matches(msg, m.keys.Submit):
		set.Bar.Submit()

	case key.Matches(msg, m.keys.NextPage):
		set.Pagination.Next()

	case key.Matches(msg, m.keys.PrevPage):
		set.Pagination.Prev()

	case key.Matches(msg, m.keys.Sort):
		set.Sort.Cycle()

	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusFacets {
			m.focus = focusResults
		} else if len(set.Facets.List()) > 0 {
			m.focus = focusFacets
		}

	case key.Matches(msg, m.keys.Toggle):
		if m.focus != focusFacets {
			return m, nil
		}
		entries := m.facetEntries()
		if m.facetCursor < len(entries) {
			e := entries[m.facetCursor]
			set.Facets.ToggleTerm(e.facet, e.term)
		}

	case key.Matches(msg, m.keys.AddTerm):
		return m, m.startTermInput()

	case key.Matches(msg, m.keys.Reset):
		if set.Reset.Visible() {
			set.Reset.Press()
			m.facetCursor = 0
		}

	case key.Matches(msg, m.keys.Charts):
		set.Sidebar.Toggle()

	case key.Matches(msg, m.keys.Open):
		hits := set.Results.Hits()
		if m.resultCursor < len(hits) {
			return m, m.showHitPager(hits[m.resultCursor])
		}

	case key.Matches(msg, m.keys.Back):
		if m.location != nil && m.location.Back() {
			return m, m.followHistory()
		}

	case key.Matches(msg, m.keys.Forward):
		if m.location != nil && m.location.Forward() {
			return m, m.followHistory()
		}

	case key.Matches(msg, m.keys.NextSearch):
		m.active = (m.active + 1) % len(m.sets)
		m.focus = focusResults
		m.resultCursor = 0
		m.facetCursor = 0
		m.syncQuery()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	}
	return m, nil
}

// handleQueryKey handles keys while the query input is focused
func (m *Model) handleQueryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	bar := m.current().Bar

	switch msg.Type {
	case tea.KeyEsc:
		m.blurQuery()
		return m, nil
	case tea.KeyEnter:
		bar.Submit()
		m.blurQuery()
		return m, nil
	case tea.KeyUp:
		bar.Input.MoveSelection(-1)
		return m, nil
	case tea.KeyDown:
		bar.Input.MoveSelection(1)
		return m, nil
	}

	previous := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if value := m.query.Value(); value != previous {
		bar.SetQuery(value)
	}
	return m, cmd
}

func (m *Model) blurQuery() {
	m.focus = focusResults
	m.query.Blur()
	m.current().Bar.Input.Blur()
}

// startTermInput opens the term input of the facet under the cursor
func (m *Model) startTermInput() tea.Cmd {
	facets := m.current().Facets.List()
	if len(facets) == 0 {
		return nil
	}
	name := facets[0].Name()
	if m.focus == focusFacets {
		if entries := m.facetEntries(); m.facetCursor < len(entries) {
			name = entries[m.facetCursor].facet
		}
	}
	facet := m.current().Facets.Facet(name)
	facet.Input.Reset()
	facet.Input.Focus()

	m.termFacet = name
	m.focus = focusTerm
	m.term.SetValue("")
	return m.term.Focus()
}

// handleTermKey handles keys while a facet term input is focused
func (m *Model) handleTermKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	facet := m.current().Facets.Facet(m.termFacet)
	if facet == nil {
		m.stopTermInput()
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		facet.Input.Reset()
		m.stopTermInput()
		return m, nil
	case tea.KeyEnter:
		facet.Input.Submit()
		m.stopTermInput()
		return m, nil
	case tea.KeyUp:
		facet.Input.MoveSelection(-1)
		return m, nil
	case tea.KeyDown:
		facet.Input.MoveSelection(1)
		return m, nil
	}

	previous := m.term.Value()
	var cmd tea.Cmd
	m.term, cmd = m.term.Update(msg)
	if value := m.term.Value(); value != previous {
		facet.Input.SetValue(value)
	}
	return m, cmd
}

func (m *Model) stopTermInput() {
	m.term.Blur()
	m.term.SetValue("")
	m.termFacet = ""
	m.focus = focusFacets
}

// facetEntries flattens the terms of every facet in display order
func (m *Model) facetEntries() []facetEntry {
	var entries []facetEntry
	for _, facet := range m.current().Facets.List() {
		for _, item := range facet.Items() {
			entries = append(entries, facetEntry{facet: facet.Name(), term: item.Key})
		}
	}
	return entries
}

func (m *Model) moveCursor(delta int) {
	if m.focus == focusFacets {
		m.facetCursor = clamp(m.facetCursor+delta, len(m.facetEntries()))
		return
	}
	m.resultCursor = clamp(m.resultCursor+delta, len(m.current().Results.Hits()))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// syncQuery copies the query of the active controller into the input
func (m *Model) syncQuery() {
	if m.focus == focusQuery {
		return
	}
	m.query.SetValue(m.current().Controller.Query())
}

// followHistory runs the searches described by the new history entry
func (m *Model) followHistory() tea.Cmd {
	sets := m.sets
	ctx := m.ctx
	return func() tea.Msg {
		for _, set := range sets {
			if err := set.Controller.OnHistoryNavigate(ctx); err != nil {
				return historyMsg{err: err}
			}
		}
		return historyMsg{}
	}
}

// showHelpPager returns a command that shows help using ov pager
func (m *Model) showHelpPager() tea.Cmd {
	content := m.helpRenderer.RenderHelpContent()
	return m.runPager(func() error {
		return m.pager.ShowHelpInPager(content)
	})
}

// showHitPager returns a command that shows a hit using ov pager
func (m *Model) showHitPager(hit domain.Hit) tea.Cmd {
	return m.runPager(func() error {
		return m.pager.ShowHitInPager(hit)
	})
}

func (m *Model) runPager(show func() error) tea.Cmd {
	if m.program == nil {
		return nil
	}
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := show()

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return pagerMsg{err: err}
	}
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.status = msg
	m.statusErr = isErr
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// handleNonKeyboardMsg handles the messages not coming from the keyboard
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		switch ev := msg.Event.(type) {
		case domain.NewResultEvent:
			if ev.SearchName() == m.current().Name {
				m.resultCursor = 0
				m.facetCursor = clamp(m.facetCursor, len(m.facetEntries()))
				m.syncQuery()
			}
		case domain.AutocompleteSubmitEvent:
			m.syncQuery()
		}
		return m, nil

	case refreshMsg:
		return m, nil

	case historyMsg:
		m.syncQuery()
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("History search failed: %v", msg.err), true)
		}
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			slog.Error("pager failed", "error", msg.err)
			return m, m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.spinner.Tick

	case clearStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil

	default:
		// Other messages belong to the inputs (cursor blink)
		var cmd tea.Cmd
		switch m.focus {
		case focusQuery:
			m.query, cmd = m.query.Update(msg)
		case focusTerm:
			m.term, cmd = m.term.Update(msg)
		}
		return m, cmd
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	return m.renderer.Render(m.viewState())
}

// viewState projects the widgets of the active search for the renderer
func (m *Model) viewState() views.ViewState {
	set := m.current()
	snap := set.Controller.Snapshot()

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		ActiveSearch:  m.active,
		QueryInput:    m.query.View(),
		QueryFocused:  m.focus == focusQuery,
		ButtonLabel:   set.Bar.Label(),
		FacetsFocused: m.focus == focusFacets || m.focus == focusTerm,
		FacetCursor:   m.facetCursor,
		CountText:     set.Count.Text(),
		Results:       set.Results.Lines(),
		ResultCursor:  m.resultCursor,
		Searching:     snap.Status == search.StatusSearching,
		Spinner:       m.spinner.View(),
		Sidebar:       string(set.Sidebar.State()),
		CanReset:      set.Reset.Visible(),
		StatusMessage: m.status,
		StatusIsError: m.statusErr,
		HelpView:      m.help.View(m.keys),
	}
	for _, s := range m.sets {
		state.Searches = append(state.Searches, s.Name)
	}
	if m.location != nil {
		state.Location = m.location.String()
	}
	if state.StatusMessage == "" && snap.Err != nil {
		state.StatusMessage = fmt.Sprintf("Search failed: %v", snap.Err)
		state.StatusIsError = true
	}

	// Suggestions
	if m.focus == focusQuery && set.Bar.Input.Visible() {
		state.Suggestions = suggestionLabels(set.Bar.Input.Suggestions())
		state.SuggestionIdx = set.Bar.Input.Selected()
	}
	if m.focus == focusTerm {
		state.TermFacet = m.termFacet
		state.TermInput = m.term.View()
		if facet := set.Facets.Facet(m.termFacet); facet != nil && facet.Input.Visible() {
			state.TermSuggest = suggestionLabels(facet.Input.Suggestions())
			state.TermSuggestIx = facet.Input.Selected()
		}
	}

	// Facets
	for _, facet := range set.Facets.List() {
		fv := views.FacetView{Name: facet.Name(), Title: facet.Title()}
		for _, item := range facet.Items() {
			fv.Items = append(fv.Items, views.FacetItemView{
				Label:    item.Label(),
				Count:    item.Count,
				Selected: facet.IsSelected(item.Key),
			})
		}
		state.Facets = append(state.Facets, fv)
	}

	// Sort
	if option, ok := set.Sort.Current(); ok {
		state.SortLabel = option.Label
	}

	// Pagination
	if set.Pagination.PageCount() > 0 {
		window := set.Pagination.Window()
		state.Pages = views.PageView{
			Pages:         window.Pages(),
			Current:       set.Pagination.CurrentPage(),
			StartEllipsis: window.StartEllipsis,
			EndEllipsis:   window.EndEllipsis,
			HasPrev:       !set.Pagination.IsFirst(),
			HasNext:       !set.Pagination.IsLast(),
		}
	}

	// Charts
	for _, chart := range set.Charts {
		state.Charts = append(state.Charts, views.ChartView{Name: chart.Name(), Summary: chartSummary(chart.Data())})
	}
	return state
}

func suggestionLabels(suggestions []widgets.Suggestion) []string {
	labels := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if s.Label != "" {
			labels = append(labels, s.Label)
		} else {
			labels = append(labels, s.Value)
		}
	}
	return labels
}

// chartSummary describes a chart specification in one line
func chartSummary(data domain.ChartData) string {
	if len(data) == 0 {
		return "no data"
	}
	var spec struct {
		Title any `json:"title"`
		Data  []struct {
			Values []json.RawMessage `json:"values"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Sprintf("%d bytes", len(data))
	}
	values := 0
	for _, d := range spec.Data {
		values += len(d.Values)
	}
	title := ""
	switch t := spec.Title.(type) {
	case string:
		title = t
	case map[string]any:
		if text, ok := t["text"].(string); ok {
			title = text
		}
	}
	if title == "" {
		return fmt.Sprintf("%d values", values)
	}
	return fmt.Sprintf("%s, %d values", title, values)
}
