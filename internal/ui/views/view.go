package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// facetColumnWidth is the width of the facets panel
const facetColumnWidth = 32

// chartColumnWidth is the width of an opened chart sidebar
const chartColumnWidth = 36

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Searches      []string
	ActiveSearch  int
	QueryInput    string
	QueryFocused  bool
	ButtonLabel   string
	Suggestions   []string
	SuggestionIdx int
	Facets        []FacetView
	FacetsFocused bool
	FacetCursor   int
	TermInput     string
	TermFacet     string
	TermSuggest   []string
	TermSuggestIx int
	CountText     string
	SortLabel     string
	Results       []string
	ResultCursor  int
	Pages         PageView
	Searching     bool
	Spinner       string
	Sidebar       string
	Charts        []ChartView
	CanReset      bool
	StatusMessage string
	StatusIsError bool
	Location      string
	HelpView      string
}

// FacetView is one facet of the facets panel
type FacetView struct {
	Name  string
	Title string
	Items []FacetItemView
}

// FacetItemView is one term of a facet
type FacetItemView struct {
	Label    string
	Count    int
	Selected bool
}

// PageView is the pagination line
type PageView struct {
	Pages         []int
	Current       int
	StartEllipsis bool
	EndEllipsis   bool
	HasPrev       bool
	HasNext       bool
}

// ChartView is one chart of the sidebar
type ChartView struct {
	Name    string
	Summary string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles returns the styles of the renderer
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	// Title with loading indicator
	title := r.styles.Title.Render("searchalicious")
	if len(state.Searches) > 1 {
		title += "  " + r.renderSearchTabs(state)
	}
	if state.Searching {
		title += "  " + r.styles.StatusLoading.Render(state.Spinner+" Searching")
	}
	content.WriteString(title)
	content.WriteString("\n")

	// Search bar
	content.WriteString(r.renderSearchBar(state))
	content.WriteString("\n")

	// Main content
	var columns []string
	if state.Sidebar != "expanded" {
		if len(state.Facets) > 0 {
			columns = append(columns, r.renderFacets(state))
		}
		columns = append(columns, r.renderResults(state))
	}
	if state.Sidebar == "opened" || state.Sidebar == "expanded" {
		columns = append(columns, r.renderCharts(state))
	}
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	content.WriteString("\n")

	// Status and location
	if state.StatusMessage != "" {
		style := r.styles.StatusSuccess
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		content.WriteString(style.Render(state.StatusMessage))
		content.WriteString("\n")
	}
	if state.Location != "" {
		content.WriteString(r.styles.Location.Render(state.Location))
		content.WriteString("\n")
	}

	// Help at the bottom
	if state.HelpView != "" {
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderSearchTabs(state ViewState) string {
	tabs := make([]string, 0, len(state.Searches))
	for i, name := range state.Searches {
		if i == state.ActiveSearch {
			tabs = append(tabs, r.styles.SearchTabFocus.Render(name))
		} else {
			tabs = append(tabs, r.styles.SearchTab.Render(name))
		}
	}
	return strings.Join(tabs, "")
}

// renderSearchBar renders the query input, its button and its suggestions
func (r *Renderer) renderSearchBar(state ViewState) string {
	inputStyle := r.styles.Input
	if state.QueryFocused {
		inputStyle = r.styles.InputFocused
	}
	width := state.Width - 16
	if width < 20 {
		width = 20
	}
	input := inputStyle.Width(width).Render(state.QueryInput)
	button := r.styles.Button.Render(state.ButtonLabel)
	line := lipgloss.JoinHorizontal(lipgloss.Center, input, " ", button)

	if len(state.Suggestions) > 0 {
		line += "\n" + r.renderSuggestions(state.Suggestions, state.SuggestionIdx)
	}
	return line
}

func (r *Renderer) renderSuggestions(suggestions []string, selected int) string {
	lines := make([]string, 0, len(suggestions))
	for i, s := range suggestions {
		if i == selected {
			lines = append(lines, r.styles.SelectionBg.Render(r.styles.Suggestion.Render("> "+s)))
			continue
		}
		lines = append(lines, r.styles.Suggestion.Render("  "+s))
	}
	return strings.Join(lines, "\n")
}

// renderFacets renders the facets panel, one block per facet
func (r *Renderer) renderFacets(state ViewState) string {
	var lines []string
	index := 0
	for i, facet := range state.Facets {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, r.styles.FacetTitle.Render(facet.Title))
		if len(facet.Items) == 0 {
			lines = append(lines, r.styles.Dim.Render("  no terms"))
		}
		for _, item := range facet.Items {
			box := "[ ]"
			if item.Selected {
				box = r.styles.Checked.Render("[x]")
			}
			line := fmt.Sprintf("%s %s %s", box, truncate(item.Label, facetColumnWidth-14), r.styles.Dim.Render(fmt.Sprintf("(%d)", item.Count)))
			if state.FacetsFocused && index == state.FacetCursor {
				line = r.styles.SelectionBg.Render(line)
			}
			lines = append(lines, line)
			index++
		}
		if state.TermFacet == facet.Name {
			lines = append(lines, r.styles.InputFocused.Width(facetColumnWidth-6).Render(state.TermInput))
			if len(state.TermSuggest) > 0 {
				lines = append(lines, r.renderSuggestions(state.TermSuggest, state.TermSuggestIx))
			}
		}
	}
	if state.CanReset {
		lines = append(lines, "", r.styles.Highlight.Render("r: reset filters"))
	}
	return r.styles.FacetPanel.Width(facetColumnWidth).Render(strings.Join(lines, "\n"))
}

// renderResults renders the count, the sort option, the hits and the pages
func (r *Renderer) renderResults(state ViewState) string {
	var lines []string

	header := r.styles.Count.Render(state.CountText)
	if state.SortLabel != "" {
		header += "  " + r.styles.Dim.Render("sorted by "+state.SortLabel)
	}
	lines = append(lines, header, "")

	if len(state.Results) == 0 && state.CountText == "" {
		lines = append(lines, r.styles.Dim.Render("Press / to type a query, enter to search."))
	}
	for i, result := range state.Results {
		if i == state.ResultCursor && !state.FacetsFocused && !state.QueryFocused {
			lines = append(lines, r.styles.SelectionBg.Render("> "+result))
			continue
		}
		lines = append(lines, "  "+result)
	}

	if pages := r.renderPages(state.Pages); pages != "" {
		lines = append(lines, "", pages)
	}
	return strings.Join(lines, "\n")
}

// renderPages renders the pagination window
func (r *Renderer) renderPages(p PageView) string {
	if len(p.Pages) == 0 {
		return ""
	}
	var parts []string
	if p.HasPrev {
		parts = append(parts, r.styles.Page.Render("«"))
	}
	if p.StartEllipsis {
		parts = append(parts, r.styles.Dim.Render("…"))
	}
	for _, page := range p.Pages {
		label := fmt.Sprintf("%d", page)
		if page == p.Current {
			parts = append(parts, r.styles.CurrentPage.Render(label))
			continue
		}
		parts = append(parts, r.styles.Page.Render(label))
	}
	if p.EndEllipsis {
		parts = append(parts, r.styles.Dim.Render("…"))
	}
	if p.HasNext {
		parts = append(parts, r.styles.Page.Render("»"))
	}
	return strings.Join(parts, " ")
}

// renderCharts renders the chart sidebar
func (r *Renderer) renderCharts(state ViewState) string {
	lines := []string{r.styles.FacetTitle.Render("Charts")}
	if len(state.Charts) == 0 {
		lines = append(lines, r.styles.Dim.Render("no charts configured"))
	}
	for _, chart := range state.Charts {
		lines = append(lines, "", r.styles.Highlight.Render(chart.Name), chart.Summary)
	}
	style := r.styles.ChartPanel
	if state.Sidebar == "opened" {
		style = style.Width(chartColumnWidth)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		runes = runes[:width-1]
	}
	return string(runes) + "…"
}
