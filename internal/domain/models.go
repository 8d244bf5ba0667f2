package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Hit is a single result document as returned by the search API
type Hit map[string]any

// String returns the value of a top level field formatted for display
func (h Hit) String(field string) string {
	v, ok := h[field]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FacetItem is one aggregation bucket of a facet
type FacetItem struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Label returns the display name of the bucket, falling back to its key
func (i FacetItem) Label() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Key
}

// FacetResult is the aggregation returned for one facet
type FacetResult struct {
	Name             string      `json:"name"`
	Items            []FacetItem `json:"items"`
	CountErrorMargin *int        `json:"count_error_margin,omitempty"`
}

// ChartData is the raw chart specification produced by the search API. It is
// handed as-is to whatever renders charts.
type ChartData = json.RawMessage

// SearchResponse is the JSON body of GET {baseUrl}/search
type SearchResponse struct {
	Hits         []Hit                  `json:"hits"`
	Count        int                    `json:"count"`
	Page         int                    `json:"page"`
	PageSize     int                    `json:"page_size"`
	PageCount    int                    `json:"page_count"`
	Facets       map[string]FacetResult `json:"facets"`
	Charts       map[string]ChartData   `json:"charts"`
	Took         int                    `json:"took,omitempty"`
	TimedOut     bool                   `json:"timed_out,omitempty"`
	IsCountExact bool                   `json:"is_count_exact,omitempty"`
}

// SortOption is one way of ordering results
type SortOption struct {
	ID    string `toml:"id" json:"id"`
	Label string `toml:"label" json:"label"`
	// Field is the sort_by value sent to the API, e.g. "-unique_scans_n"
	Field string `toml:"field" json:"field"`
}

// TaxonomyTerm is one suggestion of the taxonomy autocomplete API
type TaxonomyTerm struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	TaxonomyName string `json:"taxonomy_name"`
}

// TaxonomyResponse is the JSON body of GET {taxonomiesBaseUrl}/autocomplete
type TaxonomyResponse struct {
	Options []TaxonomyTerm `json:"options"`
}

// ChartSidebarState is the display state of the chart sidebar
type ChartSidebarState string

const (
	SidebarClosed   ChartSidebarState = "closed"
	SidebarOpened   ChartSidebarState = "opened"
	SidebarExpanded ChartSidebarState = "expanded"
)

// Next returns the state reached by toggling the sidebar once
func (s ChartSidebarState) Next() ChartSidebarState {
	switch s {
	case SidebarClosed:
		return SidebarOpened
	case SidebarOpened:
		return SidebarExpanded
	default:
		return SidebarClosed
	}
}
