package domain

// FacetsProvider is implemented by a facets component. The search controller
// polls it for the filters to send and the facet names to aggregate on.
type FacetsProvider interface {
	SearchName() string
	// FacetNames lists the facets to request aggregations for
	FacetNames() []string
	// SearchFilters returns the filter expression for the selected terms,
	// or an empty string when nothing is selected
	SearchFilters() string
	// SetSelectedTerms replaces the selection of one facet; unknown facets are ignored
	SetSelectedTerms(facet string, terms []string)
	// SelectTermByTaxonomy adds term to the facet bound to the taxonomy and
	// reports whether such a facet exists
	SelectTermByTaxonomy(taxonomy, term string) bool
	// ResetSelection clears every selected term
	ResetSelection()
}

// SortProvider is implemented by a sort component
type SortProvider interface {
	SearchName() string
	// SortOptionID returns the id of the active option, or "" when none is active
	SortOptionID() string
	// SortBy returns the API sort_by value of the active option
	SortBy() string
	// SelectByID activates the option with the given id and reports whether it exists
	SelectByID(id string) bool
}
