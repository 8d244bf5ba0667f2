// Package registry links a search controller to the facets and sort
// components sharing its search name.
package registry

import (
	"sync"

	"searchalicious/internal/domain"
)

// Registry keeps the components registered per search name
type Registry struct {
	mu     sync.RWMutex
	facets map[string][]domain.FacetsProvider
	sorts  map[string][]domain.SortProvider
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		facets: make(map[string][]domain.FacetsProvider),
		sorts:  make(map[string][]domain.SortProvider),
	}
}

// RegisterFacets adds a facets component and returns a function removing it
func (r *Registry) RegisterFacets(p domain.FacetsProvider) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.SearchName()
	r.facets[name] = append(r.facets[name], p)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.facets[name] = removeFacets(r.facets[name], p)
		if len(r.facets[name]) == 0 {
			delete(r.facets, name)
		}
	}
}

// RegisterSort adds a sort component and returns a function removing it
func (r *Registry) RegisterSort(p domain.SortProvider) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.SearchName()
	r.sorts[name] = append(r.sorts[name], p)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.sorts[name] = removeSort(r.sorts[name], p)
		if len(r.sorts[name]) == 0 {
			delete(r.sorts, name)
		}
	}
}

// Facets returns the facets components of a search, in registration order
func (r *Registry) Facets(searchName string) []domain.FacetsProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.FacetsProvider(nil), r.facets[searchName]...)
}

// Sort returns the first sort component of a search, or nil
func (r *Registry) Sort(searchName string) domain.SortProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if sorts := r.sorts[searchName]; len(sorts) > 0 {
		return sorts[0]
	}
	return nil
}

func removeFacets(list []domain.FacetsProvider, p domain.FacetsProvider) []domain.FacetsProvider {
	out := make([]domain.FacetsProvider, 0, len(list))
	for _, item := range list {
		if item != p {
			out = append(out, item)
		}
	}
	return out
}

func removeSort(list []domain.SortProvider, p domain.SortProvider) []domain.SortProvider {
	out := make([]domain.SortProvider, 0, len(list))
	for _, item := range list {
		if item != p {
			out = append(out, item)
		}
	}
	return out
}
