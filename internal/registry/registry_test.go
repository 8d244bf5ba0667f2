package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFacets struct {
	name string
}

func (f *fakeFacets) SearchName() string { return f.name }
func (f *fakeFacets) FacetNames() []string { return nil }
func (f *fakeFacets) SearchFilters() string { return "" }
func (f *fakeFacets) SetSelectedTerms(string, []string) {}
func (f *fakeFacets) SelectTermByTaxonomy(string, string) bool { return false }
func (f *fakeFacets) ResetSelection() {}

type fakeSort struct {
	name string
}

func (f *fakeSort) SearchName() string { return f.name }
func (f *fakeSort) SortOptionID() string { return "" }
func (f *fakeSort) SortBy() string { return "" }
func (f *fakeSort) SelectByID(string) bool { return false }

func TestFacetsAreKeyedBySearchName(t *testing.T) {
	r := New()
	a1 := &fakeFacets{name: "a"}
	a2 := &fakeFacets{name: "a"}
	b := &fakeFacets{name: "b"}

	r.RegisterFacets(a1)
	unregister := r.RegisterFacets(a2)
	r.RegisterFacets(b)

	got := r.Facets("a")
	require.Len(t, got, 2)
	assert.Same(t, a1, got[0])
	assert.Same(t, a2, got[1])

	unregister()
	got = r.Facets("a")
	require.Len(t, got, 1)
	assert.Same(t, a1, got[0])
	assert.Len(t, r.Facets("b"), 1)
	assert.Empty(t, r.Facets("missing"))
}

func TestSort(t *testing.T) {
	r := New()
	assert.Nil(t, r.Sort("a"))

	s := &fakeSort{name: "a"}
	unregister := r.RegisterSort(s)
	assert.Same(t, s, r.Sort("a"))
	assert.Nil(t, r.Sort("b"))

	unregister()
	assert.Nil(t, r.Sort("a"))
}
