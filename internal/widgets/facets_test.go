package widgets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchalicious/internal/domain"
	"searchalicious/internal/eventbus"
	"searchalicious/internal/registry"
)

func newFacets(t *testing.T, bus eventbus.EventBus, reg *registry.Registry, opts FacetsOptions) *Facets {
	t.Helper()
	opts.SearchName = name
	if opts.Facets == nil {
		opts.Facets = []string{"brands", "labels", "brands"}
	}
	f := NewFacets(opts, bus, reg)
	f.Attach(t.Context())
	f.Flush()
	t.Cleanup(f.Detach)
	return f
}

func TestFacetsProjectResults(t *testing.T) {
	bus := eventbus.NewSync()
	f := newFacets(t, bus, nil, FacetsOptions{})

	assert.Equal(t, []string{"brands", "labels"}, f.FacetNames())
	bus.Publish(result(name))

	brands := f.Facet("brands")
	require.NotNil(t, brands)
	assert.Equal(t, "Brands", brands.Title())
	assert.Equal(t, []domain.FacetItem{{Key: "coca", Name: "Coca", Count: 3}}, brands.Items())
	assert.Equal(t, "labels", f.Facet("labels").Title())
	assert.Empty(t, f.Facet("labels").Items())
	assert.Nil(t, f.Facet("missing"))
}

func TestFacetsSelection(t *testing.T) {
	bus := eventbus.NewSync()
	f := newFacets(t, bus, nil, FacetsOptions{})

	brands := f.Facet("brands")
	assert.True(t, brands.Toggle("coca"))
	assert.True(t, brands.Toggle("pepsi"))
	f.SetSelectedTerms("labels", []string{"organic", "organic", ""})
	f.SetSelectedTerms("unknown", []string{"x"})

	assert.Equal(t, "brands:(coca OR pepsi) AND labels:(organic)", f.SearchFilters())
	assert.Equal(t, map[string][]string{"brands": {"coca", "pepsi"}, "labels": {"organic"}}, f.SelectedTerms())

	assert.False(t, brands.Toggle("coca"))
	assert.Equal(t, []string{"pepsi"}, brands.Selected())
	assert.True(t, brands.IsSelected("pepsi"))

	f.Reset(false)
	assert.Equal(t, "", f.SearchFilters())
}

func TestSelectedTermMissingFromBucketsIsListed(t *testing.T) {
	bus := eventbus.NewSync()
	f := newFacets(t, bus, nil, FacetsOptions{})
	f.Facet("brands").Select("danone")

	bus.Publish(result(name))

	assert.Equal(t, []domain.FacetItem{
		{Key: "coca", Name: "Coca", Count: 3},
		{Key: "danone"},
	}, f.Facet("brands").Items())
}

func TestFacetsRegisterInRegistry(t *testing.T) {
	bus := eventbus.NewSync()
	reg := registry.New()
	f := NewFacets(FacetsOptions{SearchName: name, Facets: []string{"brands"}}, bus, reg)

	f.Attach(t.Context())
	require.Len(t, reg.Facets(name), 1)

	f.Detach()
	assert.Empty(t, reg.Facets(name))
}

func TestSelectTermByTaxonomy(t *testing.T) {
	bus := eventbus.NewSync()
	f := newFacets(t, bus, nil, FacetsOptions{Taxonomies: map[string]string{"labels": "label"}})

	assert.True(t, f.SelectTermByTaxonomy("label", "en:organic"))
	assert.False(t, f.SelectTermByTaxonomy("brand", "x"))
	assert.Equal(t, []string{"en:organic"}, f.Facet("labels").Selected())
	assert.Equal(t, "label", f.Facet("labels").Taxonomy())
}

func TestFacetAutocompleteSubmitSelectsAndLaunches(t *testing.T) {
	bus := eventbus.NewSync()
	rec := record(bus, domain.EventLaunchSearch)
	f := newFacets(t, bus, nil, FacetsOptions{})

	input := f.Facet("labels").Input
	input.SetValue("en:vegan")
	require.True(t, input.Submit())

	assert.Equal(t, []string{"en:vegan"}, f.Facet("labels").Selected())
	assert.Empty(t, f.Facet("brands").Selected())
	assert.Equal(t, 1, rec.count(domain.EventLaunchSearch))
}

func TestFacetAutocompleteSuggestions(t *testing.T) {
	bus := eventbus.NewSync()
	var asked []string
	f := newFacets(t, bus, nil, FacetsOptions{
		Taxonomies: map[string]string{"labels": "label"},
		NewSuggester: func(taxonomy string) Suggester {
			asked = append(asked, taxonomy)
			return fakeSuggester{suggestions: []Suggestion{{Value: "en:organic", Label: "Organic", Taxonomy: taxonomy}}}
		},
		BlurWait: time.Millisecond,
	})
	assert.Equal(t, []string{"label"}, asked)

	f.Facet("labels").Input.SetValue("org")
	require.Eventually(t, func() bool { return len(f.Facet("labels").Input.Suggestions()) == 1 }, time.Second, 5*time.Millisecond)

	// brands has no taxonomy and no fallback suggester
	f.Facet("brands").Input.SetValue("co")
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, f.Facet("brands").Input.Suggestions())
}

func TestFacetsResetLaunches(t *testing.T) {
	bus := eventbus.NewSync()
	rec := record(bus, domain.EventLaunchSearch)
	f := newFacets(t, bus, nil, FacetsOptions{})
	f.Facet("brands").Select("x")

	f.Reset(true)

	assert.Empty(t, f.SelectedTerms())
	assert.Equal(t, 1, rec.count(domain.EventLaunchSearch))
}

func TestFacetsToggleTermLaunches(t *testing.T) {
	bus := eventbus.NewSync()
	rec := record(bus, domain.EventLaunchSearch)
	f := newFacets(t, bus, nil, FacetsOptions{})

	assert.True(t, f.ToggleTerm("brands", "coca"))
	assert.Equal(t, []string{"coca"}, f.Facet("brands").Selected())
	assert.True(t, f.ToggleTerm("brands", "coca"))
	assert.Empty(t, f.Facet("brands").Selected())
	assert.False(t, f.ToggleTerm("missing", "x"))

	assert.Equal(t, 2, rec.count(domain.EventLaunchSearch))
}
