package widgets

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchalicious/internal/config"
	"searchalicious/internal/eventbus"
	"searchalicious/internal/history"
	"searchalicious/internal/httpclient"
	"searchalicious/internal/mockserver"
	"searchalicious/internal/registry"
	"searchalicious/internal/taxonomy"
)

func newSetDeps(t *testing.T, deepLink string) Deps {
	t.Helper()
	catalog, err := mockserver.DefaultCatalog()
	require.NoError(t, err)
	ts := httptest.NewServer(mockserver.New(catalog))
	t.Cleanup(ts.Close)

	cfg := config.DefaultConfig()
	cfg.BaseURL = ts.URL
	loc, err := history.NewLocation(deepLink)
	require.NoError(t, err)
	client := httpclient.NewClient(httpclient.DefaultConfig())
	tax, err := taxonomy.New(client, ts.URL, 0)
	require.NoError(t, err)

	return Deps{
		Config:   cfg,
		Bus:      eventbus.NewSync(),
		Registry: registry.New(),
		Location: loc,
		HTTP:     client,
		Taxonomy: tax,
	}
}

func TestNewSetBuildsEveryWidget(t *testing.T) {
	deps := newSetDeps(t, "")
	sc := deps.Config.Searches[0]

	set, err := NewSet(sc, deps)
	require.NoError(t, err)

	assert.Equal(t, sc.Name, set.Name)
	assert.Equal(t, sc.Facets, set.Facets.FacetNames())
	assert.Equal(t, "brand", set.Facets.Facet("brands").Taxonomy())
	assert.Len(t, set.Sort.Options(), len(sc.SortOptions))
	require.Len(t, set.Charts, 1)
	assert.Equal(t, "nutrition_grades", set.Charts[0].Name())
}

func TestNewSetRejectsBadTemplate(t *testing.T) {
	deps := newSetDeps(t, "")
	sc := deps.Config.Searches[0]
	sc.ResultTemplate = "{{ .broken"

	_, err := NewSet(sc, deps)
	assert.Error(t, err)
}

func TestSetFirstSearchRestoresDeepLink(t *testing.T) {
	deps := newSetDeps(t, "https://example.org/?searchalicious_q=pasta&searchalicious_facetsFilters=brands%3A%28barilla%29")
	set, err := NewSet(deps.Config.Searches[0], deps)
	require.NoError(t, err)
	set.Attach(t.Context())
	set.Flush()
	t.Cleanup(set.Detach)

	launched, err := set.FirstSearch(t.Context())
	require.NoError(t, err)
	require.True(t, launched)

	assert.Equal(t, "2 results", set.Count.Text())
	assert.Equal(t, []string{"barilla"}, set.Facets.Facet("brands").Selected())
	assert.Equal(t, "pasta", set.Bar.Query())
	assert.Len(t, set.Results.Hits(), 2)
	require.Len(t, set.Charts, 1)
	assert.NotEmpty(t, set.Charts[0].Data())
}

func TestSetDetachStopsConsumers(t *testing.T) {
	deps := newSetDeps(t, "")
	set, err := NewSet(deps.Config.Searches[0], deps)
	require.NoError(t, err)
	set.Attach(t.Context())
	set.Flush()
	set.Detach()

	require.NoError(t, set.Controller.Search(t.Context(), nil))
	assert.Empty(t, set.Count.Text())
	assert.Empty(t, set.Results.Hits())
}
