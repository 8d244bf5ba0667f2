package widgets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchalicious/internal/httpclient"
	"searchalicious/internal/taxonomy"
)

// newTaxonomyClient serves every q as a single term. Requests for "slow"
// block until release is closed.
func newTaxonomyClient(t *testing.T, calls *atomic.Int32, release <-chan struct{}) *taxonomy.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query().Get("q")
		if q == "slow" {
			<-release
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"options":[{"id":"en:` + q + `","text":"` + q + `","taxonomy_name":"labels"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := taxonomy.New(httpclient.NewClient(httpclient.DefaultConfig()), server.URL, 0)
	require.NoError(t, err)
	return client
}

func TestTaxonomySuggesterFlagsSupersededRequest(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	s := &TaxonomySuggester{Client: newTaxonomyClient(t, &calls, release), Lang: "en", Taxonomies: []string{"labels"}}

	type answer struct {
		suggestions []Suggestion
		latest      bool
	}
	slow := make(chan answer, 1)
	go func() {
		suggestions, latest, err := s.Suggest(context.Background(), "slow")
		assert.NoError(t, err)
		slow <- answer{suggestions, latest}
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	fast, latest, err := s.Suggest(context.Background(), "fast")
	require.NoError(t, err)
	assert.True(t, latest)
	assert.Equal(t, []Suggestion{{Value: "en:fast", Label: "fast", Taxonomy: "labels"}}, fast)

	close(release)
	res := <-slow
	assert.False(t, res.latest)
	assert.Equal(t, "slow", res.suggestions[0].Label)
}

func TestTaxonomySuggestersSharingAClientAreIndependent(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	client := newTaxonomyClient(t, &calls, release)
	labels := &TaxonomySuggester{Client: client, Lang: "en", Taxonomies: []string{"labels"}}
	brands := &TaxonomySuggester{Client: client, Lang: "en", Taxonomies: []string{"brands"}}

	done := make(chan bool, 1)
	go func() {
		_, latest, err := labels.Suggest(context.Background(), "slow")
		assert.NoError(t, err)
		done <- latest
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	_, latest, err := brands.Suggest(context.Background(), "fast")
	require.NoError(t, err)
	assert.True(t, latest)

	close(release)
	assert.True(t, <-done)
}
