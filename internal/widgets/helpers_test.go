package widgets

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"searchalicious/internal/domain"
	"searchalicious/internal/eventbus"
	"searchalicious/internal/history"
	"searchalicious/internal/httpclient"
	"searchalicious/internal/registry"
	"searchalicious/internal/search"
)

const name = "searchalicious"

type events struct {
	mu  sync.Mutex
	all []eventbus.Event
}

func record(bus eventbus.EventBus, types ...domain.EventType) *events {
	e := &events{}
	for _, t := range types {
		bus.Subscribe(t, func(ev eventbus.Event) {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.all = append(e.all, ev)
		})
	}
	return e
}

func (e *events) list() []eventbus.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]eventbus.Event(nil), e.all...)
}

func (e *events) count(t domain.EventType) int {
	n := 0
	for _, ev := range e.list() {
		if ev.Type() == t {
			n++
		}
	}
	return n
}

func result(searchName string) domain.NewResultEvent {
	return domain.NewResultEvent{
		Routed:      domain.Routed{Name: searchName},
		Results:     []domain.Hit{{"code": "123", "product_name": "Cola"}},
		Count:       42,
		PageCount:   5,
		CurrentPage: 2,
		PageSize:    10,
		Facets: map[string]domain.FacetResult{
			"brands": {Name: "Brands", Items: []domain.FacetItem{{Key: "coca", Name: "Coca", Count: 3}}},
		},
		Charts: map[string]domain.ChartData{"grades": domain.ChartData(`{"mark":"bar"}`)},
	}
}

type fakeSuggester struct {
	suggestions []Suggestion
}

func (f fakeSuggester) Suggest(context.Context, string) ([]Suggestion, bool, error) {
	return f.suggestions, true, nil
}

func newController(t *testing.T, bus eventbus.EventBus, reg *registry.Registry) *search.Controller {
	t.Helper()
	loc, err := history.NewLocation("")
	require.NoError(t, err)
	ctrl, err := search.New(search.Options{SearchName: name, BaseURL: "http://127.0.0.1:1"},
		httpclient.NewClient(httpclient.DefaultConfig()), bus, reg, loc)
	require.NoError(t, err)
	return ctrl
}
