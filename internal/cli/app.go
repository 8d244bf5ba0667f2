package cli

import (
	"context"
	"fmt"

	"searchalicious/internal/config"
	"searchalicious/internal/eventbus"
	"searchalicious/internal/history"
	"searchalicious/internal/httpclient"
	"searchalicious/internal/registry"
	"searchalicious/internal/taxonomy"
	"searchalicious/internal/widgets"
)

// app is the wiring of every configured search over one bus
type app struct {
	bus      eventbus.EventBus
	location *history.Location
	sets     []*widgets.Set
}

// newApp builds the searches of cfg. The bus is owned by the caller.
func newApp(cfg *config.Config, bus eventbus.EventBus, deepLink string) (*app, error) {
	loc, err := history.NewLocation(deepLink)
	if err != nil {
		return nil, err
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.HTTP.Timeout.Duration
	httpCfg.MaxRetries = cfg.HTTP.MaxRetries
	httpCfg.RetryDelay = cfg.HTTP.RetryDelay.Duration
	client := httpclient.NewClient(httpCfg)

	deps := widgets.Deps{
		Config:   cfg,
		Bus:      bus,
		Registry: registry.New(),
		Location: loc,
		HTTP:     client,
	}
	if cfg.TaxonomiesBaseURL != "" {
		tax, err := taxonomy.New(client, cfg.TaxonomiesBaseURL, taxonomy.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		deps.Taxonomy = tax
	}

	a := &app{bus: bus, location: loc}
	for _, sc := range cfg.Searches {
		set, err := widgets.NewSet(sc, deps)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", sc.Name, err)
		}
		a.sets = append(a.sets, set)
	}
	return a, nil
}

// attach subscribes every component and applies the subscriptions at once
func (a *app) attach(ctx context.Context) {
	for _, set := range a.sets {
		set.Attach(ctx)
		set.Flush()
	}
}

func (a *app) detach() {
	for _, set := range a.sets {
		set.Detach()
	}
}
