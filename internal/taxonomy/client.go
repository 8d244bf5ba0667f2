// Package taxonomy fetches autocomplete suggestions from the taxonomy service.
package taxonomy

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"searchalicious/internal/domain"
	"searchalicious/internal/errors"
	"searchalicious/internal/httpclient"
)

const (
	autocompletePath = "autocomplete"

	// DefaultCacheSize is the number of distinct requests kept in memory
	DefaultCacheSize = 256
	// DefaultSize is the number of suggestions requested when none is given
	DefaultSize = 5
)

// Client queries GET {baseURL}/autocomplete. It is shared by every input;
// callers track the freshness of their own requests.
type Client struct {
	http    *httpclient.Client
	baseURL string
	cache   *lru.Cache[string, []domain.TaxonomyTerm]
	group   singleflight.Group
}

// New creates a taxonomy client. A non-positive cacheSize uses DefaultCacheSize.
func New(http *httpclient.Client, baseURL string, cacheSize int) (*Client, error) {
	if baseURL == "" {
		return nil, errors.NewConfiguration("taxonomies base URL is required")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []domain.TaxonomyTerm](cacheSize)
	if err != nil {
		return nil, errors.NewConfiguration("failed to create taxonomy cache", err)
	}
	return &Client{
		http:    http,
		baseURL: baseURL,
		cache:   cache,
	}, nil
}

// Terms returns the suggestions for q in the given taxonomies
func (c *Client) Terms(ctx context.Context, q, lang string, taxonomyNames []string, size int) ([]domain.TaxonomyTerm, error) {
	if size <= 0 {
		size = DefaultSize
	}
	params := url.Values{}
	params.Set("q", q)
	params.Set("lang", lang)
	params.Set("taxonomy_names", strings.Join(taxonomyNames, ","))
	params.Set("size", strconv.Itoa(size))
	key := params.Encode()

	if terms, ok := c.cache.Get(key); ok {
		return terms, nil
	}
	v, err, shared := c.group.Do(key, func() (any, error) {
		var resp domain.TaxonomyResponse
		if err := c.http.GetJSON(ctx, c.baseURL, autocompletePath, params, &resp); err != nil {
			return nil, err
		}
		c.cache.Add(key, resp.Options)
		return resp.Options, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.DebugContext(ctx, "taxonomy request shared", "query", key)
	}
	return v.([]domain.TaxonomyTerm), nil
}
