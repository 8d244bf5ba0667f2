// Package mockserver serves a fixture catalogue over the search API
// routes, for demos and end-to-end tests.
package mockserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"searchalicious/internal/domain"
)

// Defaults
const (
	DefaultAddr     = "127.0.0.1:8000"
	defaultPageSize = 10
	shutdownTimeout = 5 * time.Second
)

// Request is a request received by the server
type Request struct {
	Path  string
	Query url.Values
}

// Server answers GET /search and GET /autocomplete from a Catalog
type Server struct {
	catalog Catalog
	mux     *http.ServeMux

	mu       sync.Mutex
	requests []Request
}

// New creates a server over catalog
func New(catalog Catalog) *Server {
	s := &Server{catalog: catalog, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /search", s.handleSearch)
	s.mux.HandleFunc("GET /autocomplete", s.handleAutocomplete)
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, Request{Path: r.URL.Path, Query: r.URL.Query()})
	s.mu.Unlock()

	slog.DebugContext(r.Context(), "mock request",
		"path", r.URL.Path,
		"query", r.URL.RawQuery,
		"request_id", r.Header.Get("X-Request-Id"))
	s.mux.ServeHTTP(w, r)
}

// Requests returns the requests received so far
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// ListenAndServe serves on addr until ctx is cancelled. ready, when not
// nil, receives the bound address once the listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(addr string)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if ready != nil {
		ready(ln.Addr().String())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func positiveInt(values url.Values, key string, fallback int) (int, bool) {
	raw := values.Get(key)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	page, ok := positiveInt(params, "page", 1)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: "page must be a positive integer"})
		return
	}
	pageSize, ok := positiveInt(params, "page_size", defaultPageSize)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: "page_size must be a positive integer"})
		return
	}

	q := parseQuery(params.Get("q"))
	var matched []domain.Hit
	for _, p := range s.catalog.Products {
		if q.matches(p) {
			matched = append(matched, p)
		}
	}
	sortProducts(matched, params.Get("sort_by"))

	resp := domain.SearchResponse{
		Hits:         []domain.Hit{},
		Count:        len(matched),
		Page:         page,
		PageSize:     pageSize,
		PageCount:    (len(matched) + pageSize - 1) / pageSize,
		Facets:       make(map[string]domain.FacetResult),
		IsCountExact: true,
	}
	if start := (page - 1) * pageSize; start < len(matched) {
		end := min(start+pageSize, len(matched))
		resp.Hits = matched[start:end]
	}
	for _, facet := range splitList(params.Get("facets")) {
		resp.Facets[facet] = s.catalog.facetResult(matched, facet)
	}
	if charts := splitList(params.Get("charts")); len(charts) > 0 {
		resp.Charts = make(map[string]domain.ChartData, len(charts))
		for _, name := range charts {
			chart, err := s.catalog.chart(matched, name)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, errorBody{Detail: err.Error()})
				return
			}
			resp.Charts[name] = chart
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	size, ok := positiveInt(params, "size", 10)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: "size must be a positive integer"})
		return
	}
	options := s.catalog.suggest(params.Get("q"), splitList(params.Get("taxonomy_names")), size)
	writeJSON(w, http.StatusOK, domain.TaxonomyResponse{Options: options})
}
