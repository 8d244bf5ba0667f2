package search

import (
	"time"

	"searchalicious/internal/domain"
	"searchalicious/internal/errors"
)

// Status is the lifecycle state of a controller
type Status int

const (
	StatusIdle Status = iota
	StatusSearching
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusSearching:
		return "searching"
	case StatusReady:
		return "ready"
	default:
		return "idle"
	}
}

// Defaults
const (
	DefaultPageSize         = 10
	DefaultFirstSearchDelay = 16 * time.Millisecond
)

// Options configures a controller
type Options struct {
	SearchName string
	BaseURL    string
	Index      string
	Langs      []string
	PageSize   int
	// Charts lists the chart names requested with every search
	Charts []string
	// FirstSearchDelay is the tick waited before a deep-link search so that
	// facets and sort components finish registering
	FirstSearchDelay time.Duration
}

func (o *Options) normalize() error {
	if o.SearchName == "" {
		o.SearchName = domain.DefaultSearchName
	}
	if o.BaseURL == "" {
		return errors.NewConfiguration("base URL is required for search " + o.SearchName)
	}
	if o.PageSize < 0 {
		return errors.NewValidation("page size must not be negative")
	}
	if o.PageSize == 0 {
		o.PageSize = DefaultPageSize
	}
	if o.FirstSearchDelay <= 0 {
		o.FirstSearchDelay = DefaultFirstSearchDelay
	}
	return nil
}

// Snapshot is a copy of the state of a controller
type Snapshot struct {
	SearchName  string
	Query       string
	CurrentPage *int
	PageSize    int
	PageCount   *int
	TotalCount  *int
	Status      Status
	Results     []domain.Hit
	// Err is the failure of the latest search, nil once a search succeeds
	Err error
}
