package history

import (
	"net/url"
	"sync"
)

// Location is the shared address of the client: a base URL plus a query
// string, with a back/forward stack of visited query strings.
type Location struct {
	mu      sync.RWMutex
	base    url.URL
	entries []url.Values
	index   int
}

// NewLocation parses a deep link. An empty string yields an empty location.
func NewLocation(rawURL string) (*Location, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	query := u.Query()
	u.RawQuery = ""
	u.Fragment = ""
	u.RawFragment = ""
	return &Location{
		base:    *u,
		entries: []url.Values{query},
	}, nil
}

// Query returns a copy of the current query parameters
func (l *Location) Query() url.Values {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneValues(l.entries[l.index])
}

// PushMerged adds the current query, with the keys of searchName replaced by
// params, as a new entry after the current one and drops the forward entries
func (l *Location) PushMerged(searchName string, params url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	merged := Merge(l.entries[l.index], searchName, params)
	l.entries = append(l.entries[:l.index+1], merged)
	l.index = len(l.entries) - 1
}

// Back moves to the previous entry and reports whether it moved
func (l *Location) Back() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index == 0 {
		return false
	}
	l.index--
	return true
}

// Forward moves to the next entry and reports whether it moved
func (l *Location) Forward() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index >= len(l.entries)-1 {
		return false
	}
	l.index++
	return true
}

// String returns the current URL with its sorted query string
func (l *Location) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	u := l.base
	u.RawQuery = l.entries[l.index].Encode()
	return u.String()
}

func cloneValues(v url.Values) url.Values {
	c := make(url.Values, len(v))
	for key, values := range v {
		c[key] = append([]string(nil), values...)
	}
	return c
}
