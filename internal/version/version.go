// Package version tags asynchronous requests so only the latest response is applied.
package version

import "sync"

// Guard issues monotonically increasing tokens. The zero value is ready to use.
type Guard struct {
	mu      sync.Mutex
	current int
}

// Increment issues a new token, making every earlier one stale
func (g *Guard) Increment() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current++
	return g.current
}

// IsLatest reports whether token is the last one issued
func (g *Guard) IsLatest(token int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return token == g.current
}

// Current returns the last issued token, 0 when none was issued
func (g *Guard) Current() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}
