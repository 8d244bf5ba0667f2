// Package debounce delays a function call until a quiet period has elapsed.
package debounce

import (
	"sync"
	"time"
)

// DefaultWait is used when a Debouncer is created with a non-positive wait
const DefaultWait = 300 * time.Millisecond

// Debouncer holds at most one pending call. Scheduling a new call replaces
// the pending one.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	timer *time.Timer
	seq   uint64
}

// New creates a Debouncer waiting the given duration before firing
func New(wait time.Duration) *Debouncer {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Debouncer{wait: wait}
}

// Wait returns the configured delay
func (d *Debouncer) Wait() time.Duration {
	return d.wait
}

// Debounce cancels any pending call and schedules fn to run after the wait
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		// a timer that fired while being replaced must not run
		if seq != d.seq || d.timer == nil {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending call, if any
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}

// Pending reports whether a call is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}
