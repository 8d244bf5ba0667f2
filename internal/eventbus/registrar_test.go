package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchalicious/internal/domain"
)

func TestRegistrarDefersSubscription(t *testing.T) {
	b := NewSync()
	r := NewRegistrar(b, time.Hour)
	calls := 0

	r.Add(domain.EventLaunchSearch, func(Event) { calls++ })
	assert.Equal(t, 1, r.Pending())

	b.Publish(launch("s"))
	assert.Equal(t, 0, calls)

	r.Flush()
	assert.Equal(t, 0, r.Pending())
	assert.Equal(t, 1, r.Active())

	b.Publish(launch("s"))
	assert.Equal(t, 1, calls)
}

func TestRegistrarAppliesOnFrameTick(t *testing.T) {
	b := NewSync()
	r := NewRegistrar(b, 5*time.Millisecond)
	defer r.Close()

	r.Add(domain.EventLaunchSearch, func(Event) {})

	require.Eventually(t, func() bool { return r.Active() == 1 }, time.Second, time.Millisecond)
}

func TestRegistrarRemoveBeforeTickNeverAttaches(t *testing.T) {
	b := NewSync()
	r := NewRegistrar(b, 5*time.Millisecond)
	var calls atomic.Int32

	reg := r.Add(domain.EventLaunchSearch, func(Event) { calls.Add(1) })
	r.Remove(reg)

	time.Sleep(30 * time.Millisecond)
	r.Flush()
	b.Publish(launch("s"))

	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 0, r.Active())
}

func TestRegistrarRemoveAfterTickUnsubscribes(t *testing.T) {
	b := NewSync()
	r := NewRegistrar(b, time.Hour)
	calls := 0

	reg := r.Add(domain.EventLaunchSearch, func(Event) { calls++ })
	r.Flush()
	b.Publish(launch("s"))
	r.Remove(reg)
	b.Publish(launch("s"))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, r.Active())
}

func TestRegistrarClose(t *testing.T) {
	b := NewSync()
	r := NewRegistrar(b, time.Hour)
	calls := 0

	r.Add(domain.EventLaunchSearch, func(Event) { calls++ })
	r.Flush()
	r.Add(domain.EventChangePage, func(Event) { calls++ })

	r.Close()
	b.Publish(launch("s"))
	b.Publish(page("s", 2))

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, r.Active())
	assert.Equal(t, 0, r.Pending())
}
