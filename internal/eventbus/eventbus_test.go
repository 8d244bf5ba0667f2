package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchalicious/internal/domain"
)

func launch(name string) domain.LaunchSearchEvent {
	return domain.LaunchSearchEvent{Routed: domain.Routed{Name: name}}
}

func page(name string, p int) domain.ChangePageEvent {
	return domain.ChangePageEvent{Routed: domain.Routed{Name: name}, Page: p}
}

func TestSyncBusDeliversByType(t *testing.T) {
	b := NewSync()
	var got []Event

	b.Subscribe(domain.EventChangePage, func(e Event) { got = append(got, e) })
	b.Publish(launch("s"))
	b.Publish(page("s", 2))

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].(domain.ChangePageEvent).Page)
}

func TestUnsubscribe(t *testing.T) {
	b := NewSync()
	var first, second int

	unsubscribe := b.Subscribe(domain.EventLaunchSearch, func(Event) { first++ })
	b.Subscribe(domain.EventLaunchSearch, func(Event) { second++ })

	b.Publish(launch("s"))
	unsubscribe()
	unsubscribe()
	b.Publish(launch("s"))

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestHandlerPanicIsRecovered(t *testing.T) {
	b := NewSync()
	called := false

	b.Subscribe(domain.EventLaunchSearch, func(Event) { panic("boom") })
	b.Subscribe(domain.EventLaunchSearch, func(Event) { called = true })

	assert.NotPanics(t, func() { b.Publish(launch("s")) })
	assert.True(t, called)
}

func TestAsyncBusPreservesOrder(t *testing.T) {
	b := New()
	defer b.Close()

	var mu sync.Mutex
	var pages []int
	b.Subscribe(domain.EventChangePage, func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		pages = append(pages, e.(domain.ChangePageEvent).Page)
	})

	for i := 1; i <= 20; i++ {
		b.Publish(page("s", i))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(pages) == 20
	}, time.Second, 5*time.Millisecond)

	for i, p := range pages {
		assert.Equal(t, i+1, p)
	}
}

func TestPublishAfterClose(t *testing.T) {
	b := New()
	called := false
	b.Subscribe(domain.EventLaunchSearch, func(Event) { called = true })

	b.Close()
	b.Close()
	b.Publish(launch("s"))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, called)
}

func TestForSearch(t *testing.T) {
	b := NewSync()
	var got []string

	b.Subscribe(domain.EventLaunchSearch, ForSearch("searchalicious", func(e Event) {
		got = append(got, e.SearchName())
	}))

	b.Publish(launch("other"))
	b.Publish(launch("searchalicious"))

	assert.Equal(t, []string{"searchalicious"}, got)
}
