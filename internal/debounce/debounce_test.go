package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultWait(t *testing.T) {
	assert.Equal(t, DefaultWait, New(0).Wait())
	assert.Equal(t, DefaultWait, New(-time.Second).Wait())
	assert.Equal(t, 10*time.Millisecond, New(10*time.Millisecond).Wait())
}

func TestDebounceRunsOnce(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 5; i++ {
		i := i
		d.Debounce(func() {
			calls.Add(1)
			last.Store(int32(i))
		})
	}
	require.True(t, d.Pending())

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(5), last.Load())
	assert.False(t, d.Pending())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCancel(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32

	d.Debounce(func() { calls.Add(1) })
	d.Cancel()
	assert.False(t, d.Pending())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestIndependentInstances(t *testing.T) {
	a := New(20 * time.Millisecond)
	b := New(20 * time.Millisecond)
	var calls atomic.Int32

	a.Debounce(func() { calls.Add(1) })
	b.Debounce(func() { calls.Add(1) })

	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}
