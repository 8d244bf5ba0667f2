//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHitPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t, mockURL)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready())

	require.NoError(t, tf.Search("nutella"))
	require.True(t, tf.OutputContainsPlain("1 result", 5*time.Second), "Search should find Nutella")

	// Open the selected hit as JSON in the pager
	mark := tf.Mark()
	require.NoError(t, tf.SendKeys(KeyOpen))
	require.True(t, tf.SeePlainSince(mark, `"product_name": "Nutella"`), "Pager should show the hit document")

	mark = tf.Mark()
	tf.Quit()
	require.True(t, tf.SeePlainSince(mark, "1 result"), "Should return to main TUI after closing pager")
}
