//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	// Ensure the test binary exists (it should be built by TestMain)
	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// Test help command by running it directly (not through PTY since it exits quickly)
	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, output, "Usage")
	require.Contains(t, output, "--url", "Help should document the deep link flag")
	require.Contains(t, output, "mock-server")
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t, mockURL)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should show the first frame")

	require.NoError(t, tf.OpenHelp())
	require.True(t, tf.OutputContainsPlain("Navigation", 3*time.Second), "Help pager should list key bindings")

	// Quit pager and ensure TUI again
	mark := tf.Mark()
	tf.Quit()
	require.True(t, tf.SeePlainSince(mark, "searchalicious"), "Should return to main TUI after closing pager")
}
