//go:build e2e && unix

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// startMockServer runs the mock-server command on a free port and returns
// the process with the URL it announced
func startMockServer() (*exec.Cmd, string, error) {
	cmd := exec.Command(binPath, "mock-server", "--addr", "127.0.0.1:0")
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, "", err
	}
	if err := cmd.Start(); err != nil {
		return nil, "", err
	}

	found := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := scanner.Text()
			if i := strings.Index(line, "http://"); i >= 0 {
				found <- strings.TrimSpace(line[i:])
				break
			}
		}
		// keep draining so the server never blocks on a full pipe
		for scanner.Scan() {
		}
	}()

	select {
	case url := <-found:
		return cmd, url, nil
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
		return nil, "", fmt.Errorf("mock server did not announce its address")
	}
}
