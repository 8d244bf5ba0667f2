package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"searchalicious/internal/domain"
)

// PagerOps shows long content in the ov pager, releasing the terminal
// from the Bubble Tea program while it runs
type PagerOps struct {
	program *tea.Program
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowHelpInPager shows help content using ov pager
func (p *PagerOps) ShowHelpInPager(helpContent string) error {
	return p.runPager(strings.NewReader(helpContent))
}

// ShowHitInPager shows a search hit as indented JSON
func (p *PagerOps) ShowHitInPager(hit domain.Hit) error {
	content, err := formatHit(hit)
	if err != nil {
		return err
	}
	return p.runPager(strings.NewReader(content))
}

func formatHit(hit domain.Hit) (string, error) {
	data, err := json.MarshalIndent(hit, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format hit: %w", err)
	}
	return string(data), nil
}

// runPager runs ov on r, handling terminal release and restore
func (p *PagerOps) runPager(r io.Reader) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
