package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"searchalicious/internal/eventbus"
	applog "searchalicious/internal/log"
	"searchalicious/internal/ui"
)

func newTUICmd(opts *options) *cobra.Command {
	var deepLink string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive search (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts, deepLink)
		},
	}
	cmd.Flags().StringVar(&deepLink, "url", "", "restore the search state of a shared URL")
	return cmd
}

func runTUI(parent context.Context, opts *options, deepLink string) error {
	closer, err := applog.InitStructureLogConfig(opts.logFile)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closer.Close()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()

	a, err := newApp(opts.cfg, bus, deepLink)
	if err != nil {
		return err
	}
	a.attach(ctx)
	defer a.detach()

	model := ui.NewModel(ctx, a.sets, a.location)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	unbridge := ui.Bridge(bus, p)
	defer unbridge()

	for _, set := range a.sets {
		go func() {
			launched, err := set.FirstSearch(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "first search failed", "search", set.Name, "error", err)
				return
			}
			slog.DebugContext(ctx, "first search", "search", set.Name, "launched", launched)
		}()
	}

	slog.InfoContext(ctx, "starting", "searches", len(a.sets), "base_url", opts.cfg.BaseURL)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
