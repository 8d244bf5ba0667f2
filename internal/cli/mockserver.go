package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"searchalicious/internal/mockserver"
)

func newMockServerCmd() *cobra.Command {
	var (
		addr    string
		fixture string
	)

	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Serve a fixture catalogue on the search API routes",
		Long: `Serve GET /search and GET /autocomplete from a JSON fixture.

Example usage:
  searchalicious mock-server
  searchalicious mock-server --addr 127.0.0.1:9000 --fixture products.json
  searchalicious --base-url http://127.0.0.1:8000 search pasta`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := mockserver.DefaultCatalog()
			if fixture != "" {
				catalog, err = mockserver.LoadCatalog(fixture)
			}
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			p := NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			return mockserver.New(catalog).ListenAndServe(ctx, addr, func(bound string) {
				p.Success("Serving %d products on http://%s", len(catalog.Products), bound)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", mockserver.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&fixture, "fixture", "", "fixture file (default is the built-in catalogue)")
	return cmd
}
