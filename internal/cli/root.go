// Package cli contains all commands of the searchalicious binary
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"searchalicious/internal/config"
	"searchalicious/internal/errors"
)

var version = "dev"

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
}

// options holds the flags shared by every command
type options struct {
	configPath string
	baseURL    string
	searchName string
	logFile    string
	cfg        *config.Config
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "searchalicious",
		Short: "Product search in the terminal",
		Long: `searchalicious is a terminal client for the Open Food Facts search API.

Each configured search gets a query bar, facets, sort options, pagination
and charts. The search state lives in a URL that can be shared and
reopened with --url.

Example usage:
  searchalicious                                     # Interactive search
  searchalicious --url 'https://x/?searchalicious_q=pasta'
  searchalicious search pasta --facet brands=barilla # One-shot search
  searchalicious config init                         # Write the default config
  searchalicious mock-server                         # Serve a fixture API`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.loadConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "search API base URL")
	rootCmd.PersistentFlags().StringVar(&opts.searchName, "search-name", "", "only use the named search")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "searchalicious.log", "log file, empty for stderr")

	tui := newTUICmd(opts)
	rootCmd.RunE = tui.RunE
	rootCmd.Flags().AddFlagSet(tui.Flags())

	rootCmd.AddCommand(
		tui,
		newSearchCmd(opts),
		newConfigCmd(opts),
		newMockServerCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig reads the config file and applies the flag overrides
func (o *options) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.NewConfigService(o.configPath).Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if o.baseURL != "" {
		if cfg.TaxonomiesBaseURL == cfg.BaseURL {
			cfg.TaxonomiesBaseURL = o.baseURL
		}
		cfg.BaseURL = o.baseURL
	}
	if o.searchName != "" {
		sc, ok := cfg.Search(o.searchName)
		if !ok {
			return errors.NewConfiguration(fmt.Sprintf("unknown search %q", o.searchName))
		}
		cfg.Searches = []config.SearchConfig{sc}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// skipConfig replaces the config loading of commands that do not search
func skipConfig(*cobra.Command, []string) error {
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		PersistentPreRunE: skipConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "searchalicious %s\n", version)
			return err
		},
	}
}
