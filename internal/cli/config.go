package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"searchalicious/internal/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "config",
		Short:             "Manage the configuration file",
		PersistentPreRunE: skipConfig,
	}
	cmd.AddCommand(newConfigInitCmd(opts), newConfigPathCmd(opts))
	return cmd
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			svc := config.NewConfigService(opts.configPath)

			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", svc.Path())
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			p.Success("Wrote %s", svc.Path())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newConfigPathCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.NewConfigService(opts.configPath).Path())
			return err
		},
	}
}
