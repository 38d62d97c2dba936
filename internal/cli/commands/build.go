package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/macisi/ehdev-configs/internal/bundler"
	"github.com/macisi/ehdev-configs/internal/config"
	"github.com/macisi/ehdev-configs/internal/plan"
)

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	var mode string
	var debug bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Plan and execute a build",
		Long: `Assemble the build graph and hand it to the bundler: bundle entries,
copy vendored externals, emit pages, and write the service worker when
offline precaching is enabled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFrom(cmd.Context())
			logger := LoggerFrom(cmd.Context())
			port, _ := cmd.Root().PersistentFlags().GetInt("port")

			start := time.Now()

			g, err := plan.New(cfg, logger).Plan(mode, plan.Options{Port: port, Debug: debug})
			if err != nil {
				return err
			}

			if err := bundler.New(g, logger).Build(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Built %d entries to %s in %s\n",
				len(g.Entries), g.Output.Path, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", config.ModeProduction, "Build mode (development|production)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Bake the debug flag into the bundle")

	return cmd
}
