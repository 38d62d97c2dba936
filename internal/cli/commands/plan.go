package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macisi/ehdev-configs/internal/config"
	"github.com/macisi/ehdev-configs/internal/plan"
)

// NewPlanCommand creates the plan command.
func NewPlanCommand() *cobra.Command {
	var mode string
	var debug bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Synthesize and print the build graph",
		Long: `Assemble the build graph for the workspace descriptor and print it
as JSON without running a build.

The output is deterministic: two invocations with the same descriptor and
mode print the same graph.`,
		Example: `  # Plan a development build
  ehdev plan

  # Plan a production build
  ehdev plan --mode production`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFrom(cmd.Context())
			logger := LoggerFrom(cmd.Context())
			port, _ := cmd.Root().PersistentFlags().GetInt("port")

			g, err := plan.New(cfg, logger).Plan(mode, plan.Options{Port: port, Debug: debug})
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode graph: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", config.ModeDevelopment, "Build mode (development|production)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Bake the debug flag into the bundle")

	return cmd
}
