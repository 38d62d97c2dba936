package commands

import (
	"github.com/spf13/cobra"

	"github.com/macisi/ehdev-configs/internal/devserver"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the build output for local preview",
		Long: `Serve the build output directory over HTTP. The server is a static
preview; run 'ehdev build' first to produce output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFrom(cmd.Context())
			logger := LoggerFrom(cmd.Context())
			port, _ := cmd.Root().PersistentFlags().GetInt("port")

			srv := devserver.New(cfg.BuildPath, port, logger)
			return srv.Serve(cmd.Context())
		},
	}
}
