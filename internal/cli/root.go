// Package cli provides the command-line interface for ehdev.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/macisi/ehdev-configs/internal/cli/commands"
	"github.com/macisi/ehdev-configs/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ehdev",
		Short: "ehdev - frontend build planner",
		Long: `ehdev synthesizes a complete build graph for multi-page frontend
projects from a declarative descriptor (abc.json): page entries, shared
library chunks, externals, and mode-dependent build directives.

The graph is printed with 'plan' and executed with 'build'.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			flags := cmd.Root().PersistentFlags()

			verbose, _ := flags.GetBool("verbose")
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			workspace, _ := flags.GetString("workspace")
			cfg, err := config.Load(workspace, flags)
			if err != nil {
				return err
			}

			ctx := commands.WithConfig(cmd.Context(), cfg)
			ctx = commands.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "Workspace root (directory containing abc.json)")
	rootCmd.PersistentFlags().IntP("port", "p", 8080, "Dev-server port baked into development entries")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("pages-root", "", "Override the pages root directory")
	rootCmd.PersistentFlags().String("build-path", "", "Override the build output directory")
	rootCmd.PersistentFlags().String("public-path", "", "Override the public URL prefix")
	rootCmd.PersistentFlags().String("framework", "", "Override the UI framework name")

	rootCmd.AddCommand(commands.NewPlanCommand())
	rootCmd.AddCommand(commands.NewBuildCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
