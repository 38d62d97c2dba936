// Package commands implements the ehdev subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/macisi/ehdev-configs/internal/config"
)

type configKey struct{}
type loggerKey struct{}

// WithConfig stores the merged project config in the command context.
func WithConfig(ctx context.Context, cfg *config.ProjectConfig) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// WithLogger stores the logger in the command context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// ConfigFrom retrieves the project config loaded by the root command.
func ConfigFrom(ctx context.Context) *config.ProjectConfig {
	if cfg, ok := ctx.Value(configKey{}).(*config.ProjectConfig); ok {
		return cfg
	}
	return nil
}

// LoggerFrom retrieves the logger, falling back to a discard logger.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
