package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hqlbridge/internal/config"
	"github.com/leapstack-labs/hqlbridge/pkg/convert"
)

type configKey struct{}
type loggerKey struct{}

// ConfigKey returns the context key under which the loaded config is
// stored. Shared with the cli package to avoid an import cycle.
func ConfigKey() interface{} { return configKey{} }

// LoggerKey returns the context key under which the logger is stored.
func LoggerKey() interface{} { return loggerKey{} }

// getConfig retrieves the config from the command context.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{OutputFormat: config.DefaultOutput}
}

// getLogger retrieves the logger from the command context.
func getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// newConverter builds a converter from the loaded config and attaches
// the command logger.
func newConverter(cmd *cobra.Command) (*convert.Converter, error) {
	cfg := getConfig(cmd.Context())
	conv, err := cfg.NewConverter()
	if err != nil {
		return nil, err
	}
	conv.Logger = getLogger(cmd.Context())
	return conv, nil
}

// readQuery returns the query from args, or from stdin when no argument
// is given.
func readQuery(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read query from stdin: %w", err)
	}
	query := strings.TrimSpace(string(data))
	if query == "" {
		return "", fmt.Errorf("no query given: pass it as an argument or on stdin")
	}
	return query, nil
}
