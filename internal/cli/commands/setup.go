// Package commands implements the phonet CLI subcommands.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/phonet/internal/cli/config"
	"github.com/leapstack-labs/phonet/internal/cli/output"
	"github.com/leapstack-labs/phonet/pkg/scheme"
)

// ErrTestsFailed is returned by commands that run tests when any test fails.
// The failure summary has already been printed.
var ErrTestsFailed = errors.New("tests failed")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.OutputMode())
	if cfg.NoColor {
		r.DisableColor()
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// SchemeFile returns the scheme path from args, or the configured default.
func (c *CommandContext) SchemeFile(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return c.Cfg.File
}

// LoadScheme reads and parses a scheme file.
func (c *CommandContext) LoadScheme(path string) (*scheme.Scheme, error) {
	c.Logger.Debug("loading scheme", "file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scheme: %w", err)
	}

	s, err := scheme.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.Logger.Debug("scheme loaded",
		"file", path,
		"classes", s.Classes().Len(),
		"rules", len(s.Rules()),
		"tests", len(s.Tests()),
	)
	return s, nil
}

// getConfig returns the current configuration. Commands run without the root
// command load it from their own flags.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	return config.LoadConfig("", cmd.Flags())
}
