// Package config provides configuration management for the phonet CLI.
//
// Values are layered, lowest to highest precedence: built-in defaults,
// a phonet.yaml file, PHONET_* environment variables, then flags that were
// explicitly set on the command line.
package config

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/phonet/internal/cli/output"
	"github.com/leapstack-labs/phonet/pkg/core"
)

// Config holds all CLI configuration options.
type Config struct {
	File     string         `koanf:"file"`
	Display  string         `koanf:"display"`
	NoColor  bool           `koanf:"no_color"`
	Output   string         `koanf:"output"`
	Verbose  bool           `koanf:"verbose"`
	Generate GenerateConfig `koanf:"generate"`
	Minify   MinifyConfig   `koanf:"minify"`
	Watch    WatchConfig    `koanf:"watch"`
}

// GenerateConfig controls random word generation.
type GenerateConfig struct {
	Count     int           `koanf:"count"`
	MinLength int           `koanf:"min_length"`
	MaxLength int           `koanf:"max_length"`
	Timeout   time.Duration `koanf:"timeout"` // 0 disables the timeout
}

// MinifyConfig controls minified output.
type MinifyConfig struct {
	WithTests bool   `koanf:"with_tests"`
	Output    string `koanf:"output"` // empty derives the name from the input file
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values.
const (
	DefaultFile      = "phonet"
	DefaultDisplay   = "show-all"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultCount     = 1
	DefaultMinLength = 3
	DefaultMaxLength = 14
	DefaultDebounce  = 150 * time.Millisecond
)

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		File:    DefaultFile,
		Display: DefaultDisplay,
		Output:  DefaultOutput,
		Generate: GenerateConfig{
			Count:     DefaultCount,
			MinLength: DefaultMinLength,
			MaxLength: DefaultMaxLength,
		},
		Watch: WatchConfig{Debounce: DefaultDebounce},
	}
}

// DisplayLevel returns the parsed display level.
func (c *Config) DisplayLevel() core.DisplayLevel {
	level, _ := core.ParseDisplayLevel(c.Display)
	return level
}

// OutputMode returns the configured output mode.
func (c *Config) OutputMode() output.Mode {
	return output.Mode(c.Output)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := core.ParseDisplayLevel(c.Display); !ok {
		return fmt.Errorf("invalid display level %q (want one of show-all, notes-and-fails, just-fails, hide-all)", c.Display)
	}
	if !c.OutputMode().Valid() {
		return fmt.Errorf("invalid output format %q (want one of auto, text, markdown, json, yaml)", c.Output)
	}
	if c.Generate.Count < 0 {
		return fmt.Errorf("generate count must not be negative, got %d", c.Generate.Count)
	}
	if c.Generate.MinLength < 0 || c.Generate.MaxLength <= c.Generate.MinLength {
		return fmt.Errorf("invalid word length range [%d, %d)", c.Generate.MinLength, c.Generate.MaxLength)
	}
	if c.Generate.Timeout < 0 {
		return fmt.Errorf("generate timeout must not be negative, got %s", c.Generate.Timeout)
	}
	return nil
}
