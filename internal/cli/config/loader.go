package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// envPrefix is the prefix of environment variables read into the config.
const envPrefix = "PHONET_"

// configNames are the config file names searched for, in order.
var configNames = []string{"phonet.yaml", "phonet.yml"}

// sections are nested config groups. PHONET_GENERATE_MIN_LENGTH maps to
// generate.min_length.
var sections = []string{"generate", "minify", "watch"}

// flagKeys maps flag names to config keys. Flags not listed here, such as
// --config or --tests, are not configuration.
var flagKeys = map[string]string{
	"file":       "file",
	"display":    "display",
	"no-color":   "no_color",
	"output":     "output",
	"verbose":    "verbose",
	"generate":   "generate.count",
	"count":      "generate.count",
	"gmin":       "generate.min_length",
	"min":        "generate.min_length",
	"gmax":       "generate.max_length",
	"max":        "generate.max_length",
	"timeout":    "generate.timeout",
	"with-tests": "minify.with_tests",
	"out":        "minify.output",
	"debounce":   "watch.debounce",
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// configExistsIn returns the config file in dir, or "".
func configExistsIn(dir string) string {
	for _, name := range configNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a phonet config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findConfigUpward(startDir string) string {
	dir := startDir
	for range maxUpwardSearchLevels {
		if found := configExistsIn(dir); found != "" {
			return found
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// envKey transforms PHONET_GENERATE_MIN_LENGTH into generate.min_length.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range sections {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")
	configFileUsed = ""

	// 1. Load defaults
	def := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"file":                def.File,
		"display":             def.Display,
		"no_color":            false,
		"output":              def.Output,
		"verbose":             false,
		"generate.count":      def.Generate.Count,
		"generate.min_length": def.Generate.MinLength,
		"generate.max_length": def.Generate.MaxLength,
		"generate.timeout":    "0s",
		"minify.with_tests":   false,
		"minify.output":       "",
		"watch.debounce":      def.Watch.Debounce.String(),
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	if cfgFile == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfgFile = findConfigUpward(cwd)
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		configFileUsed = cfgFile

		// A scheme path from the config file is relative to the file.
		if p := k.String("file"); p != DefaultFile && !filepath.IsAbs(p) {
			_ = k.Set("file", filepath.Join(filepath.Dir(cfgFile), p))
		}
	}

	// 3. Load environment variables (PHONET_ prefix)
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// NewLogger builds the CLI logger: text on w, debug level when verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
