package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/phonet/internal/cli/config"
	"github.com/leapstack-labs/phonet/internal/cli/output"
	"github.com/leapstack-labs/phonet/pkg/core"
)

// ConfigField describes one key of phonet.yaml.
type ConfigField struct {
	Key         string
	Type        string
	Default     string
	Description string
}

func getConfigSchema() []ConfigField {
	def := config.Default()
	return []ConfigField{
		{Key: "file", Type: "string", Default: def.File, Description: "Scheme file used when no file argument is given, relative to the config file"},
		{Key: "display", Type: "string", Default: def.Display, Description: "Which results to show: " + strings.Join(core.DisplayLevelNames(), ", ")},
		{Key: "output", Type: "string", Default: def.Output, Description: "Output format: " + strings.Join(output.ModeNames(), ", ")},
		{Key: "no_color", Type: "bool", Default: "false", Description: "Display output without colors"},
		{Key: "verbose", Type: "bool", Default: "false", Description: "Log debug records to stderr"},
		{Key: "generate.count", Type: "int", Default: strconv.Itoa(def.Generate.Count), Description: "Number of words to generate"},
		{Key: "generate.min_length", Type: "int", Default: strconv.Itoa(def.Generate.MinLength), Description: "Minimum generated word length, inclusive"},
		{Key: "generate.max_length", Type: "int", Default: strconv.Itoa(def.Generate.MaxLength), Description: "Maximum generated word length, exclusive"},
		{Key: "generate.timeout", Type: "duration", Default: "0s", Description: "Stop generating after this long, 0 for no limit"},
		{Key: "minify.with_tests", Type: "bool", Default: "false", Description: "Keep tests in minified output"},
		{Key: "minify.output", Type: "string", Default: "", Description: "Minified output path, derived from the input when empty"},
		{Key: "watch.debounce", Type: "duration", Default: def.Watch.Debounce.String(), Description: "Quiet period before re-running after a change"},
	}
}

func envVarName(key string) string {
	return "PHONET_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// generateConfigDocs writes the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "phonet configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("phonet reads `phonet.yaml` (or `phonet.yml`) from the current directory or the nearest parent. " +
		"Flags override environment variables, which override the file.")

	fields := getConfigSchema()
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		defVal := f.Default
		if defVal == "" {
			defVal = "-"
		}
		rows = append(rows, []string{InlineCode(f.Key), f.Type, InlineCode(defVal), InlineCode(envVarName(f.Key)), f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Environment", "Description"}, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `file: schemes/lang.phonet
display: notes-and-fails
output: text

generate:
  count: 10
  min_length: 4
  max_length: 9
  timeout: 2s

watch:
  debounce: 300ms`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
