package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/phonet/internal/cli"
)

// generateCLIDocs writes an index page plus one page per command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rootCmd := cli.NewRootCmd()

	if err := generateCLIIndex(rootCmd, outDir); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range documentedCommands(rootCmd) {
		if err := generateCommandPage(cmd, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}

	return nil
}

func documentedCommands(rootCmd *cobra.Command) []*cobra.Command {
	var cmds []*cobra.Command
	for _, cmd := range rootCmd.Commands() {
		if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "__complete" {
			continue
		}
		cmds = append(cmds, cmd)
	}
	return cmds
}

func generateCLIIndex(rootCmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("CLI Reference", "Command-line interface reference for phonet")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph(rootCmd.Long)

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/phonet/cmd/phonet@latest")

	w.Header(2, "Commands")
	var rows [][]string
	for _, cmd := range documentedCommands(rootCmd) {
		link := fmt.Sprintf("[%s](%s.md)", InlineCode(cmd.Name()), cmd.Name())
		rows = append(rows, []string{link, cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	writeFlagsTable(w, rootCmd.PersistentFlags())

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success, every test passed"},
		{InlineCode("1"), "A test failed or an error occurred"},
	})

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

func generateCommandPage(cmd *cobra.Command, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.Header(2, "Usage")
	useLine := cmd.UseLine()
	if !strings.HasPrefix(useLine, "phonet") {
		useLine = "phonet " + useLine
	}
	w.CodeBlock("bash", useLine)

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, 0, len(cmd.Aliases))
		for _, alias := range cmd.Aliases {
			aliases = append(aliases, InlineCode(alias))
		}
		w.BulletList(aliases)
	}

	if cmd.HasLocalFlags() {
		w.Header(2, "Options")
		writeFlagsTable(w, cmd.LocalFlags())
	}

	if cmd.HasInheritedFlags() {
		w.Header(2, "Global Options")
		writeFlagsTable(w, cmd.InheritedFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", cleanExample(cmd.Example))
	}

	return os.WriteFile(filepath.Join(outDir, cmd.Name()+".md"), w.Bytes(), 0600)
}

func writeFlagsTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		short := ""
		if f.Shorthand != "" {
			short = "-" + f.Shorthand
		}

		defVal := f.DefValue
		switch {
		case defVal == "" || defVal == "[]":
			defVal = ""
		case f.Value.Type() != "bool":
			defVal = InlineCode(defVal)
		}

		rows = append(rows, []string{
			InlineCode("--" + f.Name),
			short,
			defVal,
			cleanDescription(f.Usage),
		})
	})

	w.Table([]string{"Option", "Short", "Default", "Description"}, rows)
}

// cleanExample removes common leading whitespace from example text.
func cleanExample(example string) string {
	lines := strings.Split(example, "\n")

	minIndent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	if minIndent <= 0 {
		return strings.TrimSpace(example)
	}

	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(line) >= minIndent {
			result = append(result, line[minIndent:])
		} else {
			result = append(result, strings.TrimLeft(line, " \t"))
		}
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}
