package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/phonet/pkg/scheme"
)

// MinifyReport is the structured output of the minify command.
type MinifyReport struct {
	File     string `json:"file" yaml:"file"`
	Output   string `json:"output" yaml:"output"`
	Minified string `json:"minified" yaml:"minified"`
}

// NewMinifyCommand creates the minify command.
func NewMinifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minify [file]",
		Short: "Write a compact, equivalent copy of a scheme",
		Long: `Serialize a scheme back to its most compact source form.

Classes and rules are kept; reasons, notes and comments are dropped. The
output validates every word exactly like the input. By default the result
is written next to the input with ".min" before the extension
(lang.phonet -> lang.min.phonet). Use --out - to print it instead.`,
		Example: `  # Write lang.min.phonet
  phonet minify lang.phonet

  # Keep tests and print to stdout
  phonet minify lang.phonet --with-tests --out -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMinify(cmd, args)
		},
	}

	cmd.Flags().Bool("with-tests", false, "Include tests in minified output")
	cmd.Flags().String("out", "", "Output file ('-' for stdout, default derived from the input name)")

	return cmd
}

func runMinify(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	file := cmdCtx.SchemeFile(args)
	s, err := cmdCtx.LoadScheme(file)
	if err != nil {
		return err
	}

	out := cfg.Minify.Output
	if out == "" {
		out = scheme.MinFilename(file)
	}

	minified := s.Minify(cfg.Minify.WithTests)
	if out == "-" {
		r.Println(minified)
		return nil
	}

	if err := writeMinified(s, out, cfg.Minify.WithTests); err != nil {
		return err
	}

	handled, err := r.Structured(MinifyReport{File: file, Output: out, Minified: minified})
	if handled || err != nil {
		return err
	}
	r.Success("Minified " + file + " -> " + out)
	return nil
}
