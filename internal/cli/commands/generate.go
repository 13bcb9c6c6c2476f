package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/phonet/internal/cli/config"
)

// GenerateReport is the structured output of the generate command.
type GenerateReport struct {
	File  string   `json:"file" yaml:"file"`
	Words []string `json:"words" yaml:"words"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Generate random words that satisfy a scheme",
		Long: `Generate random words that pass every rule of a scheme.

The scheme must define the any-class "$_" listing every letter that may
appear in a word. Candidates are drawn from it at random and rejected until
one is valid, so very restrictive rules can take a long time; use
--timeout to bound the run.`,
		Example: `  # One word of length 3 to 13
  phonet generate lang.phonet

  # Ten words of length 4 or 5, giving up after 5 seconds
  phonet generate lang.phonet -n 10 --min 4 --max 6 --timeout 5s`,
		Aliases: []string{"gen"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args)
		},
	}

	cmd.Flags().IntP("count", "n", config.DefaultCount, "Number of words to generate")
	cmd.Flags().Int("min", config.DefaultMinLength, "Minimum word length")
	cmd.Flags().Int("max", config.DefaultMaxLength, "Maximum word length (exclusive)")
	cmd.Flags().Duration("timeout", 0, "Give up after this long (0 for no limit)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	file := cmdCtx.SchemeFile(args)
	s, err := cmdCtx.LoadScheme(file)
	if err != nil {
		return err
	}

	words, err := generateWords(cmd.Context(), cmdCtx, s, cmdCtx.Cfg.Generate.Count)
	if err != nil {
		return err
	}

	handled, err := r.Structured(GenerateReport{File: file, Words: words})
	if handled || err != nil {
		return err
	}
	renderWords(r, words)
	return nil
}
