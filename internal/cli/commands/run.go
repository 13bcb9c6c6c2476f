package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/phonet/internal/cli/config"
	"github.com/leapstack-labs/phonet/pkg/core"
	"github.com/leapstack-labs/phonet/pkg/scheme"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Tests    []string
	Minify   bool
	Generate bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Run the tests of one or more scheme files",
		Long: `Parse scheme files and run their tests.

With no arguments the configured file is used (default: ./phonet).
Several files are parsed and tested concurrently; reports are printed in
argument order. The command fails when any test fails.`,
		Example: `  # Run the tests in ./phonet
  phonet run

  # Only show failures
  phonet run lang.phonet -d just-fails

  # Check ad hoc words instead of the file's tests
  phonet run lang.phonet -t pata,taka,pa7

  # Also write lang.min.phonet and generate 5 words of length 4 to 7
  phonet run lang.phonet -m --generate=5 --gmin 4 --gmax 8`,
		Aliases: []string{"test"},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Generate = cmd.Flags().Changed("generate")
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Tests, "tests", "t", nil, "Comma-separated words to test as valid (ignores tests in the file)")
	cmd.Flags().StringP("display", "d", config.DefaultDisplay, "What to display: show-all, notes-and-fails, just-fails, hide-all (or a, n, f, h)")
	cmd.Flags().BoolVarP(&opts.Minify, "minify", "m", false, "Also write the minified scheme next to each file")
	cmd.Flags().Bool("with-tests", false, "Include tests in minified output")
	cmd.Flags().IntP("generate", "g", config.DefaultCount, "Generate random valid words (-g alone generates one)")
	cmd.Flags().Lookup("generate").NoOptDefVal = "1"
	cmd.Flags().Int("gmin", config.DefaultMinLength, "Minimum length of generated words")
	cmd.Flags().Int("gmax", config.DefaultMaxLength, "Maximum length of generated words (exclusive)")

	_ = cmd.RegisterFlagCompletionFunc("display", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return core.DisplayLevelNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRun(cmd *cobra.Command, args []string, opts *RunOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	files := args
	if len(files) == 0 {
		files = []string{cmdCtx.Cfg.File}
	}

	reports, err := runFiles(cmd.Context(), cmdCtx, files, opts)
	if err != nil {
		return err
	}

	return renderRunReport(cmdCtx, reports)
}

// runFiles runs every file concurrently and returns reports in input order.
func runFiles(ctx context.Context, cmdCtx *CommandContext, files []string, opts *RunOptions) ([]FileReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	reports := make([]FileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)

	for i, file := range files {
		g.Go(func() error {
			report, err := runFile(gctx, cmdCtx, file, opts)
			if err != nil {
				return err
			}
			reports[i] = *report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// runFile parses one scheme, runs its tests and performs the optional
// minify and generate steps.
func runFile(ctx context.Context, cmdCtx *CommandContext, file string, opts *RunOptions) (*FileReport, error) {
	cfg := cmdCtx.Cfg

	s, err := cmdCtx.LoadScheme(file)
	if err != nil {
		return nil, err
	}

	if len(opts.Tests) > 0 {
		s.SetTests(scheme.TestsFromWords(opts.Tests))
	}

	report := &FileReport{File: file}

	if opts.Minify {
		report.Minified = scheme.MinFilename(file)
		if err := writeMinified(s, report.Minified, cfg.Minify.WithTests); err != nil {
			return nil, err
		}
		cmdCtx.Logger.Debug("wrote minified scheme", "file", report.Minified)
	}

	report.Results = s.Run()

	// A generation failure is reported after the test results.
	if opts.Generate && cfg.Generate.Count > 0 {
		words, err := generateWords(ctx, cmdCtx, s, cfg.Generate.Count)
		report.Generated = words
		if err != nil {
			report.generateErr = fmt.Errorf("could not generate words for %s: %w", file, err)
			report.GenerateError = report.generateErr.Error()
			cmdCtx.Logger.Debug("generation failed", "file", file, "error", err)
		}
	}

	return report, nil
}

func writeMinified(s *scheme.Scheme, path string, withTests bool) error {
	if path == "" {
		return fmt.Errorf("cannot derive a minified file name")
	}
	if err := os.WriteFile(path, []byte(s.Minify(withTests)+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write minified scheme: %w", err)
	}
	return nil
}

// generateWords generates count words using the configured lengths and timeout.
func generateWords(ctx context.Context, cmdCtx *CommandContext, s *scheme.Scheme, count int) ([]string, error) {
	cfg := cmdCtx.Cfg.Generate

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	g := scheme.NewGenerator(s)
	g.Logger = cmdCtx.Logger
	return g.Generate(ctx, count, cfg.MinLength, cfg.MaxLength)
}

func renderRunReport(cmdCtx *CommandContext, reports []FileReport) error {
	r := cmdCtx.Renderer

	report := RunReport{Files: reports}
	var generateErrs []error
	for _, fr := range reports {
		report.FailCount += fr.Results.FailCount
		if fr.generateErr != nil {
			generateErrs = append(generateErrs, fr.generateErr)
		}
	}

	handled, err := r.Structured(report)
	if err != nil {
		return err
	}
	if !handled {
		level := cmdCtx.Cfg.DisplayLevel()
		for i, fr := range reports {
			if i > 0 {
				r.Println("")
			}
			title := ""
			if len(reports) > 1 {
				title = fr.File
			}
			renderResults(r, title, fr.Results, level)
			renderWords(r, fr.Generated)
		}
	}

	if err := errors.Join(generateErrs...); err != nil {
		return err
	}
	if report.FailCount > 0 {
		return ErrTestsFailed
	}
	return nil
}
