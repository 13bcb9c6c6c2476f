package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/phonet/internal/cli/config"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-run a scheme's tests whenever the file changes",
		Long: `Run the tests of a scheme, then run them again every time the file is
saved. Bursts of writes are coalesced (see --debounce). Parse errors are
reported and watching continues. Stop with Ctrl-C.`,
		Example: `  phonet watch lang.phonet -d just-fails`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Tests, "tests", "t", nil, "Comma-separated words to test as valid (ignores tests in the file)")
	cmd.Flags().StringP("display", "d", config.DefaultDisplay, "What to display: show-all, notes-and-fails, just-fails, hide-all (or a, n, f, h)")
	cmd.Flags().Duration("debounce", config.DefaultDebounce, "Wait this long after the last change before re-running")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, args []string, opts *RunOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	file, err := filepath.Abs(cmdCtx.SchemeFile(args))
	if err != nil {
		return err
	}
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("failed to read scheme: %w", err)
	}

	w := &schemeWatcher{
		cmdCtx:   cmdCtx,
		file:     file,
		opts:     opts,
		debounce: cmdCtx.Cfg.Watch.Debounce,
	}
	return w.Run(ctx)
}

// schemeWatcher re-runs one scheme file on change.
type schemeWatcher struct {
	cmdCtx   *CommandContext
	file     string
	opts     *RunOptions
	debounce time.Duration

	mu   sync.Mutex // serializes runs and their output
	runs int
}

// Run runs the tests once, then on every change until ctx is done.
func (w *schemeWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(w.file)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.file), err)
	}

	w.runOnce(ctx)
	w.cmdCtx.Renderer.Muted("Watching " + w.file + " for changes (Ctrl-C to stop)")

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.cmdCtx.Logger.Debug("scheme changed", "file", event.Name, "op", event.Op.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				w.runOnce(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.cmdCtx.Logger.Warn("watcher error", "error", err)
		}
	}
}

// runOnce runs the tests and prints the report. Errors are printed, not returned.
func (w *schemeWatcher) runOnce(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	r := w.cmdCtx.Renderer
	if w.runs > 0 {
		r.Println("")
		r.Muted(time.Now().Format(time.TimeOnly) + " change detected, re-running")
	}
	w.runs++

	report, err := runFile(ctx, w.cmdCtx, w.file, w.opts)
	if err != nil {
		r.Error("Error: " + err.Error())
		return
	}

	if err := renderRunReport(w.cmdCtx, []FileReport{*report}); err != nil && !errors.Is(err, ErrTestsFailed) {
		r.Error("Error: " + err.Error())
	}
}
