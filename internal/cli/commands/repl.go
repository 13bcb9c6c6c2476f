package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/leapstack-labs/phonet/pkg/core"
	"github.com/leapstack-labs/phonet/pkg/scheme"
)

const replPrompt = "phonet> "

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl [file]",
		Short: "Interactively validate words against a scheme",
		Long: `Load a scheme and validate words typed at the prompt.

Each whitespace-separated word on a line is checked against the rules and
reported as valid or invalid, with the reason of the first failing rule.
Lines starting with "." are commands; type .help to list them.`,
		Example: `  phonet repl lang.phonet`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, args)
		},
	}
	return cmd
}

func runREPL(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	session, err := newREPLSession(cmd.Context(), cmdCtx, cmdCtx.SchemeFile(args))
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     replHistoryFile(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	r := cmdCtx.Renderer
	r.Printf("phonet REPL (scheme: %s)\n", session.file)
	r.Println("Type words to validate them, .help for commands, .quit to exit")
	r.Println("")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if quit := session.handle(line); quit {
			break
		}
	}

	return nil
}

// replSession holds the scheme being explored. It is separate from the
// terminal loop so lines can be fed to it directly.
type replSession struct {
	ctx    context.Context
	cmdCtx *CommandContext
	file   string
	scheme *scheme.Scheme
}

func newREPLSession(ctx context.Context, cmdCtx *CommandContext, file string) (*replSession, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := cmdCtx.LoadScheme(file)
	if err != nil {
		return nil, err
	}
	return &replSession{ctx: ctx, cmdCtx: cmdCtx, file: file, scheme: s}, nil
}

// handle processes one input line and reports whether the session should end.
func (rs *replSession) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ".") {
		return rs.dotCommand(line)
	}

	rs.validate(strings.Fields(line))
	return false
}

func (rs *replSession) validate(words []string) {
	r := rs.cmdCtx.Renderer
	styles := r.Styles()

	for _, w := range words {
		w = norm.NFC.String(w)
		v := rs.scheme.Validate(w)
		if v.IsValid() {
			r.Printf("  %s %s %s\n", styles.Info.Render(markValid), w, styles.Success.Render("valid"))
			continue
		}

		reason := core.MessageNoReasonGiven
		if ref, ok := v.ReasonRef(); ok {
			reason = rs.scheme.Reason(ref)
		}
		r.Printf("  %s %s %s %s\n", styles.Muted.Render(markInvalid), w,
			styles.Error.Render("invalid"), styles.Bold.Render(reason))
	}
}

func (rs *replSession) dotCommand(line string) bool {
	r := rs.cmdCtx.Renderer
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".classes":
		renderClassTable(r.Writer(), classInfos(rs.scheme.Classes()))

	case ".rules":
		renderRuleTable(r.Writer(), buildInspectReport(rs.file, rs.scheme).Rules)

	case ".generate", ".gen":
		count := 1
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n < 0 {
				r.Errorf("Usage: .generate [count]\n")
				return false
			}
			count = n
		}
		words, err := generateWords(rs.ctx, rs.cmdCtx, rs.scheme, count)
		if err != nil {
			r.Errorf("Error: %v\n", err)
			return false
		}
		renderWords(r, words)

	case ".reload":
		s, err := rs.cmdCtx.LoadScheme(rs.file)
		if err != nil {
			r.Errorf("Error: %v\n", err)
			return false
		}
		rs.scheme = s
		r.Success("Reloaded " + rs.file)

	default:
		r.Errorf("Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .classes          List classes with their resolved values
  .rules            List rules and their reasons
  .generate [n]     Generate n random valid words (default 1)
  .reload           Re-read the scheme file
  .quit / .exit     Exit the REPL

Tips:
  - Several words can be checked at once, separated by spaces
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter completes dot-commands.
func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".classes"),
		readline.PcItem(".rules"),
		readline.PcItem(".generate"),
		readline.PcItem(".reload"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

// replHistoryFile returns the history path in the user cache dir, or "" to
// keep history in memory only.
func replHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "phonet")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

