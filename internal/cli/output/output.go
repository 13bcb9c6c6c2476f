// Package output renders command results as styled text, markdown, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// OutputMode selects how a Renderer formats results.
type OutputMode string

// Mode is shorthand for OutputMode, used for conversions like output.Mode(cfg.Output).
type Mode = OutputMode

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
	ModeYAML     OutputMode = "yaml"
)

// ModeNames lists accepted mode names, for flag completion.
func ModeNames() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON), string(ModeYAML)}
}

// Valid reports whether m is a known mode. The empty mode counts as auto.
func (m OutputMode) Valid() bool {
	switch m {
	case "", ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML:
		return true
	}
	return false
}

// Renderer writes formatted output to a pair of writers.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}

	lr := lipgloss.NewRenderer(out)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: newStyles(lr),
	}
}

// DisableColor forces plain output regardless of the terminal.
func (r *Renderer) DisableColor() {
	lr := lipgloss.NewRenderer(r.out)
	lr.SetColorProfile(termenv.Ascii)
	r.styles = newStyles(lr)
}

// EffectiveMode resolves auto to text on a terminal and markdown otherwise.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the standard output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the error output writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Printf writes formatted output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Println writes a line.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Errorf writes a formatted message to the error writer.
func (r *Renderer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errOut, format, args...)
}

// Header writes a styled heading.
func (r *Renderer) Header(level int, text string) {
	style := r.styles.Header1
	if level > 1 {
		style = r.styles.Header2
	}
	r.Println(style.Render(text))
}

// Muted writes a dimmed line.
func (r *Renderer) Muted(text string) {
	r.Println(r.styles.Muted.Render(text))
}

// Success writes a success line.
func (r *Renderer) Success(text string) {
	r.Println(r.styles.Success.Render(text))
}

// Error writes an error line.
func (r *Renderer) Error(text string) {
	r.Println(r.styles.Error.Render(text))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as a YAML document.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Structured writes v in JSON or YAML mode and reports whether it did.
func (r *Renderer) Structured(v any) (bool, error) {
	switch r.EffectiveMode() {
	case ModeJSON:
		return true, r.JSON(v)
	case ModeYAML:
		return true, r.YAML(v)
	default:
		return false, nil
	}
}

// FormatHeader returns a markdown heading.
func FormatHeader(level int, text string) string {
	return strings.Repeat("#", max(level, 1)) + " " + text
}

// EscapeMarkdown escapes characters that break inline markdown and tables.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
