package commands

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/phonet/internal/cli/output"
	"github.com/leapstack-labs/phonet/pkg/core"
	"github.com/leapstack-labs/phonet/pkg/scheme"
)

// FileReport is the outcome of running one scheme file.
type FileReport struct {
	File      string          `json:"file" yaml:"file"`
	Results   *scheme.Results `json:"results" yaml:"results"`
	Generated []string        `json:"generated,omitempty" yaml:"generated,omitempty"`
	Minified  string          `json:"minified,omitempty" yaml:"minified,omitempty"`

	GenerateError string `json:"generate_error,omitempty" yaml:"generate_error,omitempty"`
	generateErr   error
}

// RunReport is the structured output of the run command.
type RunReport struct {
	Files     []FileReport `json:"files" yaml:"files"`
	FailCount int          `json:"fail_count" yaml:"fail_count"`
}

// Intent markers shown next to test words.
const (
	markValid   = "✔"
	markInvalid = "✗"
)

func intentMark(intent bool) string {
	if intent {
		return markValid
	}
	return markInvalid
}

// summaryLine returns the closing line for a result set.
func summaryLine(res *scheme.Results) string {
	switch {
	case res.TestCount() == 0:
		return "No tests ran."
	case res.FailCount == 0:
		return "All tests pass!"
	case res.FailCount == 1:
		return "1 test failed!"
	default:
		return fmt.Sprintf("%d tests failed!", res.FailCount)
	}
}

// renderResults prints one result set in text or markdown mode.
func renderResults(r *output.Renderer, title string, res *scheme.Results, level core.DisplayLevel) {
	if r.EffectiveMode() == output.ModeMarkdown {
		renderResultsMarkdown(r, title, res, level)
		return
	}
	renderResultsText(r, title, res, level)
}

func renderResultsText(r *output.Renderer, title string, res *scheme.Results, level core.DisplayLevel) {
	styles := r.Styles()

	if title != "" {
		r.Header(1, title)
	}

	if res.TestCount() == 0 {
		r.Println(styles.Warning.Render(summaryLine(res)))
		return
	}

	width := res.MaxWordLen(level)
	for _, item := range res.Filter(level) {
		if item.IsNote() {
			r.Println(styles.Note.Render(item.Note))
			continue
		}

		mark := styles.Info.Render(markValid)
		if !item.Intent {
			mark = styles.Muted.Render(markInvalid)
		}
		result := styles.Success.Render("pass")
		if !item.Pass {
			result = styles.Error.Bold(true).Render("FAIL")
		}
		pad := strings.Repeat(" ", max(width-utf8.RuneCountInString(item.Word), 0))

		reason := item.Reason.String()
		if item.Reason.Kind == core.FailShouldBeInvalid {
			reason = styles.Warning.Render(reason)
		} else if reason != "" {
			reason = styles.Bold.Render(reason)
		}

		r.Println(strings.TrimRight(fmt.Sprintf("  %s %s%s  %s %s", mark, item.Word, pad, result, reason), " "))
	}

	if res.AllPassed() {
		r.Println(styles.Success.Bold(true).Render(summaryLine(res)))
	} else {
		r.Println(styles.Error.Bold(true).Render(summaryLine(res)))
	}
}

func renderResultsMarkdown(r *output.Renderer, title string, res *scheme.Results, level core.DisplayLevel) {
	if title != "" {
		r.Println(output.FormatHeader(1, title))
		r.Println("")
	}

	for _, item := range res.Filter(level) {
		if item.IsNote() {
			r.Println("")
			r.Println(output.FormatHeader(3, output.EscapeMarkdown(item.Note)))
			r.Println("")
			continue
		}

		status := "pass"
		if !item.Pass {
			status = "**FAIL**"
		}
		line := fmt.Sprintf("- %s `%s` %s", intentMark(item.Intent), item.Word, status)
		if reason := item.Reason.String(); reason != "" {
			line += ": " + output.EscapeMarkdown(reason)
		}
		r.Println(line)
	}

	r.Println("")
	r.Printf("**%s**\n", summaryLine(res))
}

// renderWords prints generated words.
func renderWords(r *output.Renderer, words []string) {
	if len(words) == 0 {
		return
	}

	heading := "Randomly generated word"
	if len(words) != 1 {
		heading += "s"
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println("")
		r.Println(output.FormatHeader(2, heading))
		r.Println("")
		for _, w := range words {
			r.Printf("- %s\n", w)
		}
		return
	}

	styles := r.Styles()
	r.Println(styles.Header1.Render(heading + ":"))
	for _, w := range words {
		r.Printf(" %s %s\n", styles.Info.Render("-"), styles.Note.Render(w))
	}
}
