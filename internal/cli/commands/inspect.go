package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/phonet/internal/cli/output"
	"github.com/leapstack-labs/phonet/pkg/class"
	"github.com/leapstack-labs/phonet/pkg/scheme"
)

// ClassInfo describes a class for structured output.
type ClassInfo struct {
	Name     string `json:"name" yaml:"name"`
	Value    string `json:"value" yaml:"value"`
	Resolved string `json:"resolved" yaml:"resolved"`
	Line     int    `json:"line" yaml:"line"`
}

// RuleInfo describes a rule for structured output.
type RuleInfo struct {
	Line     int    `json:"line" yaml:"line"`
	Intent   bool   `json:"intent" yaml:"intent"`
	Pattern  string `json:"pattern" yaml:"pattern"`
	Expanded string `json:"expanded" yaml:"expanded"`
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// InspectReport is the structured output of the inspect command.
type InspectReport struct {
	File    string      `json:"file" yaml:"file"`
	Classes []ClassInfo `json:"classes" yaml:"classes"`
	Rules   []RuleInfo  `json:"rules" yaml:"rules"`
	Reasons []string    `json:"reasons" yaml:"reasons"`
	Tests   int         `json:"tests" yaml:"tests"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the classes, rules and reasons of a scheme",
		Long: `Parse a scheme and list what it defines.

Classes are shown with their raw and fully resolved values, rules with the
pattern as written, the expanded pattern and the reason attached to them.`,
		Example: `  # Tables of classes and rules
  phonet inspect lang.phonet

  # Machine-readable
  phonet inspect lang.phonet -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args)
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
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

	report := buildInspectReport(file, s)
	handled, err := r.Structured(report)
	if handled || err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		inspectMarkdown(r, report)
		return nil
	}

	r.Header(1, file)
	r.Println("")
	r.Header(2, "Classes")
	renderClassTable(r.Writer(), report.Classes)
	r.Println("")
	r.Header(2, "Rules")
	renderRuleTable(r.Writer(), report.Rules)
	r.Println("")
	r.Muted(fmt.Sprintf("%d reasons, %d tests", len(report.Reasons), report.Tests))
	return nil
}

func buildInspectReport(file string, s *scheme.Scheme) InspectReport {
	report := InspectReport{
		File:    file,
		Classes: classInfos(s.Classes()),
		Rules:   make([]RuleInfo, 0, len(s.Rules())),
		Reasons: s.Reasons(),
	}
	if report.Reasons == nil {
		report.Reasons = []string{}
	}

	for _, rl := range s.Rules() {
		info := RuleInfo{
			Line:     rl.Line(),
			Intent:   rl.Intent(),
			Pattern:  rl.Source(),
			Expanded: rl.Expanded(),
		}
		if ref, ok := rl.ReasonRef(); ok {
			info.Reason = s.Reason(ref)
		}
		report.Rules = append(report.Rules, info)
	}

	for _, t := range s.Tests() {
		if !t.IsNote() {
			report.Tests++
		}
	}
	return report
}

func classInfos(t *class.Table) []ClassInfo {
	all := t.All()
	infos := make([]ClassInfo, 0, len(all))
	for _, c := range all {
		infos = append(infos, ClassInfo{Name: c.Name, Value: c.Value, Resolved: c.Resolved, Line: c.Line})
	}
	return infos
}

func renderClassTable(w io.Writer, classes []ClassInfo) {
	if len(classes) == 0 {
		_, _ = fmt.Fprintln(w, "(no classes)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Line", "Name", "Value", "Resolved"})
	for _, c := range classes {
		t.AppendRow(table.Row{c.Line, "<" + c.Name + ">", c.Value, c.Resolved})
	}
	t.Render()
}

func renderRuleTable(w io.Writer, rules []RuleInfo) {
	if len(rules) == 0 {
		_, _ = fmt.Fprintln(w, "(no rules)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Line", "Intent", "Pattern", "Reason"})
	for _, rl := range rules {
		t.AppendRow(table.Row{rl.Line, intentSigil(rl.Intent), rl.Pattern, rl.Reason})
	}
	t.Render()
}

func intentSigil(intent bool) string {
	if intent {
		return "+"
	}
	return "!"
}

func inspectMarkdown(r *output.Renderer, report InspectReport) {
	r.Println(output.FormatHeader(1, report.File))
	r.Println("")

	r.Println(output.FormatHeader(2, "Classes"))
	r.Println("")
	r.Println("| Line | Name | Value | Resolved |")
	r.Println("|------|------|-------|----------|")
	for _, c := range report.Classes {
		r.Printf("| %d | %s | %s | %s |\n", c.Line, output.EscapeMarkdown(c.Name),
			output.EscapeMarkdown(c.Value), output.EscapeMarkdown(c.Resolved))
	}
	r.Println("")

	r.Println(output.FormatHeader(2, "Rules"))
	r.Println("")
	r.Println("| Line | Intent | Pattern | Reason |")
	r.Println("|------|--------|---------|--------|")
	for _, rl := range report.Rules {
		r.Printf("| %d | %s | %s | %s |\n", rl.Line, intentSigil(rl.Intent),
			output.EscapeMarkdown(rl.Pattern), output.EscapeMarkdown(rl.Reason))
	}
	r.Println("")
	r.Printf("%d reasons, %d tests\n", len(report.Reasons), report.Tests)
}
