// Package scheme parses phonotactic schemes and executes them.
//
// A Scheme is built once by Parse and is read-only afterwards, except that the
// test list may be replaced wholesale with SetTests before running. Classes,
// rules and reasons are immutable, so Validate may be called concurrently.
//
// Basic flow:
//   - parse source text (`Parse`)
//   - optionally replace tests with ad hoc words (`SetTests`, `TestsFromWords`)
//   - run declared tests (`Run`)
//   - serialize back to compact source (`Minify`)
//   - generate random valid words (`Generate` / `GenerateContext`)
package scheme

import (
	"golang.org/x/text/unicode/norm"

	"github.com/leapstack-labs/phonet/pkg/class"
	"github.com/leapstack-labs/phonet/pkg/core"
	"github.com/leapstack-labs/phonet/pkg/parser"
	"github.com/leapstack-labs/phonet/pkg/rule"
)

// Scheme is a parsed and compiled ruleset with its tests.
type Scheme struct {
	classes *class.Table
	rules   []*rule.Rule
	reasons []string
	tests   []core.TestDefinition
}

// Parse parses and compiles scheme source. Any error aborts construction.
//
// Source is normalized to NFC first, so precomposed and decomposed
// diacritics are treated alike.
func Parse(src string) (*Scheme, error) {
	stmts, err := parser.ParseAll(norm.NFC.String(src))
	if err != nil {
		return nil, err
	}

	var (
		builder   = class.NewBuilder()
		raws      []rule.Raw
		reasons   []string
		tests     []core.TestDefinition
		reasonRef = rule.NoReason
	)

	for _, stmt := range stmts {
		switch st := stmt.(type) {
		case *parser.ClassStmt:
			if err := builder.Define(st.Name, st.Value, st.Line); err != nil {
				return nil, err
			}

		case *parser.RuleStmt:
			raws = append(raws, rule.Raw{
				Intent:    st.Intent,
				Pattern:   st.Pattern,
				ReasonRef: reasonRef,
				Line:      st.Line,
			})

		case *parser.ReasonStmt:
			reasons = append(reasons, st.Text)
			reasonRef = len(reasons) - 1
			if st.Note {
				tests = append(tests, core.NewNote(st.Text))
			}

		case *parser.NoteStmt:
			if st.Text != "" {
				tests = append(tests, core.NewNote(st.Text))
			}

		case *parser.TestStmt:
			tests = append(tests, st.Tests...)

		case *parser.CommentStmt:
		}
	}

	classes, err := builder.Freeze()
	if err != nil {
		return nil, err
	}

	rules, err := rule.CompileAll(raws, classes)
	if err != nil {
		return nil, err
	}

	return &Scheme{
		classes: classes,
		rules:   rules,
		reasons: reasons,
		tests:   tests,
	}, nil
}

// Classes returns the resolved class table.
func (s *Scheme) Classes() *class.Table { return s.classes }

// Rules returns the compiled rules in declaration order.
func (s *Scheme) Rules() []*rule.Rule { return s.rules }

// Reasons returns the reasons in declaration order.
func (s *Scheme) Reasons() []string { return s.reasons }

// Tests returns the current tests and notes.
func (s *Scheme) Tests() []core.TestDefinition { return s.tests }

// SetTests replaces the tests wholesale. It must not race with Run.
func (s *Scheme) SetTests(tests []core.TestDefinition) {
	s.tests = tests
}

// Reason returns the text of a reason reference, or "" if out of range.
func (s *Scheme) Reason(ref int) string {
	if ref < 0 || ref >= len(s.reasons) {
		return ""
	}
	return s.reasons[ref]
}

// Validate checks one word against the rules.
func (s *Scheme) Validate(word string) core.Validity {
	return rule.Validate(word, s.rules)
}

// TestsFromWords builds tests expecting each word to be valid.
// Words are NFC-normalized and empty words are skipped.
func TestsFromWords(words []string) []core.TestDefinition {
	tests := make([]core.TestDefinition, 0, len(words))
	for _, w := range words {
		w = norm.NFC.String(w)
		if w == "" {
			continue
		}
		tests = append(tests, core.NewTest(true, w))
	}
	return tests
}
