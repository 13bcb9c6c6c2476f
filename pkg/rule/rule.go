// Package rule compiles intent-tagged patterns and validates words against them.
//
// Patterns are compiled with github.com/dlclark/regexp2, a backtracking engine
// supporting lookaround and back-references. Compiled rules are immutable and
// safe to share between goroutines.
package rule

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/leapstack-labs/phonet/pkg/class"
	"github.com/leapstack-labs/phonet/pkg/core"
)

// NoReason marks a rule without an attached reason.
const NoReason = -1

// Raw is an uncompiled rule as written in the scheme.
type Raw struct {
	// Intent true means a word must match Pattern to stay valid.
	Intent bool
	// Pattern is the whitespace-stripped source pattern, class references included.
	Pattern string
	// ReasonRef indexes the scheme's reasons, NoReason when none applies.
	ReasonRef int
	Line      int
}

// Rule is a compiled rule.
type Rule struct {
	intent    bool
	source    string
	expanded  string
	reasonRef int
	line      int
	re        *regexp2.Regexp
}

// Compile substitutes classes into the raw pattern and compiles it.
func Compile(raw Raw, classes *class.Table) (*Rule, error) {
	expanded, err := classes.Substitute(raw.Pattern, raw.Line)
	if err != nil {
		return nil, err
	}

	re, err := regexp2.Compile(expanded, regexp2.None)
	if err != nil {
		return nil, &core.Error{
			Kind:    core.ErrPatternCompile,
			Pattern: raw.Pattern,
			Line:    raw.Line,
			Err:     err,
		}
	}

	ref := raw.ReasonRef
	if ref < 0 {
		ref = NoReason
	}

	return &Rule{
		intent:    raw.Intent,
		source:    raw.Pattern,
		expanded:  expanded,
		reasonRef: ref,
		line:      raw.Line,
		re:        re,
	}, nil
}

// CompileAll compiles rules in order, stopping at the first failure.
func CompileAll(raws []Raw, classes *class.Table) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(raws))
	for _, raw := range raws {
		r, err := Compile(raw, classes)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Intent reports whether words must match (true) or must not match (false).
func (r *Rule) Intent() bool { return r.intent }

// Source returns the pattern as written, without whitespace.
func (r *Rule) Source() string { return r.source }

// Expanded returns the pattern after class substitution.
func (r *Rule) Expanded() string { return r.expanded }

// Line returns the source line of the rule.
func (r *Rule) Line() int { return r.line }

// ReasonRef returns the attached reason index and whether one is attached.
func (r *Rule) ReasonRef() (int, bool) {
	return r.reasonRef, r.reasonRef != NoReason
}

// Sigil returns the source sigil for the rule's intent.
func (r *Rule) Sigil() string {
	if r.intent {
		return "+"
	}
	return "!"
}

// Matches reports whether the pattern matches anywhere in word.
//
// Rules are compiled without a match timeout, so the engine cannot fail here;
// an error would be a defect and panics.
func (r *Rule) Matches(word string) bool {
	ok, err := r.re.MatchString(word)
	if err != nil {
		panic(fmt.Sprintf("phonet: pattern engine failed on compiled rule at line %d: %v", r.line, err))
	}
	return ok
}

// Passes reports whether word satisfies this rule's intent.
func (r *Rule) Passes(word string) bool {
	return r.Matches(word) == r.intent
}
