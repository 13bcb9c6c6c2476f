package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/leapstack-labs/phonet/pkg/core"
)

// Statement sigils.
const (
	SigilComment = '#'
	SigilClass   = '$'
	SigilMatch   = '+'
	SigilNoMatch = '!'
	SigilReason  = '@'
	SigilNote    = '*'
	SigilTest    = '?'
)

var classNamePattern = regexp.MustCompile(`^\w+$`)

// Stmt is a parsed statement. It is one of:
// *ClassStmt, *RuleStmt, *ReasonStmt, *NoteStmt, *TestStmt, *CommentStmt.
type Stmt interface {
	// SourceLine returns the 1-based line the statement came from.
	SourceLine() int
	stmtNode()
}

// ClassStmt defines a named class: `$name = value`.
// Value has all whitespace removed, like rule patterns.
type ClassStmt struct {
	Name  string
	Value string
	Line  int
}

// RuleStmt defines a rule: `+pattern` or `!pattern`.
// Pattern has all whitespace removed.
type RuleStmt struct {
	Intent  bool
	Pattern string
	Line    int
}

// ReasonStmt defines a reason for the following rules: `@text`.
// Note is set for `@*text`, which is also shown as a note.
type ReasonStmt struct {
	Text string
	Note bool
	Line int
}

// NoteStmt is a free-standing display note: `*text`.
type NoteStmt struct {
	Text string
	Line int
}

// TestStmt declares one or more tests: `?+words...` or `?!words...`.
// A `?+` or `?!` marker inside the word list switches the intent of the
// words that follow it, so `?+pata?!pa7` declares two tests.
type TestStmt struct {
	Tests []core.TestDefinition
	Line  int
}

// CommentStmt is a `#` statement; it carries no semantics.
type CommentStmt struct {
	Line int
}

func (s *ClassStmt) SourceLine() int   { return s.Line }
func (s *RuleStmt) SourceLine() int    { return s.Line }
func (s *ReasonStmt) SourceLine() int  { return s.Line }
func (s *NoteStmt) SourceLine() int    { return s.Line }
func (s *TestStmt) SourceLine() int    { return s.Line }
func (s *CommentStmt) SourceLine() int { return s.Line }

func (*ClassStmt) stmtNode()   {}
func (*RuleStmt) stmtNode()    {}
func (*ReasonStmt) stmtNode()  {}
func (*NoteStmt) stmtNode()    {}
func (*TestStmt) stmtNode()    {}
func (*CommentStmt) stmtNode() {}

// ParseStatement dispatches on the statement sigil.
func ParseStatement(st Statement) (Stmt, error) {
	sigil, size := utf8.DecodeRuneInString(st.Text)
	rest := st.Text[size:]

	switch sigil {
	case SigilComment:
		return &CommentStmt{Line: st.Line}, nil
	case SigilClass:
		return parseClass(rest, st.Line)
	case SigilMatch, SigilNoMatch:
		return &RuleStmt{
			Intent:  sigil == SigilMatch,
			Pattern: StripSpace(rest),
			Line:    st.Line,
		}, nil
	case SigilReason:
		return parseReason(rest, st.Line), nil
	case SigilNote:
		return &NoteStmt{Text: strings.TrimSpace(rest), Line: st.Line}, nil
	case SigilTest:
		return parseTest(rest, st.Line)
	default:
		return nil, &core.Error{Kind: core.ErrUnknownSigil, Char: sigil, Line: st.Line}
	}
}

// ParseAll splits src and parses every statement, stopping at the first error.
func ParseAll(src string) ([]Stmt, error) {
	stmts := Split(src)
	out := make([]Stmt, 0, len(stmts))
	for _, st := range stmts {
		parsed, err := ParseStatement(st)
		if err != nil {
			return nil, err
		}
		out = append(out, parsed)
	}
	return out, nil
}

func parseClass(rest string, line int) (*ClassStmt, error) {
	name, value, hasValue := strings.Cut(rest, "=")
	name = strings.TrimSpace(name)
	value = StripSpace(value)

	if name == "" {
		return nil, &core.Error{Kind: core.ErrNoClassName, Line: line}
	}
	if !classNamePattern.MatchString(name) {
		return nil, &core.Error{Kind: core.ErrInvalidClassName, Name: name, Line: line}
	}
	if !hasValue || value == "" {
		return nil, &core.Error{Kind: core.ErrNoClassValue, Name: name, Line: line}
	}

	return &ClassStmt{Name: name, Value: value, Line: line}, nil
}

func parseReason(rest string, line int) *ReasonStmt {
	rest = strings.TrimLeft(rest, " \t")
	note := false
	if after, ok := strings.CutPrefix(rest, string(SigilNote)); ok {
		note = true
		rest = after
	}
	return &ReasonStmt{Text: strings.TrimSpace(rest), Note: note, Line: line}
}

func parseTest(rest string, line int) (*TestStmt, error) {
	rest = strings.TrimLeft(rest, " \t")
	if rest == "" {
		// Bare `?` declares nothing.
		return &TestStmt{Line: line}, nil
	}

	intent, size := utf8.DecodeRuneInString(rest)
	switch intent {
	case SigilMatch, SigilNoMatch:
	default:
		return nil, &core.Error{Kind: core.ErrUnknownIntent, Char: intent, Line: line}
	}

	stmt := &TestStmt{Line: line}
	current := intent == SigilMatch
	for _, field := range strings.Fields(rest[size:]) {
		for {
			idx := intentMarker(field)
			if idx < 0 {
				if field != "" {
					stmt.Tests = append(stmt.Tests, core.NewTest(current, field))
				}
				break
			}
			if idx > 0 {
				stmt.Tests = append(stmt.Tests, core.NewTest(current, field[:idx]))
			}
			current = field[idx+1] == SigilMatch
			field = field[idx+2:]
		}
	}
	return stmt, nil
}

// intentMarker returns the index of the first `?+` or `?!` in s, or -1.
func intentMarker(s string) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == SigilTest && (s[i+1] == SigilMatch || s[i+1] == SigilNoMatch) {
			return i
		}
	}
	return -1
}

// StripSpace removes every whitespace character from s.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
