package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds. Every *Error carries exactly one of these as its Kind,
// so callers can match with errors.Is(err, core.ErrClassNotFound).
var (
	ErrUnknownIntent        = errors.New("unknown intent identifier")
	ErrUnknownSigil         = errors.New("unknown line operator")
	ErrNoClassName          = errors.New("no class name given")
	ErrInvalidClassName     = errors.New("invalid class name")
	ErrClassAlreadyExists   = errors.New("class already exists")
	ErrNoClassValue         = errors.New("no class value given")
	ErrClassNotFound        = errors.New("class not found")
	ErrClassUnexpectedOpen  = errors.New("unexpected class name opening bracket")
	ErrClassUnexpectedClose = errors.New("unexpected class name closing bracket")
	ErrClassUnexpectedEnd   = errors.New("class name not closed before end of pattern")
	ErrClassCycle           = errors.New("class reference cycle")
	ErrPatternCompile       = errors.New("failed to parse pattern")
	ErrMissingAnyClass      = errors.New("no 'any' class was defined")
	ErrEmptyAlphabet        = errors.New("'any' class has no characters")
	ErrInvalidLengthRange   = errors.New("invalid word length range")
)

// Error is a parse, compile or generation failure with its source location.
//
// Fields other than Kind and Line are only set when relevant to the kind.
type Error struct {
	Kind    error
	Line    int    // 1-based source line, 0 when not tied to a line
	Char    rune   // offending character (unknown intent/sigil)
	Name    string // class name
	Pattern string // offending pattern text
	Err     error  // underlying engine diagnostic
}

func (e *Error) Error() string {
	var b strings.Builder

	switch e.Kind {
	case ErrUnknownIntent:
		fmt.Fprintf(&b, "unknown intent identifier `%c`, must be either `+` or `!`", e.Char)
	case ErrUnknownSigil:
		fmt.Fprintf(&b, "unknown line operator `%c`", e.Char)
	case ErrInvalidClassName:
		fmt.Fprintf(&b, "invalid class name `%s`, must only contain characters from [a-zA-Z0-9_]", e.Name)
	case ErrClassAlreadyExists:
		fmt.Fprintf(&b, "class already exists with name `%s`", e.Name)
	case ErrNoClassValue:
		fmt.Fprintf(&b, "no class value given, with name `%s`", e.Name)
	case ErrClassNotFound:
		fmt.Fprintf(&b, "class not found, with name `%s`", e.Name)
	case ErrClassUnexpectedOpen:
		fmt.Fprintf(&b, "unexpected class name opening bracket (`<`), in pattern `%s`", e.Pattern)
	case ErrClassUnexpectedClose:
		fmt.Fprintf(&b, "unexpected class name closing bracket (`>`), in pattern `%s`", e.Pattern)
	case ErrClassUnexpectedEnd:
		fmt.Fprintf(&b, "class name was not closed with bracket (`>`) before end of pattern, in pattern `%s`", e.Pattern)
	case ErrClassCycle:
		fmt.Fprintf(&b, "class reference cycle `%s`", e.Name)
	case ErrPatternCompile:
		fmt.Fprintf(&b, "failed to parse pattern `%s`: %v", e.Pattern, e.Err)
	case ErrMissingAnyClass:
		b.WriteString("no 'any' class was defined, define with `$_ = ...`")
	case nil:
		b.WriteString("unknown error")
	default:
		b.WriteString(e.Kind.Error())
	}

	if e.Line > 0 {
		fmt.Fprintf(&b, ", at line %d", e.Line)
	}
	return b.String()
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// Unwrap returns the underlying engine diagnostic, if any.
func (e *Error) Unwrap() error {
	return e.Err
}
