package class

import (
	"slices"
	"strings"

	"github.com/leapstack-labs/phonet/pkg/core"
)

// resolver expands class references. During Freeze it works on the mutable
// class set and records results; afterwards it only reads the frozen table.
type resolver struct {
	classes map[string]*Class
	frozen  map[string]Class
	done    map[string]bool
	stack   []string
}

// resolve returns the fully expanded value of the named class.
// line is the line of the reference, reported if the class is missing.
func (r *resolver) resolve(name string, line int) (string, error) {
	if r.frozen != nil {
		c, ok := r.frozen[name]
		if !ok {
			return "", &core.Error{Kind: core.ErrClassNotFound, Name: name, Line: line}
		}
		return c.Resolved, nil
	}

	c, ok := r.classes[name]
	if !ok {
		return "", &core.Error{Kind: core.ErrClassNotFound, Name: name, Line: line}
	}
	if r.done[name] {
		return c.Resolved, nil
	}

	if idx := slices.Index(r.stack, name); idx >= 0 {
		chain := append(slices.Clone(r.stack[idx:]), name)
		return "", &core.Error{Kind: core.ErrClassCycle, Name: strings.Join(chain, " -> "), Line: line}
	}

	r.stack = append(r.stack, name)
	resolved, err := r.expand(c.Value, c.Line)
	r.stack = r.stack[:len(r.stack)-1]
	if err != nil {
		return "", err
	}

	if r.done == nil {
		r.done = make(map[string]bool)
	}
	c.Resolved = resolved
	r.done[name] = true
	return resolved, nil
}

// expand walks pattern once, splicing `(?:value)` for every `<Name>`.
func (r *resolver) expand(pattern string, line int) (string, error) {
	src := []rune(pattern)

	var out, name strings.Builder
	building := false
	inSet := false

	for i := 0; i < len(src); i++ {
		ch := src[i]

		if building {
			switch ch {
			case '<':
				return "", &core.Error{Kind: core.ErrClassUnexpectedOpen, Pattern: pattern, Line: line}
			case '>':
				value, err := r.resolve(name.String(), line)
				if err != nil {
					return "", err
				}
				out.WriteString("(?:")
				out.WriteString(value)
				out.WriteString(")")
				name.Reset()
				building = false
			default:
				name.WriteRune(ch)
			}
			continue
		}

		switch {
		case ch == '\\':
			if end := namedBackref(src, i); end > 0 {
				out.WriteString(string(src[i : end+1]))
				i = end
				continue
			}
			out.WriteRune(ch)
			if i+1 < len(src) {
				i++
				out.WriteRune(src[i])
			}

		case inSet:
			out.WriteRune(ch)
			if ch == ']' {
				inSet = false
			}

		case ch == '[':
			inSet = true
			out.WriteRune(ch)
			// A leading `]`, after an optional `^`, is literal.
			if i+1 < len(src) && src[i+1] == '^' {
				i++
				out.WriteRune(src[i])
			}
			if i+1 < len(src) && src[i+1] == ']' {
				i++
				out.WriteRune(src[i])
			}

		case ch == '<' && groupPrefix(src, i, "(?") && i+1 < len(src) && (src[i+1] == '=' || src[i+1] == '!'):
			// Lookbehind.
			out.WriteRune(ch)

		case ch == '<' && (groupPrefix(src, i, "(?") || groupPrefix(src, i, "(?P")):
			// Named group definition, copied through its closing bracket.
			end := indexFrom(src, '>', i+1)
			if end < 0 {
				end = len(src) - 1
			}
			out.WriteString(string(src[i : end+1]))
			i = end

		case ch == '<':
			building = true

		case ch == '>' && groupPrefix(src, i, "(?"):
			// Atomic group.
			out.WriteRune(ch)

		case ch == '>':
			return "", &core.Error{Kind: core.ErrClassUnexpectedClose, Pattern: pattern, Line: line}

		default:
			out.WriteRune(ch)
		}
	}

	if building {
		return "", &core.Error{Kind: core.ErrClassUnexpectedEnd, Pattern: pattern, Line: line}
	}
	return out.String(), nil
}

// namedBackref returns the index of the closing `>` of a `\k<name>` starting at i, or -1.
func namedBackref(src []rune, i int) int {
	if i+2 >= len(src) || src[i+1] != 'k' || src[i+2] != '<' {
		return -1
	}
	return indexFrom(src, '>', i+3)
}

func precededBy(src []rune, i int, prefix string) bool {
	p := []rune(prefix)
	if i < len(p) {
		return false
	}
	return slices.Equal(src[i-len(p):i], p)
}

// groupPrefix reports whether src[:i] ends with prefix and the prefix's `(`
// is not escaped.
func groupPrefix(src []rune, i int, prefix string) bool {
	if !precededBy(src, i, prefix) {
		return false
	}
	backslashes := 0
	for j := i - len([]rune(prefix)) - 1; j >= 0 && src[j] == '\\'; j-- {
		backslashes++
	}
	return backslashes%2 == 0
}

func indexFrom(src []rune, ch rune, from int) int {
	for i := from; i < len(src); i++ {
		if src[i] == ch {
			return i
		}
	}
	return -1
}
