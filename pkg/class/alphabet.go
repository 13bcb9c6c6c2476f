package class

import (
	"strings"
	"unicode"
)

// syntaxChars are pattern metacharacters never taken as alphabet letters.
const syntaxChars = `\[]()|?*+.^${}:`

// Alphabet extracts the ordered set of distinct literal characters from a
// resolved class value.
//
// Metacharacters and whitespace are skipped, an escaped punctuation character
// is literal (escaped letters such as \d are skipped), and `x-y` ranges inside
// `[...]` are expanded. Group headers such as `(?=`, `(?<!` or `(?<name>` and
// `{m,n}` quantifiers contribute nothing.
func Alphabet(value string) []rune {
	src := []rune(value)
	seen := make(map[rune]bool)
	var out []rune

	add := func(r rune) {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}

	inSet := false
	for i := 0; i < len(src); i++ {
		ch := src[i]

		switch {
		case ch == '\\':
			if i+1 < len(src) {
				i++
				if !unicode.IsLetter(src[i]) && !unicode.IsDigit(src[i]) {
					add(src[i])
				}
			}
		case inSet && ch == ']':
			inSet = false
		case inSet && i+2 < len(src) && src[i+1] == '-' && src[i+2] != ']':
			lo, hi := ch, src[i+2]
			for r := lo; r <= hi; r++ {
				add(r)
			}
			i += 2
		case ch == '[':
			inSet = true
		case !inSet && ch == '(' && i+1 < len(src) && src[i+1] == '?':
			i = groupHeaderEnd(src, i)
		case !inSet && ch == '{':
			if end := indexFrom(src, '}', i+1); end > 0 {
				i = end
			}
		case strings.ContainsRune(syntaxChars, ch) || unicode.IsSpace(ch):
		default:
			add(ch)
		}
	}

	return out
}

// groupHeaderEnd returns the index of the last character of the group header
// opened by `(?` at i.
func groupHeaderEnd(src []rune, i int) int {
	j := i + 2
	if j < len(src) && src[j] == 'P' {
		j++
	}
	if j >= len(src) {
		return j - 1
	}

	switch src[j] {
	case '=', '!', ':', '>':
		return j
	case '<':
		if j+1 < len(src) && (src[j+1] == '=' || src[j+1] == '!') {
			return j + 1
		}
		if end := indexFrom(src, '>', j+1); end > 0 {
			return end
		}
	}
	return j - 1
}
