package parser

import "strings"

// Statement is one logical statement with its 1-based source line.
type Statement struct {
	Text string
	Line int
}

// Split breaks scheme source into trimmed, non-empty statements.
//
// Rules:
//   - every physical line ends a statement, as does `;`
//   - lines whose trimmed text starts with `#` are dropped entirely
//   - `&` opens a continuation: newlines are ignored until the next `;`,
//     and the statement keeps the line number where `&` appeared
//   - a second `&` inside an open continuation is literal text
func Split(src string) []Statement {
	var (
		out      []Statement
		buf      strings.Builder
		cont     bool
		contLine int
	)

	flush := func(line int) {
		text := strings.TrimSpace(buf.String())
		buf.Reset()
		if text != "" {
			out = append(out, Statement{Text: text, Line: line})
		}
	}

	for i, raw := range strings.Split(src, "\n") {
		lineNum := i + 1
		raw = strings.TrimRight(raw, "\r")

		if strings.HasPrefix(strings.TrimSpace(raw), "#") {
			continue
		}

		for _, ch := range raw {
			switch {
			case ch == ';' && cont:
				cont = false
				flush(contLine)
			case ch == ';':
				flush(lineNum)
			case ch == '&' && !cont:
				cont = true
				contLine = lineNum
			default:
				buf.WriteRune(ch)
			}
		}

		if !cont {
			flush(lineNum)
		}
	}

	if cont {
		flush(contLine)
	}

	return out
}
