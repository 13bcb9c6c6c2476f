package main

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

const generatedHeader = "<!-- Code generated by scripts/gendocs. DO NOT EDIT. -->"

var whitespaceRun = regexp.MustCompile(`\s+`)

// MarkdownWriter accumulates a markdown document.
type MarkdownWriter struct {
	buf bytes.Buffer
}

// NewMarkdownWriter creates an empty writer.
func NewMarkdownWriter() *MarkdownWriter {
	return &MarkdownWriter{}
}

// Frontmatter writes a YAML frontmatter block.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	fmt.Fprintf(&w.buf, "---\ntitle: %s\ndescription: %s\n---\n\n", title, description)
}

// GeneratedMarker marks the document as generated.
func (w *MarkdownWriter) GeneratedMarker() {
	w.buf.WriteString(generatedHeader + "\n\n")
}

// Header writes a header of the given level.
func (w *MarkdownWriter) Header(level int, text string) {
	fmt.Fprintf(&w.buf, "%s %s\n\n", strings.Repeat("#", level), text)
}

// Paragraph writes a paragraph.
func (w *MarkdownWriter) Paragraph(text string) {
	w.buf.WriteString(strings.TrimSpace(text) + "\n\n")
}

// CodeBlock writes a fenced code block.
func (w *MarkdownWriter) CodeBlock(lang, code string) {
	fmt.Fprintf(&w.buf, "```%s\n%s\n```\n\n", lang, strings.TrimRight(code, "\n"))
}

// BulletList writes one bullet per item.
func (w *MarkdownWriter) BulletList(items []string) {
	for _, item := range items {
		fmt.Fprintf(&w.buf, "- %s\n", item)
	}
	w.buf.WriteString("\n")
}

// Table writes a pipe table. Cell pipes are escaped.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	writeRow := func(cells []string) {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		fmt.Fprintf(&w.buf, "| %s |\n", strings.Join(escaped, " | "))
	}

	writeRow(headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintf(&w.buf, "|%s|\n", strings.Join(sep, "|"))
	for _, row := range rows {
		writeRow(row)
	}
	w.buf.WriteString("\n")
}

// Bytes returns the document.
func (w *MarkdownWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// InlineCode wraps s in backticks.
func InlineCode(s string) string {
	return "`" + s + "`"
}

// cleanDescription collapses whitespace in help text.
func cleanDescription(s string) string {
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
	if len(s) > 200 {
		s = s[:197] + "..."
	}
	return s
}
