package scheme

import (
	"path/filepath"
	"strings"
)

// Minify serializes the scheme to compact source: class definitions, then
// rules, then optionally one segment of expected-valid and one of
// expected-invalid test words. Reasons and notes are not emitted; the output
// re-parses to a ruleset with identical validation results.
func (s *Scheme) Minify(withTests bool) string {
	var parts []string

	for _, c := range s.classes.All() {
		parts = append(parts, segment("$"+c.Name+"="+c.Value))
	}
	for _, r := range s.rules {
		parts = append(parts, segment(r.Sigil()+r.Source()))
	}

	if withTests {
		var pos, neg []string
		for _, t := range s.tests {
			switch {
			case t.IsNote():
			case t.Intent:
				pos = append(pos, t.Word)
			default:
				neg = append(neg, t.Word)
			}
		}
		parts = append(parts, segment("?+"+strings.Join(pos, " ")), segment("?!"+strings.Join(neg, " ")))
	}

	return strings.Join(parts, ";")
}

// segment wraps a statement holding a literal `&` in a continuation, where
// the inner `&` is kept as text and the following `;` closes it.
func segment(stmt string) string {
	if strings.ContainsRune(stmt, '&') {
		return "&" + stmt
	}
	return stmt
}

// MinFilename inserts ".min" before the last extension of a file name.
// Directories in the path are kept.
//
//	"x.phonet"     -> "x.min.phonet"
//	"phonet"       -> "min.phonet"
//	"a.b.phonet"   -> "a.b.min.phonet"
//	""             -> ""
func MinFilename(path string) string {
	dir, name := filepath.Split(path)
	if name == "" || strings.HasSuffix(name, ".") {
		return ""
	}

	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return dir + "min." + name
	}
	return dir + name[:idx] + ".min" + name[idx:]
}
