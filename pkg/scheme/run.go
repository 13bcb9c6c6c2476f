package scheme

import (
	"unicode/utf8"

	"github.com/leapstack-labs/phonet/pkg/core"
)

// defaultWordWidth is the alignment width used when there are no tests.
const defaultWordWidth = 10

// Results holds the outcome of running a scheme's tests.
type Results struct {
	Items     []core.TestResult `json:"items" yaml:"items"`
	FailCount int               `json:"fail_count" yaml:"fail_count"`
}

// Run validates every declared test and collects the results.
func (s *Scheme) Run() *Results {
	res := &Results{Items: make([]core.TestResult, 0, len(s.tests))}

	for _, def := range s.tests {
		if def.IsNote() {
			res.Items = append(res.Items, core.TestResult{Kind: core.ItemNote, Note: def.Note})
			continue
		}

		validity := s.Validate(def.Word)
		pass := validity.IsValid() == def.Intent

		item := core.TestResult{
			Kind:   core.ItemTest,
			Intent: def.Intent,
			Word:   def.Word,
			Pass:   pass,
		}
		if !pass {
			item.Reason = core.FailReasonFrom(validity, s.reasons)
			res.FailCount++
		}
		res.Items = append(res.Items, item)
	}

	return res
}

// TestCount returns the number of tests, excluding notes.
func (r *Results) TestCount() int {
	n := 0
	for _, item := range r.Items {
		if !item.IsNote() {
			n++
		}
	}
	return n
}

// PassCount returns the number of passed tests.
func (r *Results) PassCount() int {
	return r.TestCount() - r.FailCount
}

// AllPassed reports whether no test failed.
func (r *Results) AllPassed() bool {
	return r.FailCount == 0
}

// Filter returns the items shown at the given display level, in order.
func (r *Results) Filter(level core.DisplayLevel) []core.TestResult {
	var out []core.TestResult
	for _, item := range r.Items {
		if item.IsNote() && level.ShowsNotes() || !item.IsNote() && level.ShowsTest(item.Pass) {
			out = append(out, item)
		}
	}
	return out
}

// MaxWordLen returns the longest visible test word in runes, for column
// alignment. Hidden tests count as 0; it returns 10 when there are no tests.
func (r *Results) MaxWordLen(level core.DisplayLevel) int {
	longest := 0
	hasTests := false
	for _, item := range r.Items {
		if item.IsNote() {
			continue
		}
		hasTests = true
		if level.ShowsTest(item.Pass) {
			longest = max(longest, utf8.RuneCountInString(item.Word))
		}
	}
	if !hasTests {
		return defaultWordWidth
	}
	return longest
}
