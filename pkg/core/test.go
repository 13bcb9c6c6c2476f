package core

// =============================================================================
// Test definitions
// =============================================================================

// ItemKind distinguishes notes from tests in test lists and results.
type ItemKind string

// Item kinds.
const (
	ItemNote ItemKind = "note"
	ItemTest ItemKind = "test"
)

// TestDefinition is either a display-only note or a word with an expected verdict.
//
// Intent true means the word is expected to be valid.
type TestDefinition struct {
	Kind   ItemKind `json:"kind" yaml:"kind"`
	Note   string   `json:"note,omitempty" yaml:"note,omitempty"`
	Intent bool     `json:"intent" yaml:"intent"`
	Word   string   `json:"word,omitempty" yaml:"word,omitempty"`
}

// NewNote creates a note definition.
func NewNote(text string) TestDefinition {
	return TestDefinition{Kind: ItemNote, Note: text}
}

// NewTest creates a test definition.
func NewTest(intent bool, word string) TestDefinition {
	return TestDefinition{Kind: ItemTest, Intent: intent, Word: word}
}

// IsNote returns true for note definitions.
func (d TestDefinition) IsNote() bool {
	return d.Kind == ItemNote
}

// =============================================================================
// Fail reasons
// =============================================================================

// FailKind classifies why a test failed.
type FailKind string

// Fail kinds.
const (
	FailNone            FailKind = ""
	FailShouldBeInvalid FailKind = "should_be_invalid"
	FailNoReasonGiven   FailKind = "no_reason_given"
	FailCustom          FailKind = "custom"
)

// Fixed failure messages.
const (
	MessageShouldBeInvalid = "should have been invalid"
	MessageNoReasonGiven   = "no reason given"
)

// FailReason is the human-facing explanation of a failed test.
// The zero value means the test passed.
type FailReason struct {
	Kind FailKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Text string   `json:"text,omitempty" yaml:"text,omitempty"`
}

// FailReasonFrom derives the failure reason for a failed test from its verdict.
func FailReasonFrom(v Validity, reasons []string) FailReason {
	if v.IsValid() {
		return FailReason{Kind: FailShouldBeInvalid, Text: MessageShouldBeInvalid}
	}

	ref, ok := v.ReasonRef()
	if !ok || ref >= len(reasons) {
		return FailReason{Kind: FailNoReasonGiven, Text: MessageNoReasonGiven}
	}
	return FailReason{Kind: FailCustom, Text: reasons[ref]}
}

// Passed returns true if no failure is recorded.
func (r FailReason) Passed() bool {
	return r.Kind == FailNone
}

// String returns the failure message, or "" for a passed test.
func (r FailReason) String() string {
	return r.Text
}

// =============================================================================
// Test results
// =============================================================================

// TestResult is the outcome of one test definition.
// Notes are passed through with only Kind and Note set.
type TestResult struct {
	Kind   ItemKind   `json:"kind" yaml:"kind"`
	Note   string     `json:"note,omitempty" yaml:"note,omitempty"`
	Intent bool       `json:"intent" yaml:"intent"`
	Word   string     `json:"word,omitempty" yaml:"word,omitempty"`
	Pass   bool       `json:"pass" yaml:"pass"`
	Reason FailReason `json:"reason,omitzero" yaml:"reason,omitempty"`
}

// IsNote returns true for passed-through notes.
func (r TestResult) IsNote() bool {
	return r.Kind == ItemNote
}
