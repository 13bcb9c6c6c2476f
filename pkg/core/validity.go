package core

// Validity is the verdict of validating one word against a compiled ruleset.
//
// The zero value is Valid.
type Validity struct {
	invalid   bool
	reasonRef int // index into the scheme's reasons, -1 when none
}

// Valid returns a passing verdict.
func Valid() Validity {
	return Validity{reasonRef: -1}
}

// Invalid returns a failing verdict with an optional reason reference.
// A negative ref means no reason was attached to the failing rule.
func Invalid(reasonRef int) Validity {
	if reasonRef < 0 {
		reasonRef = -1
	}
	return Validity{invalid: true, reasonRef: reasonRef}
}

// IsValid returns true if the word passed every rule.
func (v Validity) IsValid() bool {
	return !v.invalid
}

// ReasonRef returns the reason index of the failing rule and whether one was given.
func (v Validity) ReasonRef() (int, bool) {
	if !v.invalid || v.reasonRef < 0 {
		return 0, false
	}
	return v.reasonRef, true
}

// String returns "valid" or "invalid".
func (v Validity) String() string {
	if v.invalid {
		return "invalid"
	}
	return "valid"
}
