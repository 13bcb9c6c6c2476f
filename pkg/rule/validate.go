package rule

import "github.com/leapstack-labs/phonet/pkg/core"

// Validate evaluates rules in declaration order. The first rule whose match
// outcome disagrees with its intent makes the word invalid, carrying that
// rule's reason; later rules are not evaluated.
func Validate(word string, rules []*Rule) core.Validity {
	for _, r := range rules {
		if !r.Passes(word) {
			return core.Invalid(r.reasonRef)
		}
	}
	return core.Valid()
}

// FirstFailure returns the first rule word fails, or nil if it passes all of them.
func FirstFailure(word string, rules []*Rule) *Rule {
	for _, r := range rules {
		if !r.Passes(word) {
			return r
		}
	}
	return nil
}
