package rule

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phonet/pkg/class"
	"github.com/leapstack-labs/phonet/pkg/core"
)

func classes(t *testing.T) *class.Table {
	t.Helper()
	b := class.NewBuilder()
	require.NoError(t, b.Define("C", "p|t|k", 1))
	require.NoError(t, b.Define("V", "a|i|u", 2))
	table, err := b.Freeze()
	require.NoError(t, err)
	return table
}

func mustCompile(t *testing.T, table *class.Table, raws ...Raw) []*Rule {
	t.Helper()
	rules, err := CompileAll(raws, table)
	require.NoError(t, err)
	return rules
}

func TestCompile(t *testing.T) {
	table := classes(t)

	r, err := Compile(Raw{Intent: true, Pattern: "^(<C><V>)+$", ReasonRef: 3, Line: 7}, table)
	require.NoError(t, err)

	assert.True(t, r.Intent())
	assert.Equal(t, "+", r.Sigil())
	assert.Equal(t, "^(<C><V>)+$", r.Source())
	assert.Equal(t, "^((?:p|t|k)(?:a|i|u))+$", r.Expanded())
	assert.Equal(t, 7, r.Line())

	ref, ok := r.ReasonRef()
	assert.True(t, ok)
	assert.Equal(t, 3, ref)

	r, err = Compile(Raw{Intent: false, Pattern: "aa", ReasonRef: NoReason}, table)
	require.NoError(t, err)
	assert.Equal(t, "!", r.Sigil())
	_, ok = r.ReasonRef()
	assert.False(t, ok)
}

func TestCompile_Errors(t *testing.T) {
	table := classes(t)

	_, err := Compile(Raw{Intent: true, Pattern: "(", Line: 4}, table)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrPatternCompile)

	var perr *core.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 4, perr.Line)
	assert.Equal(t, "(", perr.Pattern)
	assert.NotNil(t, perr.Unwrap(), "engine diagnostic should be preserved")

	_, err = Compile(Raw{Intent: true, Pattern: "<X>", Line: 5}, table)
	assert.ErrorIs(t, err, core.ErrClassNotFound)

	_, err = CompileAll([]Raw{{Pattern: "a"}, {Pattern: "[", Line: 9}}, table)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 9, perr.Line)
}

func TestValidate(t *testing.T) {
	table := classes(t)
	rules := mustCompile(t, table,
		Raw{Intent: true, Pattern: "^(<C><V>)+$", ReasonRef: 0, Line: 1},
		Raw{Intent: false, Pattern: "(.)\\1", ReasonRef: NoReason, Line: 2},
	)

	tests := []struct {
		word      string
		wantValid bool
		wantRef   int
		wantHas   bool
	}{
		{"pata", true, 0, false},
		{"kupiti", true, 0, false},
		{"pa7", false, 0, true},
		{"", false, 0, true},
		{"papa", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			v := Validate(tt.word, rules)
			assert.Equal(t, tt.wantValid, v.IsValid())

			ref, has := v.ReasonRef()
			assert.Equal(t, tt.wantHas, has)
			if has {
				assert.Equal(t, tt.wantRef, ref)
			}
		})
	}
}

func TestValidate_BackReferenceAcrossClasses(t *testing.T) {
	table := classes(t)
	// Splicing classes must not shift group numbers: \1 still refers to (<V>).
	rules := mustCompile(t, table, Raw{Intent: false, Pattern: "(<V>)<C>\\1", ReasonRef: NoReason})

	assert.False(t, Validate("apa", rules).IsValid())
	assert.True(t, Validate("api", rules).IsValid())
}

func TestValidate_Lookaround(t *testing.T) {
	table := classes(t)
	rules := mustCompile(t, table,
		Raw{Intent: false, Pattern: "(?<=<V>)<V>", ReasonRef: NoReason},
		Raw{Intent: false, Pattern: "<C>(?!<V>)", ReasonRef: NoReason},
	)

	assert.True(t, Validate("pataki", rules).IsValid())
	assert.False(t, Validate("paita", rules).IsValid(), "vowel after vowel")
	assert.False(t, Validate("pat", rules).IsValid(), "consonant not followed by vowel")
}

func TestValidate_FirstFailureWins(t *testing.T) {
	table := classes(t)
	rules := mustCompile(t, table,
		Raw{Intent: false, Pattern: "aa", ReasonRef: 0},
		Raw{Intent: false, Pattern: "a", ReasonRef: 1},
	)

	ref, ok := Validate("baa", rules).ReasonRef()
	require.True(t, ok)
	assert.Equal(t, 0, ref)

	// Reversed order reports the other reason.
	reversed := []*Rule{rules[1], rules[0]}
	ref, ok = Validate("baa", reversed).ReasonRef()
	require.True(t, ok)
	assert.Equal(t, 1, ref)

	assert.Same(t, rules[1], FirstFailure("ba", rules))
	assert.Nil(t, FirstFailure("b", rules))
}

func TestValidate_NoRules(t *testing.T) {
	assert.True(t, Validate("anything", nil).IsValid())
}

func TestValidate_Concurrent(t *testing.T) {
	table := classes(t)
	rules := mustCompile(t, table, Raw{Intent: true, Pattern: "^(<C><V>)+$", ReasonRef: NoReason})

	words := []string{"pata", "pa7", "kiku", "tt"}
	want := make([]bool, len(words))
	for i, w := range words {
		want[i] = Validate(w, rules).IsValid()
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				for j, w := range words {
					assert.Equal(t, want[j], Validate(w, rules).IsValid())
				}
			}
		}()
	}
	wg.Wait()
}
