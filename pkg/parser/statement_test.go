package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phonet/pkg/core"
)

func parseOne(t *testing.T, text string) Stmt {
	t.Helper()
	st, err := ParseStatement(Statement{Text: text, Line: 5})
	require.NoError(t, err)
	return st
}

func TestParseStatement_Class(t *testing.T) {
	st := parseOne(t, "$ Vowel = a | e | i")
	class, ok := st.(*ClassStmt)
	require.True(t, ok, "expected *ClassStmt, got %T", st)

	assert.Equal(t, "Vowel", class.Name)
	assert.Equal(t, "a|e|i", class.Value)
	assert.Equal(t, 5, class.SourceLine())

	// Only the first `=` separates name and value.
	class = parseOne(t, "$X=(?=a)b").(*ClassStmt)
	assert.Equal(t, "(?=a)b", class.Value)
}

func TestParseStatement_ClassErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind error
	}{
		{"no name", "$=abc", core.ErrNoClassName},
		{"blank name", "$   = abc", core.ErrNoClassName},
		{"invalid name", "$a-b=abc", core.ErrInvalidClassName},
		{"name with space", "$a b=abc", core.ErrInvalidClassName},
		{"missing equals", "$abc", core.ErrNoClassValue},
		{"empty value", "$abc =  ", core.ErrNoClassValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStatement(Statement{Text: tt.text, Line: 9})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)

			var perr *core.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, 9, perr.Line)
		})
	}
}

func TestParseStatement_Rule(t *testing.T) {
	rule := parseOne(t, "+ ^ (<C> <V>)+ $").(*RuleStmt)
	assert.True(t, rule.Intent)
	assert.Equal(t, "^(<C><V>)+$", rule.Pattern)

	rule = parseOne(t, "!a\ta").(*RuleStmt)
	assert.False(t, rule.Intent)
	assert.Equal(t, "aa", rule.Pattern)
}

func TestParseStatement_Reason(t *testing.T) {
	reason := parseOne(t, "@ Must not repeat vowels ").(*ReasonStmt)
	assert.Equal(t, "Must not repeat vowels", reason.Text)
	assert.False(t, reason.Note)

	reason = parseOne(t, "@ * Shown as a note").(*ReasonStmt)
	assert.Equal(t, "Shown as a note", reason.Text)
	assert.True(t, reason.Note)
}

func TestParseStatement_NoteAndComment(t *testing.T) {
	note := parseOne(t, "*  Consonant clusters ").(*NoteStmt)
	assert.Equal(t, "Consonant clusters", note.Text)

	_, ok := parseOne(t, "# whatever").(*CommentStmt)
	assert.True(t, ok)
}

func TestParseStatement_Test(t *testing.T) {
	test := parseOne(t, "? + pata  taki\tkupi").(*TestStmt)
	assert.Equal(t, []core.TestDefinition{
		core.NewTest(true, "pata"),
		core.NewTest(true, "taki"),
		core.NewTest(true, "kupi"),
	}, test.Tests)

	test = parseOne(t, "?!pa7").(*TestStmt)
	assert.Equal(t, []core.TestDefinition{core.NewTest(false, "pa7")}, test.Tests)

	test = parseOne(t, "?").(*TestStmt)
	assert.Empty(t, test.Tests)

	test = parseOne(t, "?+").(*TestStmt)
	assert.Empty(t, test.Tests)

	_, err := ParseStatement(Statement{Text: "?~abc", Line: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownIntent)
	var perr *core.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, '~', perr.Char)
}

func TestParseStatement_InlineIntentMarkers(t *testing.T) {
	test := parseOne(t, "?+ ka ?! kka?+ta tta").(*TestStmt)
	assert.Equal(t, []core.TestDefinition{
		core.NewTest(true, "ka"),
		core.NewTest(false, "kka"),
		core.NewTest(true, "ta"),
		core.NewTest(true, "tta"),
	}, test.Tests)
}

func TestParseStatement_UnknownSigil(t *testing.T) {
	_, err := ParseStatement(Statement{Text: "~@@", Line: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownSigil)

	_, err = ParseStatement(Statement{Text: ")", Line: 1})
	assert.ErrorIs(t, err, core.ErrUnknownSigil)
}

func TestParseAll(t *testing.T) {
	stmts, err := ParseAll("$C=p|t|k;$V=a|i|u;+^(<C><V>)+$;?+pata?!pa7")
	require.NoError(t, err)
	require.Len(t, stmts, 4)

	assert.IsType(t, &ClassStmt{}, stmts[0])
	assert.IsType(t, &ClassStmt{}, stmts[1])
	assert.IsType(t, &RuleStmt{}, stmts[2])

	test := stmts[3].(*TestStmt)
	assert.Equal(t, []core.TestDefinition{
		core.NewTest(true, "pata"),
		core.NewTest(false, "pa7"),
	}, test.Tests)

	_, err = ParseAll("+a\n%b")
	var perr *core.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
}
