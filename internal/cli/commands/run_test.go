package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/phonet/internal/cli/testutil"
	"github.com/leapstack-labs/phonet/pkg/core"
	"github.com/leapstack-labs/phonet/pkg/scheme"
)

func TestRun_AllPass(t *testing.T) {
	testutil.SetupSchemeProject(t, map[string]string{"phonet": testutil.PassingScheme})
	t.Setenv("PHONET_OUTPUT", "text")

	out, err := executeCommand(t, NewRunCommand())
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "Valid")
	assert.Contains(t, out, "✔ pata")
	assert.Contains(t, out, "✗ pa7")
	assert.Equal(t, 3, testutil.CountLines(out, "✔"))
	assert.Equal(t, 3, testutil.CountLines(out, "✗"))
	assert.NotContains(t, out, "FAIL")
	assert.Contains(t, out, "All tests pass!")
}

func TestRun_Failures(t *testing.T) {
	dir := testutil.SetupSchemeProject(t, map[string]string{"fail.phonet": testutil.FailingScheme})
	t.Setenv("PHONET_OUTPUT", "text")

	out, err := executeCommand(t, NewRunCommand(), filepath.Join(dir, "fail.phonet"))
	require.ErrorIs(t, err, ErrTestsFailed)

	assert.Contains(t, out, "FAIL no reason given")
	assert.Contains(t, out, "FAIL No double vowels")
	assert.Contains(t, out, "2 tests failed!")
}

func TestRun_DisplayLevel(t *testing.T) {
	testutil.SetupSchemeProject(t, map[string]string{"fail.phonet": testutil.FailingScheme})
	t.Setenv("PHONET_OUTPUT", "text")

	out, err := executeCommand(t, NewRunCommand(), "fail.phonet", "-d", "f")
	require.ErrorIs(t, err, ErrTestsFailed)

	assert.NotContains(t, out, " bi ")
	assert.NotContains(t, out, "pass")
	assert.Equal(t, 2, testutil.CountLines(out, "FAIL"))
}

func TestRun_AdHocTests(t *testing.T) {
	testutil.SetupSchemeProject(t, map[string]string{"phonet": testutil.PassingScheme})
	t.Setenv("PHONET_OUTPUT", "text")

	out, err := executeCommand(t, NewRunCommand(), "-t", "kapa,papa")
	require.ErrorIs(t, err, ErrTestsFailed)

	assert.NotContains(t, out, "tukipa", "file tests are replaced")
	assert.Contains(t, out, "FAIL No repeated syllables")
	assert.Contains(t, out, "1 test failed!")
}

func TestRun_NoTests(t *testing.T) {
	testutil.SetupSchemeProject(t, map[string]string{"phonet": "+a\n"})
	t.Setenv("PHONET_OUTPUT", "text")

	out, err := executeCommand(t, NewRunCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "No tests ran.")
}

func TestRun_JSON(t *testing.T) {
	testutil.SetupSchemeProject(t, map[string]string{
		"a.phonet": testutil.PassingScheme,
		"b.phonet": testutil.FailingScheme,
	})
	t.Setenv("PHONET_OUTPUT", "json")

	out, err := executeCommand(t, NewRunCommand(), "a.phonet", "b.phonet")
	require.ErrorIs(t, err, ErrTestsFailed)

	var report RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 2)
	assert.Equal(t, "a.phonet", report.Files[0].File)
	assert.Equal(t, "b.phonet", report.Files[1].File)
	assert.Equal(t, 0, report.Files[0].Results.FailCount)
	assert.Equal(t, 2, report.Files[1].Results.FailCount)
	assert.Equal(t, 2, report.FailCount)
}

func TestRun_MultipleFilesOrdered(t *testing.T) {
	testutil.SetupSchemeProject(t, map[string]string{
		"one.phonet": testutil.PassingScheme,
		"two.phonet": testutil.PassingScheme,
	})
	t.Setenv("PHONET_OUTPUT", "markdown")

	out, err := executeCommand(t, NewRunCommand(), "two.phonet", "one.phonet")
	require.NoError(t, err)

	two := strings.Index(out, "# two.phonet")
	one := strings.Index(out, "# one.phonet")
	require.GreaterOrEqual(t, two, 0)
	require.GreaterOrEqual(t, one, 0)
	assert.Less(t, two, one)
	assert.Equal(t, 2, strings.Count(out, "**All tests pass!**"))
}

func TestRun_Minify(t *testing.T) {
	dir := testutil.SetupSchemeProject(t, map[string]string{"lang.phonet": testutil.PassingScheme})
	t.Setenv("PHONET_OUTPUT", "text")

	_, err := executeCommand(t, NewRunCommand(), "lang.phonet", "-m", "--with-tests")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "lang.min.phonet"))
	require.NoError(t, err)

	mini, err := scheme.Parse(string(data))
	require.NoError(t, err)
	res := mini.Run()
	assert.Equal(t, 6, res.TestCount())
	assert.True(t, res.AllPassed())
}

func TestRun_Generate(t *testing.T) {
	testutil.SetupSchemeProject(t, map[string]string{"phonet": testutil.PassingScheme})
	t.Setenv("PHONET_OUTPUT", "json")

	out, err := executeCommand(t, NewRunCommand(), "--generate=3", "--gmin", "4", "--gmax", "5")
	require.NoError(t, err)

	var report RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 1)
	words := report.Files[0].Generated
	require.Len(t, words, 3)
	for _, w := range words {
		assert.Len(t, w, 4)
	}
}

func TestRun_GenerateErrorKeepsReport(t *testing.T) {
	testutil.SetupSchemeProject(t, map[string]string{"phonet": "+^a+$\n?+aa\n?!b\n"})
	t.Setenv("PHONET_OUTPUT", "text")

	out, err := executeCommand(t, NewRunCommand(), "-g")
	require.ErrorIs(t, err, core.ErrMissingAnyClass)
	assert.Contains(t, err.Error(), "could not generate words for phonet")

	assert.Contains(t, out, "✔ aa")
	assert.Contains(t, out, "✗ b")
	assert.Contains(t, out, "All tests pass!")
	assert.NotContains(t, out, "Randomly generated")
}

func TestRun_GenerateErrorInJSON(t *testing.T) {
	testutil.SetupSchemeProject(t, map[string]string{
		"a.phonet": "+^a+$\n?+aa\n",
		"b.phonet": testutil.PassingScheme,
	})
	t.Setenv("PHONET_OUTPUT", "json")

	out, err := executeCommand(t, NewRunCommand(), "a.phonet", "b.phonet", "--generate=2")
	require.ErrorIs(t, err, core.ErrMissingAnyClass)

	var report RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 2)
	assert.Equal(t, 1, report.Files[0].Results.TestCount())
	assert.Contains(t, report.Files[0].GenerateError, "no 'any' class")
	assert.Empty(t, report.Files[1].GenerateError)
	assert.Len(t, report.Files[1].Generated, 2)
}

func TestRun_MissingFile(t *testing.T) {
	testutil.SetupSchemeProject(t, nil)

	_, err := executeCommand(t, NewRunCommand(), "nope.phonet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scheme")
}

func TestRun_ParseError(t *testing.T) {
	testutil.SetupSchemeProject(t, map[string]string{"bad.phonet": "$C=a\n+<D>\n"})

	_, err := executeCommand(t, NewRunCommand(), "bad.phonet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.phonet")
	assert.Contains(t, err.Error(), "class not found, with name `D`, at line 2")
}
