package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/phonet/internal/cli/config"
)

// executeCommand runs cmd with args against a fresh configuration and
// returns everything it printed.
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestNewRunCommand(t *testing.T) {
	cmd := NewRunCommand()

	assert.Equal(t, "run [files...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"tests", "display", "minify", "with-tests", "generate", "gmin", "gmax"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}

	assert.Equal(t, "t", cmd.Flags().Lookup("tests").Shorthand)
	assert.Equal(t, "d", cmd.Flags().Lookup("display").Shorthand)
	assert.Equal(t, "1", cmd.Flags().Lookup("generate").NoOptDefVal)

	// Verify alias exists
	assert.Equal(t, []string{"test"}, cmd.Aliases)
}

func TestNewMinifyCommand(t *testing.T) {
	cmd := NewMinifyCommand()

	assert.Equal(t, "minify [file]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	for _, flag := range []string{"with-tests", "out"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewGenerateCommand(t *testing.T) {
	cmd := NewGenerateCommand()

	assert.Equal(t, "generate [file]", cmd.Use)
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	for _, flag := range []string{"count", "min", "max", "timeout"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Equal(t, "n", cmd.Flags().Lookup("count").Shorthand)
}

func TestNewInspectCommand(t *testing.T) {
	cmd := NewInspectCommand()

	assert.Equal(t, "inspect [file]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
}

func TestNewReplCommand(t *testing.T) {
	cmd := NewReplCommand()

	assert.Equal(t, "repl [file]", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should not be empty")
}

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()

	assert.Equal(t, "watch [file]", cmd.Use)
	for _, flag := range []string{"tests", "display", "debounce"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}
