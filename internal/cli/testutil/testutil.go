// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/leapstack-labs/phonet/internal/cli/output"
)

// PassingScheme is a scheme whose tests all pass.
const PassingScheme = `# CV syllables
$_ = [ptkaiu]
$C = [ptk]
$V = [aiu]

@ Only CV syllables
+ ^ (<C><V>)+ $

@ No repeated syllables
! (..)\1

* Valid
?+ pata kapi tukipa

* Invalid
?! pa7 ata papa
`

// FailingScheme is a scheme with exactly two failing tests.
const FailingScheme = `$V = [aeiou]
! aa
@ No double vowels
! ee
?+ aa ee bi
`

// SetupSchemeProject creates a temporary directory containing the given
// files and changes into it for the rest of the test.
// It returns the directory.
func SetupSchemeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		WriteFile(t, tmpDir, name, content)
	}
	t.Chdir(tmpDir)
	return tmpDir
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode without colors.
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, false)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// SyncBuffer is a bytes.Buffer safe for concurrent writers, for commands
// that print from background goroutines.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns the buffered output.
func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// CountLines returns how many lines of s contain substr.
func CountLines(s, substr string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}
