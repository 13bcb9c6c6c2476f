// Package testutil provides logging helpers for tests.
package testutil

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// NewTestLogger returns a debug-level logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// LogCapture records log output for assertions.
type LogCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// NewCaptureLogger returns a debug-level logger and the capture it writes to.
func NewCaptureLogger() (*slog.Logger, *LogCapture) {
	c := &LogCapture{}
	return slog.New(slog.NewTextHandler(c, &slog.HandlerOptions{Level: slog.LevelDebug})), c
}

func (c *LogCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// Records returns the logged lines that contain msg=<message>.
func (c *LogCapture) Records(message string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	needle := "msg=" + message
	if strings.ContainsAny(message, " =\"") {
		needle = `msg="` + message + `"`
	}

	var out []string
	for _, line := range strings.Split(c.buf.String(), "\n") {
		if strings.Contains(line, needle) {
			out = append(out, line)
		}
	}
	return out
}
