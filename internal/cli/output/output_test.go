package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{"auto on tty", ModeAuto, true, ModeText},
		{"auto off tty", ModeAuto, false, ModeMarkdown},
		{"empty is auto", "", false, ModeMarkdown},
		{"explicit text", ModeText, false, ModeText},
		{"explicit json", ModeJSON, true, ModeJSON},
		{"explicit yaml", ModeYAML, true, ModeYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestModeValid(t *testing.T) {
	for _, name := range ModeNames() {
		assert.True(t, Mode(name).Valid(), name)
	}
	assert.True(t, Mode("").Valid())
	assert.False(t, Mode("xml").Valid())
}

func TestRendererNoColorOffTTY(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeText)

	r.Header(1, "Results")
	r.Success("ok")
	r.Error("bad")

	assert.Equal(t, "Results\nok\nbad\n", out.String())
}

func TestJSON(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeJSON)

	handled, err := r.Structured(map[string]int{"fail_count": 2})
	require.NoError(t, err)
	assert.True(t, handled)
	assert.JSONEq(t, `{"fail_count": 2}`, out.String())
}

func TestYAML(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, false, ModeYAML)

	handled, err := r.Structured(map[string]int{"fail_count": 2})
	require.NoError(t, err)
	assert.True(t, handled)
	assert.YAMLEq(t, "fail_count: 2\n", out.String())
}

func TestStructuredSkipsText(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRendererWithTTY(out, &bytes.Buffer{}, true, ModeText)

	handled, err := r.Structured(struct{}{})
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Empty(t, out.String())
}

func TestFormatHeader(t *testing.T) {
	assert.Equal(t, "# Classes", FormatHeader(1, "Classes"))
	assert.Equal(t, "## Rules", FormatHeader(2, "Rules"))
	assert.Equal(t, "# X", FormatHeader(0, "X"))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `a\|e\|i`, EscapeMarkdown("a|e|i"))
	assert.Equal(t, `<\_>`, EscapeMarkdown("<_>"))
}
