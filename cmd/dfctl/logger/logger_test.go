package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"off", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		level, ok, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, level, tt.in)
	}

	_, _, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestInit(t *testing.T) {
	t.Cleanup(Disable)

	var out bytes.Buffer
	Init(Options{Level: slog.LevelInfo, JSON: true, W: &out})
	Debug("hidden")
	Error("shown", "path", "a.map")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), `"msg":"shown"`)
	assert.Contains(t, out.String(), `"path":"a.map"`)

	out.Reset()
	Disable()
	Error("gone")
	assert.Empty(t, out.String())
}
