package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWriter(&buf, Config{Level: "warn", Format: "json"})
	require.NoError(t, err)

	l.Info("dropped")
	l.Warn("kept", "dataset", "V1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "V1", rec["dataset"])
}

func TestNewWriterUnknownFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Config{Format: "xml"})
	assert.Error(t, err)
}

func TestNewFileOutput(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "run.log")
	l, closer, err := New(Config{Output: p})
	require.NoError(t, err)
	l.Info("started", "n", 3)
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=started")
	assert.Contains(t, string(b), "n=3")
}
