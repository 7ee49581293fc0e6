package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreDefault resets slog's default logger after a test that calls Setup.
func restoreDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetupJSON(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	logger, err := Setup(LoggerConfig{Level: "warn", Writer: &buf})
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "info should be filtered at warn level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "test", entry["component"])

	assert.Same(t, logger, slog.Default(), "Setup should install the default logger")
}

func TestSetupText(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	logger, err := Setup(LoggerConfig{Level: "debug", Format: "text", Writer: &buf})
	require.NoError(t, err)

	logger.Debug("details", "chunk", 3)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "chunk=3")
}

func TestSetupInvalidLevelFallsBack(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	logger, err := Setup(LoggerConfig{Level: "chatty", Writer: &buf})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "invalid log level configured")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestSetupInvalidFormat(t *testing.T) {
	restoreDefault(t)

	logger, err := Setup(LoggerConfig{Format: "xml"})
	assert.Error(t, err)
	assert.Nil(t, logger)
}

func TestContextLogger(t *testing.T) {
	logger, buf := NewBufferLogger()

	ctx := WithContext(context.Background(), logger)
	FromContext(ctx).Info("from context", "trace_id", "abc")

	entries, err := buf.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0]["trace_id"])

	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	stored, _ := NewBufferLogger()
	fallback, _ := NewBufferLogger()

	ctx := WithContext(context.Background(), stored)
	assert.Same(t, stored, FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
}
