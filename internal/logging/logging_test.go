package logging

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogFilePath(t *testing.T) {
	sessionStart := time.Date(2026, 2, 12, 21, 38, 36, 0, time.UTC)

	tests := []struct {
		name    string
		logsDir string
		want    string
	}{
		{
			name:    "basic path",
			logsDir: "logs",
			want:    filepath.Join("logs", "hotmech.20260212_213836.log"),
		},
		{
			name:    "relative path with dot",
			logsDir: "./logs",
			want:    filepath.Join(".", "logs", "hotmech.20260212_213836.log"),
		},
		{
			name:    "absolute path",
			logsDir: filepath.Join("/var", "log", "hotmech"),
			want:    filepath.Join("/var", "log", "hotmech", "hotmech.20260212_213836.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LogFilePath(tt.logsDir, "hotmech", sessionStart))
		})
	}
}

func TestNewZerolog(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, "WARN", "influx")

	log.Info().Msg("hidden")
	log.Warn().Str("bucket", "matches").Msg("backup engaged")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "backup engaged")
	assert.Contains(t, out, "component=influx")
	assert.Contains(t, out, "bucket=matches")
}

func TestNewZerolog_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, "chatty", "database")

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewGelfHandler(t *testing.T) {
	// UDP dial does not need a listener.
	h, err := NewGelfHandler("127.0.0.1:12201", "info")
	if assert.NoError(t, err) {
		assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	}

	_, err = NewGelfHandler("not an address", "info")
	assert.Error(t, err)
}
