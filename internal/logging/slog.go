package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// SlogManager owns the process logger: a text handler on the log file (or stdout when
// there is none), any extra sinks, and the batch context stamped on every record.
type SlogManager struct {
	logger *slog.Logger
	file   io.Writer
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// HandlerOptions are shared by every text and JSON handler the package builds:
// the given level and UTC RFC3339 timestamps.
func HandlerOptions(level string) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}
}

// Setup builds the logger. Records go to file, or to stdout when file is nil, and to
// every extra handler from RemoteFloor up. A non-nil provider appends its attributes to each record.
func (m *SlogManager) Setup(file io.Writer, level string, provider ContextProvider, extra ...slog.Handler) {
	opts := HandlerOptions(level)

	out := io.Writer(os.Stdout)
	if file != nil {
		out = file
	}
	multi := NewMultiHandler(slog.NewTextHandler(out, opts))
	for _, e := range extra {
		multi.Route(e, RemoteFloor)
	}

	var h slog.Handler = multi
	if provider != nil {
		h = NewContextHandler(h, provider)
	}

	m.file = file
	m.logger = slog.New(h)
	m.logger.Info("Logging initialized", "level", level)
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Setup not called yet
		return slog.Default()
	}
	return m.logger
}

// Flush syncs the log file when the writer supports it, as *os.File does.
func (m *SlogManager) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s, ok := m.file.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

// WriteLog writes a log entry with the specified function name, data, and level.
func (m *SlogManager) WriteLog(functionName, data, level string) {
	if m.logger == nil {
		return
	}
	m.logger.Log(context.Background(), parseLevel(level), data, "function", functionName)
}
