package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
}

// NewZerolog builds the logger handed to the database and influx managers. It writes
// uncoloured console lines to w and accepts the same level names as Setup.
func NewZerolog(w io.Writer, level, component string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("component", component).Logger()
}
