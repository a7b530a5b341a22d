package logging

import (
	"fmt"
	"log/slog"

	"github.com/Graylog2/go-gelf/gelf"
)

// NewGelfHandler returns a JSON handler that ships each record to a Graylog GELF UDP input.
func NewGelfHandler(addr, level string) (slog.Handler, error) {
	w, err := gelf.NewWriter(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create gelf writer for %s: %w", addr, err)
	}
	w.Facility = "hotmech"
	return slog.NewJSONHandler(w, HandlerOptions(level)), nil
}
