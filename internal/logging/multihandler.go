package logging

import (
	"context"
	"errors"
	"log/slog"
	"math"
)

// RemoteFloor is the lowest level forwarded to extra sinks such as Graylog. Per-card
// debug records from running matches stay in the local log.
const RemoteFloor = slog.LevelInfo

const noFloor = slog.Level(math.MinInt)

type route struct {
	handler slog.Handler
	floor   slog.Level
}

// MultiHandler fans out log records to multiple handlers. Each handler may carry a
// floor below which it is skipped, whatever its own level.
type MultiHandler struct {
	routes []route
}

// NewMultiHandler creates a handler that writes to all provided handlers. Nil handlers
// are skipped.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	m := &MultiHandler{routes: make([]route, 0, len(handlers))}
	for _, h := range handlers {
		m.Route(h, noFloor)
	}
	return m
}

// Route adds h, receiving only records at floor or above. Call it before the handler
// is in use.
func (m *MultiHandler) Route(h slog.Handler, floor slog.Level) {
	if h == nil {
		return
	}
	m.routes = append(m.routes, route{handler: h, floor: floor})
}

func (r route) enabled(ctx context.Context, level slog.Level) bool {
	return level >= r.floor && r.handler.Enabled(ctx, level)
}

// Enabled returns true if any route accepts the level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, r := range m.routes {
		if r.enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle sends the record to every accepting route. A failing handler does not stop
// the others; all failures are joined into the returned error.
func (m *MultiHandler) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, r := range m.routes {
		if !r.enabled(ctx, rec.Level) {
			continue
		}
		if err := r.handler.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	routes := make([]route, len(m.routes))
	for i, r := range m.routes {
		routes[i] = route{handler: fn(r.handler), floor: r.floor}
	}
	return &MultiHandler{routes: routes}
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return m
	}
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}
