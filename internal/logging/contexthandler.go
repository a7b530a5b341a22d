package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// ContextProvider returns attributes to stamp on every record, such as the running batch ID.
type ContextProvider func() []slog.Attr

// ContextHandler wraps another handler and injects dynamic context attributes.
type ContextHandler struct {
	inner    slog.Handler
	provider ContextProvider
}

func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{
		inner:    inner,
		provider: provider,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		r.AddAttrs(h.provider()...)
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		inner:    h.inner.WithAttrs(attrs),
		provider: h.provider,
	}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ContextHandler{
		inner:    h.inner.WithGroup(name),
		provider: h.provider,
	}
}

// BatchContext is a ContextProvider source holding the ID of the batch being run.
// The zero value stamps nothing.
type BatchContext struct {
	id atomic.Pointer[string]
}

func (b *BatchContext) Set(id string) { b.id.Store(&id) }

// Provider returns a ContextProvider that adds batch_id while a batch is set.
func (b *BatchContext) Provider() ContextProvider {
	return func() []slog.Attr {
		if id := b.id.Load(); id != nil && *id != "" {
			return []slog.Attr{slog.String("batch_id", *id)}
		}
		return nil
	}
}
