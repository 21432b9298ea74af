// Package logging wires slog handlers that understand request-scoped
// attributes carried in context.
package logging

import (
	"context"
	"fmt"
	"log/slog"
)

type contextKey string

const slogAttrs contextKey = "slogAttrs"

// ContextHandler decorates log records with the [slog.Attr] values stored in
// the context with [WithAttrs].
type ContextHandler struct {
	handler slog.Handler
}

// NewContextHandler constructs a ContextHandler wrapping the given handler.
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{handler: h}
}

// Enabled reports whether the handler handles records at the given level.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle adds the context-carried attributes to the record before delegating.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogAttrs).([]slog.Attr); ok {
		for _, attr := range attrs {
			r.AddAttrs(attr)
		}
	}

	if err := h.handler.Handle(ctx, r); err != nil {
		return fmt.Errorf("handle log record: %w", err)
	}
	return nil
}

// WithAttrs returns a new ContextHandler whose underlying handler carries the attrs.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup returns a new ContextHandler whose underlying handler carries the group.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}

// WithAttrs stores [slog.Attr] values in the context so that [ContextHandler]
// attaches them to every log record emitted with that context.
func WithAttrs(ctx context.Context, attr ...slog.Attr) context.Context {
	if existing, ok := ctx.Value(slogAttrs).([]slog.Attr); ok {
		existing = append(existing, attr...)
		return context.WithValue(ctx, slogAttrs, existing)
	}
	return context.WithValue(ctx, slogAttrs, attr)
}
