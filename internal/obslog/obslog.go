// Package obslog provides the structured logging setup cmd/langbreakdown
// uses for its own warnings and hands to the pkg/langident Resolver, built
// on log/slog the way the teacher wires its TracingHandler — minus the
// OpenTelemetry trace-context injection, which has no home here since
// there is no long-running service to export spans from.
package obslog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

const attrComponent = "component"

// ComponentHandler is an slog.Handler that pre-attaches a component name to
// every record, the way the teacher's TracingHandler pre-attaches service
// metadata so it survives WithGroup calls.
type ComponentHandler struct {
	inner slog.Handler
}

// NewComponentHandler wraps inner, tagging every record with component.
func NewComponentHandler(inner slog.Handler, component string) *ComponentHandler {
	return &ComponentHandler{
		inner: inner.WithAttrs([]slog.Attr{slog.String(attrComponent, component)}),
	}
}

// Enabled delegates to the inner handler.
func (h *ComponentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle delegates to the inner handler.
func (h *ComponentHandler) Handle(ctx context.Context, record slog.Record) error {
	if err := h.inner.Handle(ctx, record); err != nil {
		return fmt.Errorf("obslog: %w", err)
	}

	return nil
}

// WithAttrs returns a new ComponentHandler with additional attributes on the
// inner handler.
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ComponentHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a new ComponentHandler with a group prefix on the inner
// handler.
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{inner: h.inner.WithGroup(name)}
}

// New builds a component-tagged logger writing text-formatted records to w
// at the given level. verbose lowers the level to Debug regardless of the
// level argument, matching the CLI's --verbose flag.
func New(w io.Writer, component string, level slog.Level, verbose bool) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})

	return slog.New(NewComponentHandler(handler, component))
}
