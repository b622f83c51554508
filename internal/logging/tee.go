package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// TeeHandler sends records to a primary handler and copies them to sinks
// such as a log file. A sink that fails to write is reported once through
// the OnSinkError callback and skipped from then on. Only primary errors are
// returned from Handle.
type TeeHandler struct {
	primary slog.Handler
	sinks   []teeSink
	onError func(error)
}

type teeSink struct {
	handler slog.Handler
	failed  *atomic.Bool
}

// NewTeeHandler returns a TeeHandler writing to primary and every sink.
func NewTeeHandler(primary slog.Handler, sinks ...slog.Handler) *TeeHandler {
	h := &TeeHandler{primary: primary, sinks: make([]teeSink, len(sinks))}
	for i, s := range sinks {
		h.sinks[i] = teeSink{handler: s, failed: &atomic.Bool{}}
	}
	return h
}

// OnSinkError sets the callback invoked the first time each sink fails.
func (h *TeeHandler) OnSinkError(fn func(error)) *TeeHandler {
	h.onError = fn
	return h
}

// Enabled reports whether the primary or any live sink handles level.
func (h *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.primary.Enabled(ctx, level) {
		return true
	}
	for _, s := range h.sinks {
		if !s.failed.Load() && s.handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle writes r to the primary handler and to every live sink.
func (h *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.primary.Enabled(ctx, r.Level) {
		err = h.primary.Handle(ctx, r.Clone())
	}
	for _, s := range h.sinks {
		if s.failed.Load() || !s.handler.Enabled(ctx, r.Level) {
			continue
		}
		if serr := s.handler.Handle(ctx, r.Clone()); serr != nil && s.failed.CompareAndSwap(false, true) {
			if h.onError != nil {
				h.onError(serr)
			}
		}
	}
	return err
}

// WithAttrs applies attrs to the primary and every sink. Failure state is
// shared with the receiver.
func (h *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(x slog.Handler) slog.Handler { return x.WithAttrs(attrs) })
}

// WithGroup applies name to the primary and every sink.
func (h *TeeHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(x slog.Handler) slog.Handler { return x.WithGroup(name) })
}

func (h *TeeHandler) derive(fn func(slog.Handler) slog.Handler) *TeeHandler {
	out := &TeeHandler{primary: fn(h.primary), sinks: make([]teeSink, len(h.sinks)), onError: h.onError}
	for i, s := range h.sinks {
		out.sinks[i] = teeSink{handler: fn(s.handler), failed: s.failed}
	}
	return out
}
