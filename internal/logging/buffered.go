package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// BufferedHandler is a slog.Handler that accumulates formatted records in
// memory. Tests use it to assert that degraded-mode events (font fallback,
// skipped fields) were logged without being surfaced as errors.
type BufferedHandler struct {
	buf   *recordBuffer
	attrs []slog.Attr
}

type recordBuffer struct {
	mu    sync.Mutex
	lines []string
}

// NewBufferedHandler returns an empty capture handler.
func NewBufferedHandler() *BufferedHandler {
	return &BufferedHandler{buf: &recordBuffer{}}
}

func (h *BufferedHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *BufferedHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Level.String())
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	for _, a := range h.attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
	}
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteByte(' ')
		sb.WriteString(a.String())
		return true
	})

	h.buf.mu.Lock()
	h.buf.lines = append(h.buf.lines, sb.String())
	h.buf.mu.Unlock()
	return nil
}

// WithAttrs returns a handler sharing the same capture buffer.
func (h *BufferedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &BufferedHandler{
		buf:   h.buf,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *BufferedHandler) WithGroup(string) slog.Handler { return h }

// Lines returns a copy of the captured records.
func (h *BufferedHandler) Lines() []string {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	out := make([]string, len(h.buf.lines))
	copy(out, h.buf.lines)
	return out
}

// Contains reports whether any captured record contains substr.
func (h *BufferedHandler) Contains(substr string) bool {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	for _, l := range h.buf.lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

// Reset discards all captured records.
func (h *BufferedHandler) Reset() {
	h.buf.mu.Lock()
	h.buf.lines = nil
	h.buf.mu.Unlock()
}
