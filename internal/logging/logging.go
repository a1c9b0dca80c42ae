// Package logging provides the module-wide *slog.Logger. Export runs in a
// best-effort mode where per-field failures are logged rather than surfaced,
// so diagnostics need a sink that library consumers control.
package logging

import (
	"io"
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// SetLogger installs the logger used by the export engine and editor store.
// Pass nil to discard all output (the default).
//
// Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger.Store(l)
}

// Logger returns the installed logger, or a discard logger if none was set.
//
// Safe for concurrent use.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
		logger.Store(l)
	}
	return l
}
