// Package logging holds the slog logger shared by the renderer packages.
//
// Nothing is logged by default. The demo installs a text handler on stderr;
// embedders call SetLogger with their own.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger replaces the shared logger. nil restores the silent default.
//
// Levels in use:
//   - Debug: buffer capacities, object handles
//   - Info: renderer lifecycle
//   - Warn: missing uniforms
//   - Error: GL errors, right before the panic they cause
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the shared logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog.Level.
// Anything else yields slog.LevelInfo and false.
func ParseLevel(s string) (slog.Level, bool) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, false
	}
	return lvl, true
}
