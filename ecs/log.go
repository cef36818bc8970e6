package ecs

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record. Enabled returns
// false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger shared by ecs and the packages built on
// it (assets, systems, render, engine). By default nothing is logged.
// Pass nil to restore the silent default.
//
// Levels in use:
//   - [slog.LevelDebug]: dropped commands, failed timestamp queries, cache pruning
//   - [slog.LevelInfo]: lifecycle events
//   - [slog.LevelWarn]: recoverable backend failures
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current shared logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
