package touchviz

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/touchviz/render"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while touch events are being handled.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for touchviz and its sub-packages.
// By default, touchviz produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent default.
//
// Log levels used by touchviz:
//   - [slog.LevelDebug]: per-frame diagnostics (damage counts, draws)
//   - [slog.LevelInfo]: lifecycle events (texture uploaded, overlay closed)
//   - [slog.LevelWarn]: dropped events (unknown or duplicate contacts, failed draws)
//
// Example:
//
//	touchviz.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	render.SetLogger(l)
}

// Logger returns the current logger used by touchviz.
// Host integrations call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
