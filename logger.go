package vlbimodel

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so SetLogger may
// race with logging from evaluation goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for vlbimodel and all its subpackages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: cache construction (plan, grid shape, frequency count)
//   - [slog.LevelWarn]: NumericalWarning diagnostics
//
// Example:
//
//	vlbimodel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Warn logs w at warning level and returns it unchanged, so call sites can
// record and report a diagnostic in one expression.
func Warn(w *NumericalWarning) *NumericalWarning {
	Logger().Warn("numerical warning",
		slog.String("source", w.Source),
		slog.String("quantity", w.Quantity),
		slog.Float64("got", w.Got),
		slog.Float64("want", w.Want),
		slog.Float64("rtol", w.Tol),
	)
	return w
}
