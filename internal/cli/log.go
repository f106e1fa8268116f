package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Exported 2 files (312ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks reports history, storage and export events at debug level.
// It is registered when the CLI runs with --verbose.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnCommit(shapes, entries int) {
	h.logger.Debug("history commit", "shapes", shapes, "entries", entries)
}

func (h *logHooks) OnUndo(index int) { h.logger.Debug("undo", "index", index) }
func (h *logHooks) OnRedo(index int) { h.logger.Debug("redo", "index", index) }

func (h *logHooks) OnLoad(_ context.Context, key string, found bool) {
	h.logger.Debug("store load", "key", key, "found", found)
}

func (h *logHooks) OnSave(_ context.Context, key string, size int, err error) {
	if err != nil {
		h.logger.Debug("store save failed", "key", key, "err", err)
		return
	}
	h.logger.Debug("store save", "key", key, "bytes", size)
}

func (h *logHooks) OnExport(_ context.Context, format string, w, hgt int, d time.Duration, err error) {
	h.logger.Debug("export", "format", format, "size", [2]int{w, hgt}, "took", d.Round(time.Millisecond), "err", err)
}
