package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/randgraph/pkg/observability"
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

// stopwatch tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func newStopwatch(l *log.Logger) *stopwatch {
	return &stopwatch{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
// Example output: "Wrote 4 fixtures (1.234s)"
func (p *stopwatch) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
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
// Observability Hooks
// =============================================================================

// registerLogHooks routes generation, search and cache events to l at
// debug level.
func registerLogHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetGenerateHooks(h)
	observability.SetSearchHooks(h)
	observability.SetCacheHooks(h)
}

type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnTreeStart(_ context.Context, vertices int) {
	h.logger.Debug("spanning tree", "vertices", vertices)
}

func (h *logHooks) OnTreeComplete(_ context.Context, vertices int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("spanning tree failed", "vertices", vertices, "error", err)
		return
	}
	h.logger.Debug("spanning tree done", "vertices", vertices, "duration", d)
}

func (h *logHooks) OnCompleteStart(_ context.Context, strategy string, extra int) {
	h.logger.Debug("density completion", "strategy", strategy, "extra", extra)
}

func (h *logHooks) OnCompleteDone(_ context.Context, strategy string, added, attempts int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("density completion failed", "strategy", strategy, "attempts", attempts, "error", err)
		return
	}
	h.logger.Debug("density completion done", "strategy", strategy, "added", added, "attempts", attempts, "duration", d)
}

func (h *logHooks) OnSearch(_ context.Context, from, to, hops, visited int, d time.Duration) {
	h.logger.Debug("search", "from", from, "to", to, "hops", hops, "visited", visited, "duration", d)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
