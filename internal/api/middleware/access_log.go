package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// NewAccessLogger writes one structured entry per request through base.
// It replaces chi's middleware.Logger, which prints to stdout.
func NewAccessLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return middleware.RequestLogger(&accessLogFormatter{logger: base})
}

type accessLogFormatter struct {
	logger *slog.Logger
}

// NewLogEntry implements middleware.LogFormatter.
func (f *accessLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	log := f.logger.With(
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr))
	return &accessLogEntry{logger: log, req: r}
}

type accessLogEntry struct {
	logger *slog.Logger
	req    *http.Request
}

// Write implements middleware.LogEntry.
func (e *accessLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	e.logger.InfoContext(e.req.Context(), "request completed",
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Int64("duration_ms", elapsed.Milliseconds()))
}

// Panic implements middleware.LogEntry.
func (e *accessLogEntry) Panic(v interface{}, stack []byte) {
	e.logger.ErrorContext(e.req.Context(), "request panicked",
		slog.Any("panic", v),
		slog.String("stack", string(stack)))
}
