package events

import (
	"context"
	"log/slog"
)

// Standard field keys used by LogEmitter.
const (
	RequestIDKey    = "request_id"
	URLKey          = "url"
	StatusKey       = "status"
	DurationKey     = "duration_ms"
	RetryAttemptKey = "retry_attempt"
)

// LogEmitter writes one structured log record per event. Requests and
// responses are logged at debug level, errors at warn level. Request bodies
// and headers are never logged because they carry the API key and customer
// addresses.
type LogEmitter struct {
	logger *slog.Logger
}

// NewLogEmitter returns a LogEmitter writing to logger, or to slog.Default
// when logger is nil.
func NewLogEmitter(logger *slog.Logger) *LogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEmitter{logger: logger}
}

// OnRequestSent implements Emitter.
func (l *LogEmitter) OnRequestSent(e RequestSent) {
	l.logger.LogAttrs(context.Background(), slog.LevelDebug, e.Message,
		slog.String(RequestIDKey, e.RequestID),
		slog.String(URLKey, e.URL),
		slog.Int(RetryAttemptKey, e.RetryAttempt),
		slog.Int64("timeout_ms", e.Timeout.Milliseconds()),
	)
}

// OnResponseReceived implements Emitter.
func (l *LogEmitter) OnResponseReceived(e ResponseReceived) {
	level := slog.LevelDebug
	if e.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	l.logger.LogAttrs(context.Background(), level, e.Message,
		slog.String(RequestIDKey, e.RequestID),
		slog.String(URLKey, e.URL),
		slog.Int(StatusKey, e.StatusCode),
		slog.Int64(DurationKey, e.Elapsed.Milliseconds()),
		slog.Int(RetryAttemptKey, e.RetryAttempt),
	)
}

// OnError implements Emitter.
func (l *LogEmitter) OnError(e Error) {
	l.logger.LogAttrs(context.Background(), slog.LevelWarn, e.Message,
		slog.String(RequestIDKey, e.RequestID),
		slog.String(URLKey, e.URL),
		slog.Int(StatusKey, e.StatusCode),
		slog.String("source", e.Source),
		slog.String("type", e.Type),
		slog.String("code", e.Code),
	)
}
