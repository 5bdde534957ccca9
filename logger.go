package clashgo

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with clashgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithTag adds a tag field to the logger (useful for per-entity operations).
func (l *Logger) WithTag(tag string) *Logger {
	return &Logger{
		Logger: l.Logger.With("tag", tag),
	}
}

// WithEndpoint adds an endpoint field to the logger.
func (l *Logger) WithEndpoint(endpoint string) *Logger {
	return &Logger{
		Logger: l.Logger.With("endpoint", endpoint),
	}
}

// WithLocation adds a location ID field to the logger.
func (l *Logger) WithLocation(id int) *Logger {
	return &Logger{
		Logger: l.Logger.With("location_id", id),
	}
}

// LogRequest logs an API request.
func (l *Logger) LogRequest(ctx context.Context, endpoint string, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "request failed",
			"endpoint", endpoint,
			"duration", duration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "request completed",
			"endpoint", endpoint,
			"duration", duration,
		)
	}
}

// LogSearch logs a clan search operation.
func (l *Logger) LogSearch(ctx context.Context, name string, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "clan search failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "clan search completed",
			"name", name,
			"results", results,
		)
	}
}

// LogBatchFetch logs a batched fan-out fetch.
func (l *Logger) LogBatchFetch(ctx context.Context, endpoint string, count int, err error) {
	if err != nil {
		l.WarnContext(ctx, "batch fetch failed",
			"endpoint", endpoint,
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch fetch completed",
			"endpoint", endpoint,
			"count", count,
		)
	}
}

// LogVerify logs a player token verification.
func (l *Logger) LogVerify(ctx context.Context, tag string, valid bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "token verification failed",
			"tag", tag,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "token verification completed",
			"tag", tag,
			"valid", valid,
		)
	}
}
