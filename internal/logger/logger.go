// Package logger holds the process-wide slog logger and request-scoped helpers.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ServiceName is attached to every record.
const ServiceName = "root_tycoon"

var defaultLogger *slog.Logger

// Init installs the global logger writing to stdout.
func Init(level string, json bool) {
	defaultLogger = New(os.Stdout, level, json)
	slog.SetDefault(defaultLogger)
}

// New builds a logger without installing it. Tests use it with a buffer.
func New(w io.Writer, level string, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With("service", ServiceName)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Get() *slog.Logger {
	if defaultLogger == nil {
		Init("info", false)
	}
	return defaultLogger
}

// Component returns a logger for one subsystem (game, payments, chat, ...).
func Component(name string) *slog.Logger {
	return Get().With("component", name)
}

type requestIDKey struct{}

// NewContext tags ctx with the id of the request it serves.
func NewContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the id set by NewContext, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithContext returns the global logger tagged with the request id of ctx.
func WithContext(ctx context.Context) *slog.Logger {
	if id := RequestID(ctx); id != "" {
		return Get().With("request_id", id)
	}
	return Get()
}

func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// Fatal logs at error level and exits with status 1.
func Fatal(msg string, args ...any) {
	Get().Error(msg, args...)
	os.Exit(1)
}
