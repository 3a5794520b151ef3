package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

const (
	LevelCritical = slog.Level(12)
)

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	BusinessError(message string, err error, args ...any)
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
}

type ctxKey struct{}

var levelNames = map[string]slog.Level{
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical,
}

type orbitLogger struct {
	base *slog.Logger
}

// NewFromValues builds a logger from raw settings such as those read from
// config or flags. Unknown values fall back to the defaults for env.
func NewFromValues(output io.Writer, level, format, env string) Logger {
	return New(output, parseLevel(level, normalizeValue(env)), parseFormat(format))
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return New(io.Discard, LevelCritical+1, "text")
}

func New(output io.Writer, level slog.Level, format string) Logger {
	options := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	if normalizeValue(format) == "json" {
		handler = slog.NewJSONHandler(output, options)
	} else {
		handler = slog.NewTextHandler(output, options)
	}
	return &orbitLogger{base: slog.New(handler)}
}

// IntoContext stores a request-scoped logger.
func IntoContext(ctx context.Context, log Logger) context.Context {
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the logger stored by IntoContext, or fallback when the
// context carries none. A nil fallback yields Nop.
func FromContext(ctx context.Context, fallback Logger) Logger {
	if log, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return log
	}
	if fallback == nil {
		return Nop()
	}
	return fallback
}

func (l *orbitLogger) Debug(message string, args ...any) { l.base.Debug(message, args...) }
func (l *orbitLogger) Info(message string, args ...any)  { l.base.Info(message, args...) }
func (l *orbitLogger) Warn(message string, args ...any)  { l.base.Warn(message, args...) }
func (l *orbitLogger) Error(message string, args ...any) { l.base.Error(message, args...) }

func (l *orbitLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

// BusinessError logs rejected user input at WARN. Nil errors are dropped.
func (l *orbitLogger) BusinessError(message string, err error, args ...any) {
	l.logErr(slog.LevelWarn, message, err, args)
}

// InternalError logs failures the caller cannot fix at ERROR. Nil errors are dropped.
func (l *orbitLogger) InternalError(message string, err error, args ...any) {
	l.logErr(slog.LevelError, message, err, args)
}

func (l *orbitLogger) logErr(level slog.Level, message string, err error, args []any) {
	if err == nil {
		return
	}
	l.base.Log(context.Background(), level, message, append([]any{"err", err}, args...)...)
}

func (l *orbitLogger) With(args ...any) Logger {
	return &orbitLogger{base: l.base.With(args...)}
}

// parseLevel maps a level name to a slog level. Empty, unknown or "info"
// names mean debug in development and info elsewhere.
func parseLevel(value string, env string) slog.Level {
	if level, ok := levelNames[normalizeValue(value)]; ok && normalizeValue(value) != "info" {
		return level
	}
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func parseFormat(value string) string {
	if normalizeValue(value) == "text" {
		return "text"
	}
	return "json"
}

func normalizeValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}
	if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
		attr.Value = slog.StringValue("CRITICAL")
	}
	return attr
}
