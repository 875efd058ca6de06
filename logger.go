package approutes

import (
	"io"
	"log/slog"
)

// Logger provides structured logging for the compiler and the CLI.
type Logger struct {
	slog *slog.Logger
}

// NewLogger creates a Logger that writes text records at or above level to w.
func NewLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		slog: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

// NopLogger returns a Logger that drops everything.
func NopLogger() *Logger {
	return &Logger{slog: slog.New(slog.DiscardHandler)}
}

// Info logs at INFO level.
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// With returns a new Logger with the given key-value pairs attached to every log entry.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}
