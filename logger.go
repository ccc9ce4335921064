package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with a component name.
type Logger struct {
	*slog.Logger
	base      *slog.Logger
	component string
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level     slog.Level
	Component string
	Output    io.Writer
	Handler   slog.Handler
}

// DefaultLoggerConfig logs info and above to stderr.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:     slog.LevelInfo,
		Component: "githeat",
		Output:    os.Stderr,
	}
}

// NewLogger creates a new logger with the given configuration
func NewLogger(config LoggerConfig) *Logger {
	handler := config.Handler
	if handler == nil {
		out := config.Output
		if out == nil {
			out = os.Stderr
		}
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: config.Level})
	}

	base := slog.New(handler)
	return &Logger{
		Logger:    base.With("component", config.Component),
		base:      base,
		component: config.Component,
	}
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *Logger {
	return NewLogger(LoggerConfig{Component: "discard", Handler: slog.NewTextHandler(io.Discard, nil)})
}

// WithComponent returns a new logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.base.With("component", component),
		base:      l.base,
		component: component,
	}
}

// With returns a new logger with the given attributes
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		base:      l.base,
		component: l.component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// Step logs a user-facing progress line at info level.
func (l *Logger) Step(ctx context.Context, format string, args ...any) {
	l.Logger.InfoContext(ctx, fmt.Sprintf(format, args...))
}

// ParseLogLevel parses debug, info, warn or error (case-insensitive).
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, &ConfigError{Parameter: "log-level", Value: s, Err: fmt.Errorf("want debug, info, warn or error")}
	}
	return level, nil
}
