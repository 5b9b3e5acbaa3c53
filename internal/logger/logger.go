package logger

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Initialize sets up the global logger with the specified level and format
func Initialize(level, format string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// Get returns the default logger
func Get() *slog.Logger {
	if defaultLogger == nil {
		Initialize("info", "text")
	}
	return defaultLogger
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}

// WithService returns a logger with the service name attached
func WithService(name string) *slog.Logger {
	return Get().With("service", name)
}

// WorkflowTransition logs a state transition performed by a workflow
func WorkflowTransition(entity string, entityID int32, from, to string, args ...any) {
	allArgs := append([]any{"entity", entity, "entity_id", entityID, "from", from, "to", to}, args...)
	Get().Info("State transition", allArgs...)
}

// WorkflowDenied logs a workflow precondition failure with its internal tag
func WorkflowDenied(entity string, entityID int32, cause error, args ...any) {
	allArgs := append([]any{"entity", entity, "entity_id", entityID, "cause", cause}, args...)
	Get().Warn("Workflow precondition failed", allArgs...)
}
