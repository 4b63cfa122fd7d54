package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// EnvVarLogLevel is the environment variable name for setting the log level.
	EnvVarLogLevel = "LOG_LEVEL"

	// EnvVarLogFormat is the environment variable name for setting the log format, json or text.
	EnvVarLogFormat = "LOG_FORMAT"

	FormatJSON = "json"
	FormatText = "text"
)

// NewStructuredLogger creates a new structured JSON logger on stderr with the specified log level.
// Defined module name and version are included in the logger's context.
// Parameters:
//   - module: The name of the module/application using the logger.
//   - version: The version of the module/application (e.g., "v1.0.0").
//   - level: The log level as a string (e.g., "debug", "info", "warn", "error").
//
// Returns:
//   - *slog.Logger: A pointer to the configured slog.Logger instance.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return New(os.Stderr, module, version, level, FormatJSON)
}

// New creates a structured logger writing to w in the given format.
// Unknown formats fall back to JSON. AddSource is enabled for debug level logging only.
func New(w io.Writer, module, version, level, format string) *slog.Logger {
	lev := ParseLogLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lev,
		AddSource: lev <= slog.LevelDebug,
	}

	var h slog.Handler
	if ParseFormat(format) == FormatText {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h).With("module", module, "version", version)
}

// SetDefaultLogger configures the default logger from the LOG_LEVEL and LOG_FORMAT
// environment variables. levelOverride, when not empty, takes precedence over LOG_LEVEL.
func SetDefaultLogger(module, version, levelOverride string) {
	level := os.Getenv(EnvVarLogLevel)
	if levelOverride != "" {
		level = levelOverride
	}
	slog.SetDefault(New(os.Stderr, module, version, level, os.Getenv(EnvVarLogFormat)))
}

// ParseLogLevel converts a string representation of a log level into a slog.Level.
// Defaults to slog.LevelInfo for unrecognized strings.
func ParseLogLevel(level string) slog.Level {
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

// ParseFormat normalizes a log format name, defaulting to FormatJSON.
func ParseFormat(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), FormatText) {
		return FormatText
	}
	return FormatJSON
}
