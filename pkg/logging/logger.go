// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Format is "json" (default) or "console" for human-readable output.
	Format string

	// Verbose lowers the level to info when Level is warn or error, so that
	// per-request and fetch progress lines are shown.
	Verbose bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: FormatJSON,
		Output: os.Stderr,
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	level := parseLevel(cfg.Level)
	if cfg.Verbose && level > zerolog.InfoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Format == FormatConsole {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: "2006-01-02 15:04:05"}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// ValidateLevel reports whether level names a known log level.
func ValidateLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("unknown log level %q (want debug, info, warn or error)", level)
}

// ValidateFormat reports whether format names a known output format.
func ValidateFormat(format string) error {
	if format == FormatJSON || format == FormatConsole {
		return nil
	}
	return fmt.Errorf("unknown log format %q (want json or console)", format)
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Pagination headers read from the first page
//   - Cache hits, misses and payload age
//   - Quota updates
//
// Info: Progress lines, shown with Verbose
//   - Each request with offset/limit, status and quota
//   - Fetch complete with record and page counts
//
// Warn: Conditions that don't prevent operation
//   - Plan quota exhausted
//   - Zero page size reported by the API
//   - Cache read or write failures (the call proceeds without cache)
//   - Unparseable quota headers
//   - Client, server and unexpected status responses
//
// Error: Failures without a response
//   - Network and timeout errors
//   - Metrics server failures
//
// Context Fields:
//   - component: sportradar-client, sportradar, cli
//   - product: API product segment (e.g. soccer-extended)
//   - endpoint: endpoint path below the language segment
//   - fetch_id: identifier shared by all pages of one aggregation
//   - offset, limit: page window
//   - status_code: HTTP status code
//   - duration: request or aggregation duration
//   - quota: plan quota as current/allotted
