package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelWarn {
		t.Errorf("Expected default level to be Warn, got %s", cfg.Level)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Expected default format to be json, got %s", cfg.Format)
	}
	if cfg.Verbose {
		t.Error("Expected default verbose to be false")
	}
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name    string
		level   LogLevel
		write   func(zerolog.Logger)
		testMsg string
	}{
		{"debug_level", LevelDebug, func(l zerolog.Logger) { l.Debug().Msg("test debug message") }, "test debug message"},
		{"info_level", LevelInfo, func(l zerolog.Logger) { l.Info().Msg("test info message") }, "test info message"},
		{"warn_level", LevelWarn, func(l zerolog.Logger) { l.Warn().Msg("test warn message") }, "test warn message"},
		{"error_level", LevelError, func(l zerolog.Logger) { l.Error().Msg("test error message") }, "test error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := Setup(Config{Level: tt.level, Format: FormatJSON, Output: buf})

			tt.write(logger)

			if !strings.Contains(buf.String(), tt.testMsg) {
				t.Errorf("Expected output to contain %q, got %q", tt.testMsg, buf.String())
			}
		})
	}
}

func TestSetup_Console(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := Setup(Config{Level: LevelInfo, Format: FormatConsole, Output: buf})

	logger.Info().Str("endpoint", "seasons").Msg("Fetch complete")

	output := buf.String()
	if strings.HasPrefix(output, "{") {
		t.Errorf("Console output should not be JSON: %q", output)
	}
	if !strings.Contains(output, "Fetch complete") || !strings.Contains(output, "seasons") {
		t.Errorf("Unexpected console output: %q", output)
	}
}

func TestSetup_Verbose(t *testing.T) {
	tests := []struct {
		name    string
		level   LogLevel
		verbose bool
		want    zerolog.Level
	}{
		{"warn quiet", LevelWarn, false, zerolog.WarnLevel},
		{"warn verbose", LevelWarn, true, zerolog.InfoLevel},
		{"error verbose", LevelError, true, zerolog.InfoLevel},
		{"debug verbose keeps debug", LevelDebug, true, zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Setup(Config{Level: tt.level, Verbose: tt.verbose, Output: &bytes.Buffer{}})
			if got := zerolog.GlobalLevel(); got != tt.want {
				t.Errorf("GlobalLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"invalid", zerolog.InfoLevel}, // Should default to Info
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	for _, level := range []string{"debug", "INFO", "warn", "warning", "error"} {
		if err := ValidateLevel(level); err != nil {
			t.Errorf("ValidateLevel(%q) = %v", level, err)
		}
	}
	if err := ValidateLevel("verbose"); err == nil {
		t.Error("ValidateLevel(verbose) should fail")
	}

	if err := ValidateFormat("console"); err != nil {
		t.Errorf("ValidateFormat(console) = %v", err)
	}
	if err := ValidateFormat("pretty"); err == nil {
		t.Error("ValidateFormat(pretty) should fail")
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: buf,
	})

	logger := NewLogger("test-component")
	logger.Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, "test-component") {
		t.Errorf("Expected output to contain 'test-component', got %q", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got %q", output)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{
		Level:  LevelWarn,
		Format: FormatJSON,
		Output: buf,
	})

	logger := NewLogger("test")

	// These should NOT appear (below warn level)
	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")

	// These SHOULD appear (warn level and above)
	logger.Warn().Msg("warn message")
	logger.Error().Msg("error message")

	output := buf.String()

	if strings.Contains(output, "debug message") {
		t.Error("Debug message should be filtered out at Warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("Info message should be filtered out at Warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("Warn message should be included at Warn level")
	}
	if !strings.Contains(output, "error message") {
		t.Error("Error message should be included at Warn level")
	}
}
