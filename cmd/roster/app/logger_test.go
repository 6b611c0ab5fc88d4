package app

import (
	"testing"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default level when no flags set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "both flags use quiet",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "error",
		},
		{
			name:     "explicit log-level overrides quiet",
			config:   &Config{LogLevel: "trace", Quiet: true},
			expected: "trace",
		},
		{
			name:     "explicit log-level is case-insensitive",
			config:   &Config{LogLevel: "DEBUG"},
			expected: "debug",
		},
		{
			name:     "invalid log-level falls back to info",
			config:   &Config{LogLevel: "loud"},
			expected: "info",
		},
		{
			name:     "environment level used without flags",
			config:   &Config{EnvLogLevel: "warn"},
			expected: "warn",
		},
		{
			name:     "verbose overrides environment level",
			config:   &Config{EnvLogLevel: "error", Verbose: true},
			expected: "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := determineLogLevel(tt.config); got != tt.expected {
				t.Errorf("determineLogLevel() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestNewLogger verifies the logger honors the resolved level.
func TestNewLogger(t *testing.T) {
	logger := NewLogger(&Config{Quiet: true, LogOutput: "discard", LogFormat: "json"})

	if got := logger.GetLevel().String(); got != "warn" {
		t.Errorf("logger level = %q, want warn", got)
	}
}
