package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig groups configuration that controls logging and metrics.
type ObservabilityConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"false"`
}

// Sanitize normalises the log level and falls back to info for unknown values.
func (c *ObservabilityConfig) Sanitize() {
	level := strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch level {
	case "debug", "info", "warn", "error":
		c.LogLevel = level
	default:
		c.LogLevel = "info"
	}
}

// SlogLevel maps the configured level to a slog.Level.
func (c ObservabilityConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
