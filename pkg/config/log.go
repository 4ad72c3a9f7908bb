package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// LogConfig selects the slog level of the JSON handler.
type LogConfig struct {
	Level string `koanf:"level"`
}

// SlogLevel parses the configured level name. An empty name means info;
// Validate rejects anything else unknown.
func (c *LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
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

func (c *LogConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown log level %q", c.Level)
}
