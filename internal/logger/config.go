// Package logger provides the process-wide structured logger.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel is the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"level"`
	// LogFilePath is the output file. Empty or "-" means stderr.
	LogFilePath string `toml:"file"`
}

func NewConfig() Config {
	return Config{LogLevel: "info"}
}

func (c Config) level() (zapcore.Level, error) {
	if strings.TrimSpace(c.LogLevel) == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logger: invalid level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

func (c Config) toStderr() bool {
	p := strings.TrimSpace(c.LogFilePath)
	return p == "" || p == "-"
}
