// Package logging builds the zap loggers used by gwtrack commands.
//
// Library packages accept a *zap.Logger and never construct one themselves;
// only command entry points call New.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the encoder used for log output.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Config describes how a logger is built.
type Config struct {
	Level  string
	Format Format
}

// New returns a logger writing to stderr at the configured level.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zcfg zap.Config
	switch Format(strings.ToLower(strings.TrimSpace(string(cfg.Format)))) {
	case "", FormatConsole:
		zcfg = zap.NewDevelopmentConfig()
		zcfg.DisableStacktrace = true
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case FormatJSON:
		zcfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(value string) (zapcore.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return zapcore.InfoLevel, nil
	}
	if trimmed == "warning" {
		trimmed = "warn"
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(trimmed)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unsupported log level %q", value)
	}
	return level, nil
}

// OrNop returns logger, or a no-op logger when logger is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
