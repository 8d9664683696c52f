// Package logging builds the zap logger shared by the server, the chat hub
// and the translation and speech backends.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// New builds a production logger at the given level.
// Unknown levels fall back to info.
func New(level string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = ParseLevel(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Sugar(), nil
}

// ParseLevel maps a level name onto a zap level
func ParseLevel(level string) zap.AtomicLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	case "warn", "warning":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}

// Nop returns a logger that discards everything
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
