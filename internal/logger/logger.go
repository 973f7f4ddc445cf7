// Package logger provides structured logging for the storefront,
// wrapping go.uber.org/zap.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.Logger so callers share one configured instance.
type Logger struct {
	// Log is the underlying zap logger. Nil until Init is called.
	Log *zap.Logger
}

// New returns an uninitialized Logger. Call Init before use.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init configures the logger at the given level ("Debug", "Info", "Warn",
// "Error"). Returns an error if the level string cannot be parsed.
func (l *Logger) Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = logger
	return nil
}
