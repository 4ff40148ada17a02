// Package logger wraps zap construction so the rest of the
// application only deals with *zap.Logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger carries the configured zap instance.
type Logger struct {
	// Log is the underlying zap logger.
	Log *zap.Logger
}

// New returns an unconfigured Logger. Call Init before use.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds the zap logger at the given level ("debug", "info",
// "warn", "error"). pretty switches to the human-readable console
// encoder; the default is production JSON.
func (l *Logger) Init(level string, pretty bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("unknown log level %q: %w", level, err)
	}

	var cfg zap.Config
	if pretty {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	l.Log = log
	return nil
}
