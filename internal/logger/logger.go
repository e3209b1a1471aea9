// Package logger wraps zap with the defaults used by the TripWise binaries.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Logger holds the process-wide structured logger. Log is a no-op logger
// until Init succeeds.
type Logger struct {
	Log *zap.Logger
}

// New returns a Logger whose Log discards everything.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces Log with a production logger at the given level
// ("debug", "info", "warn", "error", ...). Case is ignored.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	l.Log = zl
	return nil
}
