// Package logging provides the shared zap logger for nestex.
// External tool output (latexmk, rsync, biber) goes straight to the
// terminal; this logger carries nestex's own diagnostics, tagged with a
// per-invocation run ID so interleaved output can be told apart.
package logging

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger = zap.NewNop()
	runID  string
)

// Initialize builds the process logger. verbose enables debug level.
// Safe to call once at startup, before any L() use.
func Initialize(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	id := uuid.NewString()

	mu.Lock()
	logger = l.With(zap.String("run_id", id))
	runID = id
	mu.Unlock()
	return nil
}

// L returns the process logger. Before Initialize it is a nop logger, so
// library code can log unconditionally.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// RunID returns the identifier attached to every log line of this
// invocation. Empty before Initialize.
func RunID() string {
	mu.RLock()
	defer mu.RUnlock()
	return runID
}

// Sync flushes buffered log entries. Called from the root command's
// PersistentPostRun.
func Sync() {
	mu.RLock()
	l := logger
	mu.RUnlock()
	_ = l.Sync()
}
