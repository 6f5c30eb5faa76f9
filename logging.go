package async

import (
	"sync"

	"go.uber.org/zap"
)

// Package-level configuration for structured logging.
//
// Logging here is debug-only and diagnostic: handler commits, pending-queue
// sweeps, and dispatch scheduling. It never gates correctness and defaults
// to a no-op logger so importing this package has no observable side
// effect until a caller opts in.

var globalLogger struct {
	mu sync.RWMutex
	l  *zap.Logger
}

// SetLogger installs the package-wide structured logger. Passing nil
// restores the no-op default.
func SetLogger(l *zap.Logger) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.l = l
}

func logger() *zap.Logger {
	globalLogger.mu.RLock()
	defer globalLogger.mu.RUnlock()
	if globalLogger.l != nil {
		return globalLogger.l
	}
	return zap.NewNop()
}

func zapDropped(n int) zap.Field { return zap.Int("dropped", n) }

func zapTaskError(err error) zap.Field { return zap.Error(err) }

func zapOp(op string) zap.Field { return zap.String("op", op) }
