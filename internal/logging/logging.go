// Package logging provides the engine's structured logger.
//
// The engine never reads environment variables or files (it is a pure
// library, per the façade contract); a host selects the log level via
// Init. The façade's debug flag (Engine.SetDebug) does not change what is
// logged.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	global *zap.Logger
)

// Init installs the process-wide logger at the given level ("debug",
// "info", "warn", "error"). A nil or unrecognised level defaults to info.
func Init(level *string) error {
	config := zap.NewDevelopmentConfig()

	applied := "info"
	if level != nil {
		applied = *level
	}

	switch applied {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	built, err := config.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	global = built
	mu.Unlock()
	return nil
}

// Get returns the process-wide logger, falling back to a development
// logger if Init was never called (e.g. in unit tests).
func Get() *zap.Logger {
	mu.RLock()
	l := global
	mu.RUnlock()
	if l != nil {
		return l
	}

	fallback, _ := zap.NewDevelopment()

	mu.Lock()
	if global == nil {
		global = fallback
	}
	result := global
	mu.Unlock()
	return result
}

// Sync flushes any buffered log entries.
func Sync() error {
	mu.RLock()
	l := global
	mu.RUnlock()
	if l == nil {
		return nil
	}
	return l.Sync()
}

// WithContext returns a logger enriched with the given fields.
func WithContext(fields ...zap.Field) *zap.Logger {
	return Get().With(fields...)
}

// WithGame returns a logger carrying game/player context, mirrored onto
// every log line the engine emits while resolving that game's actions.
func WithGame(gameID, playerID string) *zap.Logger {
	fields := make([]zap.Field, 0, 2)
	if gameID != "" {
		fields = append(fields, zap.String("game_id", gameID))
	}
	if playerID != "" {
		fields = append(fields, zap.String("player_id", playerID))
	}
	return Get().With(fields...)
}
