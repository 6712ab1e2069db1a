// Package logger holds the process-wide zap logger.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
	level = zap.NewAtomicLevel()
)

// Init builds the global logger for env. "production" logs JSON at info,
// "test" discards everything, anything else logs to the console at debug.
// LOG_LEVEL overrides the level. Only the first call has an effect.
func Init(env string) {
	once.Do(func() { sugar = build(env).Sugar() })
}

func build(env string) *zap.Logger {
	if env == "test" {
		return zap.NewNop()
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		level.SetLevel(zapcore.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		level.SetLevel(zapcore.DebugLevel)
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if lvl, err := zapcore.ParseLevel(raw); err == nil {
			level.SetLevel(lvl)
		}
	}
	cfg.Level = level

	base, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return base
}

// Get returns the global logger, building a development logger when Init
// was never called.
func Get() *zap.SugaredLogger {
	Init("development")
	return sugar
}

// Named returns a child logger tagged with a component name.
func Named(name string) *zap.SugaredLogger {
	return Get().Named(name)
}

// SetLevel changes the level of the running logger.
func SetLevel(lvl zapcore.Level) {
	level.SetLevel(lvl)
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
