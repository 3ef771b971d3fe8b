package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  = zap.NewNop()
	once sync.Once
)

// Initialize builds the process logger. "production" gets JSON output with
// ISO8601 timestamps, anything else the colored development console.
// level overrides the default level when set (debug, info, warn, error).
func Initialize(env, level string) {
	once.Do(func() {
		var config zap.Config
		if env == "production" {
			config = zap.NewProductionConfig()
			config.EncoderConfig.TimeKey = "timestamp"
			config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		} else {
			config = zap.NewDevelopmentConfig()
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		if level != "" {
			if lvl, err := zapcore.ParseLevel(strings.ToLower(level)); err == nil {
				config.Level = zap.NewAtomicLevelAt(lvl)
			}
		}

		l, err := config.Build()
		if err != nil {
			fmt.Printf("Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		log = l
	})
}

// L returns the process logger; a no-op logger until Initialize runs.
func L() *zap.Logger {
	return log
}

// Named returns a child logger for one component.
func Named(name string) *zap.Logger {
	return log.Named(name)
}

// Sync flushes buffered entries.
func Sync() {
	_ = log.Sync()
}
