// Package logger holds the process-wide structured logger.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared sugared logger. It writes colored console output to
// stderr so it never mixes with truncated text on stdout.
var Log *zap.SugaredLogger

func init() {
	Log = build(zapcore.WarnLevel)
}

// SetLevel rebuilds Log at the named level (debug, info, warn, error).
// Unknown names fall back to warn.
func SetLevel(level string) {
	Log = build(ParseLevel(level))
}

// ParseLevel maps a level name to a zap level, defaulting to warn.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func build(level zapcore.Level) *zap.SugaredLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Encoding = "console"
	config.Level = zap.NewAtomicLevelAt(level)

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
