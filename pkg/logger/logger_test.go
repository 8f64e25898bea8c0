package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zapcore.Level
	}{
		{"debug level", "debug", zapcore.DebugLevel},
		{"info level", "info", zapcore.InfoLevel},
		{"warn level", "warn", zapcore.WarnLevel},
		{"error level", "error", zapcore.ErrorLevel},
		{"default level", "invalid", zapcore.WarnLevel},
		{"empty level", "", zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.level))
		})
	}
}

func TestLoggerInitialization(t *testing.T) {
	require.NotNil(t, Log)
	assert.False(t, Log.Desugar().Core().Enabled(zapcore.InfoLevel), "default level should be warn")
	assert.True(t, Log.Desugar().Core().Enabled(zapcore.WarnLevel))
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("warn") })

	SetLevel("debug")
	require.NotNil(t, Log)
	assert.True(t, Log.Desugar().Core().Enabled(zapcore.DebugLevel))

	SetLevel("error")
	assert.False(t, Log.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.False(t, Log.Desugar().Core().Enabled(zapcore.WarnLevel))
	assert.True(t, Log.Desugar().Core().Enabled(zapcore.ErrorLevel))
}

func TestLoggerOutput(_ *testing.T) {
	SetLevel("info")
	defer SetLevel("warn")

	Log.Info("test message")
	Log.Infow("test with fields", "key", "value")
	Log.Debugw("debug with fields", "key", "value")
	Log.Warnw("warn with fields", "key", "value")
	Log.Errorw("error with fields", "key", "value")
}
