package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazuma-desu/showmore/pkg/client"
	"github.com/kazuma-desu/showmore/pkg/exit"
	"github.com/kazuma-desu/showmore/pkg/logger"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exit.Success},
		{"plain error", errors.New("boom"), exit.GeneralError},
		{"coded error", exit.WithCode(exit.ConnectionError, errors.New("down")), exit.ConnectionError},
		{"wrapped coded error", fmt.Errorf("outer: %w", exit.WithCode(exit.ValidationError, errors.New("bad"))), exit.ValidationError},
		{"key not found", fmt.Errorf("lookup: %w", client.ErrKeyNotFound), exit.KeyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	path := setupTestConfig(t)
	origLevel := logLevel
	t.Cleanup(func() {
		logLevel = origLevel
		logger.SetLevel("warn")
	})

	t.Run("default is warn", func(t *testing.T) {
		logLevel = ""
		configureLogging()
		assert.False(t, logger.Log.Desugar().Core().Enabled(logger.ParseLevel("info")))
		assert.True(t, logger.Log.Desugar().Core().Enabled(logger.ParseLevel("warn")))
	})

	t.Run("config file level", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
		require.NoError(t, os.WriteFile(path, []byte("log-level: debug\n"), 0600))
		logLevel = ""
		configureLogging()
		assert.True(t, logger.Log.Desugar().Core().Enabled(logger.ParseLevel("debug")))
	})

	t.Run("flag overrides config", func(t *testing.T) {
		logLevel = "error"
		configureLogging()
		assert.False(t, logger.Log.Desugar().Core().Enabled(logger.ParseLevel("warn")))
	})
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"truncate", "get", "watch", "validate", "config", "version", "options", "completion"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}
