package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kazuma-desu/showmore/pkg/config"
	"github.com/kazuma-desu/showmore/pkg/exit"
	"github.com/kazuma-desu/showmore/pkg/logger"
	"github.com/kazuma-desu/showmore/pkg/models"
	"github.com/kazuma-desu/showmore/pkg/output"
	"github.com/kazuma-desu/showmore/pkg/testutil"
	"github.com/kazuma-desu/showmore/pkg/truncate"
)

func TestResolveThresholds(t *testing.T) {
	appCfg := &config.Config{Thresholds: truncate.Thresholds{Chars: 40, Words: 10, LineBreaks: 3}}

	t.Run("config only", func(t *testing.T) {
		resetFlags(truncateCmd)
		got := resolveThresholds(truncateCmd, truncate.Thresholds{Chars: 99}, appCfg)
		assert.Equal(t, appCfg.Thresholds, got)
	})

	t.Run("flags override per field", func(t *testing.T) {
		resetFlags(truncateCmd)
		t.Cleanup(func() { resetFlags(truncateCmd) })
		require.NoError(t, truncateCmd.Flags().Set("chars", "0"))
		require.NoError(t, truncateCmd.Flags().Set("line-breaks", "5"))

		got := resolveThresholds(truncateCmd, truncateOpts.Thresholds, appCfg)
		assert.Equal(t, truncate.Thresholds{Chars: 0, Words: 10, LineBreaks: 5}, got)
	})

	t.Run("no config", func(t *testing.T) {
		resetFlags(truncateCmd)
		assert.Equal(t, truncate.Thresholds{}, resolveThresholds(truncateCmd, truncate.Thresholds{}, nil))
	})
}

func TestResolveLabels(t *testing.T) {
	resetFlags(truncateCmd)
	t.Cleanup(func() { resetFlags(truncateCmd) })

	appCfg := &config.Config{Labels: config.Labels{More: "Show more", Less: "Show less"}}
	assert.Equal(t, output.Labels{More: "Show more", Less: "Show less"},
		resolveLabels(truncateCmd, "", "", appCfg))

	require.NoError(t, truncateCmd.Flags().Set("more-label", "more..."))
	assert.Equal(t, output.Labels{More: "more...", Less: "Show less"},
		resolveLabels(truncateCmd, truncateOpts.MoreLabel, truncateOpts.LessLabel, appCfg))

	assert.Equal(t, output.Labels{More: "more..."},
		resolveLabels(truncateCmd, truncateOpts.MoreLabel, truncateOpts.LessLabel, nil))
}

func TestResolveStrictOption(t *testing.T) {
	tests := []struct {
		name        string
		flagValue   bool
		flagChanged bool
		appCfg      *config.Config
		want        bool
	}{
		{"flag set true", true, true, &config.Config{Strict: false}, true},
		{"flag set false overrides config", false, true, &config.Config{Strict: true}, false},
		{"config used when flag unset", false, false, &config.Config{Strict: true}, true},
		{"nil config", false, false, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveStrictOption(tt.flagValue, tt.flagChanged, tt.appCfg))
		})
	}
}

func TestResolveOutputFormat(t *testing.T) {
	orig := outputFormat
	t.Cleanup(func() { outputFormat = orig })

	tests := []struct {
		name    string
		flag    string
		appCfg  *config.Config
		allowed []output.Format
		want    output.Format
		wantErr bool
	}{
		{"default", "", nil, textFormats, output.FormatSimple, false},
		{"flag", "json", nil, textFormats, output.FormatJSON, false},
		{"flag not allowed", "tree", nil, textFormats, "", true},
		{"unknown flag", "xml", nil, batchFormats, "", true},
		{"config default", "", &config.Config{DefaultOutput: "yaml"}, textFormats, output.FormatYAML, false},
		{"config default not allowed falls back", "", &config.Config{DefaultOutput: "table"}, eventFormats, output.FormatSimple, false},
		{"flag beats config", "json", &config.Config{DefaultOutput: "yaml"}, textFormats, output.FormatJSON, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputFormat = tt.flag
			got, err := resolveOutputFormat(tt.allowed, tt.appCfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, exit.ValidationError, exitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckSettings(t *testing.T) {
	assert.NoError(t, checkSettings(truncate.Thresholds{Chars: 10}, output.Labels{}))
	assert.NoError(t, checkSettings(truncate.Thresholds{Chars: -1, Words: 3}, output.Labels{}), "warnings only")

	err := checkSettings(truncate.Thresholds{Chars: 10}, output.Labels{More: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more-label")
	assert.Equal(t, exit.ValidationError, exitCode(err))
}

func TestReadEntries(t *testing.T) {
	setupTestConfig(t)
	ctx := context.Background()
	dir := t.TempDir()

	txt := filepath.Join(dir, "post.txt")
	require.NoError(t, os.WriteFile(txt, []byte("line one\nline two\n"), 0600))
	doc := filepath.Join(dir, "posts.yaml")
	require.NoError(t, os.WriteFile(doc, []byte("posts:\n  a: first\n  b: second\n"), 0600))

	t.Run("argument", func(t *testing.T) {
		entries, err := readEntries(ctx, []string{"hello"}, "", "")
		require.NoError(t, err)
		assert.Equal(t, []*models.Entry{{Text: "hello"}}, entries)
	})

	t.Run("argument and file", func(t *testing.T) {
		_, err := readEntries(ctx, []string{"hello"}, txt, "")
		require.Error(t, err)
		assert.Equal(t, exit.ValidationError, exitCode(err))
	})

	t.Run("text file keeps content", func(t *testing.T) {
		entries, err := readEntries(ctx, nil, txt, "")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "line one\nline two\n", entries[0].Text)
		assert.Empty(t, entries[0].Key)
	})

	t.Run("yaml document", func(t *testing.T) {
		entries, err := readEntries(ctx, nil, doc, models.FormatAuto)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "/posts/a", entries[0].Key)
		assert.Equal(t, "second", entries[1].Text)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := readEntries(ctx, nil, doc, "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readEntries(ctx, nil, filepath.Join(dir, "nope.txt"), "")
		require.Error(t, err)
	})

	t.Run("stdin dash", func(t *testing.T) {
		var entries []*models.Entry
		err := testutil.WithStdin("from stdin", func() error {
			var readErr error
			entries, readErr = readEntries(ctx, nil, stdinPath, "")
			return readErr
		})
		require.NoError(t, err)
		assert.Equal(t, []*models.Entry{{Text: "from stdin"}}, entries)
	})

	t.Run("stdin rejects structured format", func(t *testing.T) {
		_, err := readEntries(ctx, nil, stdinPath, models.FormatYAML)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stdin only supports text")
	})

	t.Run("interactive without input", func(t *testing.T) {
		isInteractive = func() bool { return true }
		t.Cleanup(func() { isInteractive = func() bool { return false } })

		_, err := readEntries(ctx, nil, "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no input")
	})
}

func TestParseFile_LogsEntries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	orig := logger.Log
	logger.Log = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Log = orig })

	path := writeFile(t, "post.yaml", "title: Hello\nbody: Long text\n")
	entries, err := parseFile(context.Background(), path, models.FormatAuto)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	parsed := logs.FilterMessage("Parsed entry").All()
	require.Len(t, parsed, 2)
	assert.Equal(t, `/body: "Long text"`, parsed[0].ContextMap()["entry"])
	assert.Equal(t, `/title: "Hello"`, parsed[1].ContextMap()["entry"])
}

func TestIsBatch(t *testing.T) {
	assert.False(t, isBatch([]*models.Entry{{Text: "a"}}))
	assert.True(t, isBatch([]*models.Entry{{Key: "/a", Text: "a"}}))
	assert.True(t, isBatch([]*models.Entry{{Text: "a"}, {Text: "b"}}))
	assert.True(t, isBatch(nil))
}

func TestWrapContextError(t *testing.T) {
	orig := operationTimeout
	operationTimeout = 5 * time.Second
	t.Cleanup(func() { operationTimeout = orig })

	assert.NoError(t, wrapContextError(nil))

	err := wrapContextError(fmt.Errorf("get: %w", context.DeadlineExceeded))
	assert.EqualError(t, err, "✗ operation timed out after 5s: consider increasing --timeout")
	assert.Equal(t, exit.ConnectionError, exitCode(err))

	assert.EqualError(t, wrapContextError(context.Canceled), "✗ operation canceled by user")

	plain := fmt.Errorf("other")
	assert.Equal(t, plain, wrapContextError(plain))
}
