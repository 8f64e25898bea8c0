//go:build integration

package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazuma-desu/showmore/pkg/client"
	"github.com/kazuma-desu/showmore/pkg/exit"
	"github.com/kazuma-desu/showmore/pkg/models"
)

func TestGetIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	endpoint := setupEtcdContainerForCmd(t)
	setupTestContext(t, endpoint)
	t.Logf("using config %s", configPath(t))

	seedEtcd(t, endpoint, map[string]string{
		"/posts/1/body": "Test element Test element",
		"/posts/2/body": "line one\nline two\nline three",
		"/users/1/bio":  "short",
	})

	t.Run("single key", func(t *testing.T) {
		out, err := executeCommand(t, "get", "/posts/1/body", "--chars", "6")
		require.NoError(t, err)
		assert.Equal(t, "/posts/1/body\nTest e >>\n\n", out)
	})

	t.Run("prefix as json", func(t *testing.T) {
		out, err := executeCommand(t, "get", "/posts/", "--prefix", "--line-breaks", "1", "-o", "json")
		require.NoError(t, err)

		var got []*models.TruncatedEntry
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Test element Test element", got[0].Visible)
		assert.False(t, got[0].Truncated())
		assert.Equal(t, "line one", got[1].Visible)
		assert.Equal(t, " line two\nline three", got[1].Hidden)
	})

	t.Run("descending with limit", func(t *testing.T) {
		out, err := executeCommand(t, "get", "/", "--prefix", "--order", "DESCEND", "--limit", "1", "-o", "json")
		require.NoError(t, err)

		var got []*models.TruncatedEntry
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "/users/1/bio", got[0].Key)
	})

	t.Run("count only", func(t *testing.T) {
		out, err := executeCommand(t, "get", "/", "--prefix", "--count-only")
		require.NoError(t, err)
		assert.Equal(t, "3\n", out)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := executeCommand(t, "get", "/nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, client.ErrKeyNotFound)
		assert.Equal(t, exit.KeyNotFound, exitCode(err))
	})

	t.Run("unknown context", func(t *testing.T) {
		_, err := executeCommand(t, "get", "/posts/1/body", "--context", "other")
		require.Error(t, err)
		assert.Equal(t, exit.ConnectionError, exitCode(err))
	})
}
