package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazuma-desu/showmore/pkg/config"
	"github.com/kazuma-desu/showmore/pkg/output"
)

func TestCompletionCommand(t *testing.T) {
	setupTestConfig(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := executeCommand(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "showmore")
		})
	}

	_, err := executeCommand(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestCompleteContextNames(t *testing.T) {
	setupTestConfig(t)
	require.NoError(t, config.SetContext("zeta", &config.ContextConfig{Endpoints: []string{"http://z:2379"}}, false))
	require.NoError(t, config.SetContext("alpha", &config.ContextConfig{Endpoints: []string{"http://a:2379"}}, false))

	names, directive := completeContextNames(nil, nil, "")
	assert.Equal(t, []string{"alpha", "zeta"}, names)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	names, _ = CompleteContextNamesForArg(nil, []string{"alpha"}, "")
	assert.Nil(t, names)
}

func TestCompletionHelpers(t *testing.T) {
	formats, _ := completeOutputFormats(nil, nil, "")
	assert.Equal(t, output.FormatNames(), formats)

	levels, _ := completeLogLevels(nil, nil, "")
	assert.Equal(t, []string{"debug", "info", "warn", "error"}, levels)

	exts, directive := completeInputFiles(nil, nil, "")
	assert.Contains(t, exts, "yaml")
	assert.Equal(t, cobra.ShellCompDirectiveFilterFileExt, directive)

	keys, _ := completeSettableKeys(nil, nil, "")
	assert.Equal(t, config.Settable, keys)
	keys, _ = completeSettableKeys(nil, []string{"labels.more"}, "")
	assert.Nil(t, keys)
}
