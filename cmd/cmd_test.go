package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kazuma-desu/showmore/pkg/client"
	"github.com/kazuma-desu/showmore/pkg/config"
	"github.com/kazuma-desu/showmore/pkg/testutil"
)

// setupTestConfig points the config file at a fresh temp dir and makes
// stdin non-interactive so prompts never block.
func setupTestConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(config.EnvConfigPath, path)

	origInteractive := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = origInteractive })

	return path
}

// useMockClient makes get and watch talk to mock instead of etcd.
func useMockClient(t *testing.T, mock *client.MockClient) {
	t.Helper()

	orig := newEtcdClient
	newEtcdClient = func() (client.EtcdClient, func(), error) {
		return mock, func() { _ = mock.Close() }, nil
	}
	t.Cleanup(func() { newEtcdClient = orig })
}

// resetFlags restores every flag of cmd and its children to its default so
// values do not leak between executions of the shared rootCmd.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// executeCommand runs showmore with args and returns what it printed to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	rootCmd.SetArgs(args)
	return testutil.CaptureStdout(rootCmd.Execute)
}
