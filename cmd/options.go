package cmd

import (
	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Print the list of global flags inherited by all commands",
	Long:  `Print the list of global command-line options (flags) that can be passed to any command.`,
	Args:  cobra.NoArgs,
	Run:   runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, _ []string) {
	cmd.Print(`The following options can be passed to any command:

    --context='':
        The name of the etcd context to use (overrides current-context)

    --log-level='':
        Log level (debug, info, warn, error) - overrides config file

    -o, --output='':
        Output format (simple, json, yaml, table, tree) - overrides
        default-output from the config file; each command accepts a subset

    --timeout=30s:
        Timeout for etcd operations and file parsing (e.g. 10s, 1m)

The following options are shared by truncate, get, watch and validate:

    --chars=0:
        Maximum visible characters, counted in UTF-16 code units

    --words=0:
        Maximum visible words, split on single spaces (ignored with --chars)

    --line-breaks=0:
        Maximum visible lines, applied before chars and words

    --more-label='>>' / --less-label='<<':
        Toggle labels printed after collapsed and expanded text
`)
}
