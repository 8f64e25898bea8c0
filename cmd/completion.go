package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kazuma-desu/showmore/pkg/config"
	"github.com/kazuma-desu/showmore/pkg/output"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for showmore.

To load completions:

Bash:
  $ showmore completion bash > /etc/bash_completion.d/showmore

Zsh:
  # If shell completion is not already enabled, enable it by adding:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc
  $ showmore completion zsh > "${fpath[1]}/_showmore"

Fish:
  $ showmore completion fish > ~/.config/fish/completions/showmore.fish

PowerShell:
  PS> showmore completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:                  runCompletion,
}

func init() {
	rootCmd.AddCommand(completionCmd)

	_ = rootCmd.RegisterFlagCompletionFunc("context", completeContextNames)
	_ = rootCmd.RegisterFlagCompletionFunc("output", completeOutputFormats)
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", completeLogLevels)
}

func registerFileCompletion(cmd *cobra.Command, flagName string) {
	_ = cmd.RegisterFlagCompletionFunc(flagName, completeInputFiles)
}

func completeInputFiles(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"txt", "md", "yaml", "yml", "json", "toml"}, cobra.ShellCompDirectiveFilterFileExt
}

func completeOutputFormats(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return output.FormatNames(), cobra.ShellCompDirectiveNoFileComp
}

func completeLogLevels(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
}

func completeSettableKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return config.Settable, cobra.ShellCompDirectiveNoFileComp
}

func runCompletion(cmd *cobra.Command, args []string) error {
	switch args[0] {
	case "bash":
		return cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		return cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
	}
	return nil
}

// completeContextNames returns available context names for shell completion
func completeContextNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return cfg.ContextNames(), cobra.ShellCompDirectiveNoFileComp
}

// CompleteContextNamesForArg completes the first positional argument with context names
func CompleteContextNamesForArg(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeContextNames(nil, nil, "")
}
