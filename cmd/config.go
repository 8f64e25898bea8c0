package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kazuma-desu/showmore/pkg/config"
	"github.com/kazuma-desu/showmore/pkg/exit"
	"github.com/kazuma-desu/showmore/pkg/output"
)

const errFailedToLoadConfiguration = "failed to load configuration: %w"

var (
	setContextOpts struct {
		ctx         config.ContextConfig
		makeCurrent bool
	}
	deleteContextYes bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage showmore configuration",
	Long: `Manage default thresholds, labels, and etcd contexts.

The config file lives at ~/.config/showmore/config.yaml, or at the path in
$SHOWMORECONFIG.`,
}

var getContextsCmd = &cobra.Command{
	Use:   "get-contexts",
	Short: "List all available contexts",
	Args:  cobra.NoArgs,
	RunE:  runGetContexts,
}

var currentContextCmd = &cobra.Command{
	Use:   "current-context",
	Short: "Display current active context",
	Args:  cobra.NoArgs,
	RunE:  runCurrentContext,
}

var setContextCmd = &cobra.Command{
	Use:   "set-context <context-name>",
	Short: "Add or update an etcd context",
	Long: `Add or update a named etcd connection used by get and watch.

Without --endpoints, the endpoints are prompted for when running in a terminal.`,
	Example: `  showmore config set-context local --endpoints http://localhost:2379
  showmore config set-context prod --endpoints https://etcd-1:2379,https://etcd-2:2379 \
    --cacert ca.pem --username reader --use`,
	Args: cobra.ExactArgs(1),
	RunE: runSetContext,
}

var useContextCmd = &cobra.Command{
	Use:               "use-context <context-name>",
	Short:             "Switch to a different context",
	Args:              cobra.ExactArgs(1),
	RunE:              runUseContext,
	ValidArgsFunction: CompleteContextNamesForArg,
}

var deleteContextCmd = &cobra.Command{
	Use:               "delete-context <context-name>",
	Short:             "Delete a context",
	Args:              cobra.ExactArgs(1),
	RunE:              runDeleteContext,
	ValidArgsFunction: CompleteContextNamesForArg,
}

var viewConfigCmd = &cobra.Command{
	Use:   "view",
	Short: "View current configuration",
	Args:  cobra.NoArgs,
	RunE:  runViewConfig,
}

var setConfigCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Keys: " + strings.Join(config.Settable, ", "),
	Example: `  showmore config set thresholds.chars 120
  showmore config set labels.more "Show more"
  showmore config set log-level debug`,
	Args:              cobra.ExactArgs(2),
	RunE:              runSetConfig,
	ValidArgsFunction: completeSettableKeys,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(getContextsCmd)
	configCmd.AddCommand(currentContextCmd)
	configCmd.AddCommand(setContextCmd)
	configCmd.AddCommand(useContextCmd)
	configCmd.AddCommand(deleteContextCmd)
	configCmd.AddCommand(setConfigCmd)
	configCmd.AddCommand(viewConfigCmd)

	f := setContextCmd.Flags()
	f.StringSliceVar(&setContextOpts.ctx.Endpoints, "endpoints", nil, "comma-separated etcd endpoints")
	f.StringVar(&setContextOpts.ctx.Username, "username", "", "username for etcd authentication")
	f.StringVar(&setContextOpts.ctx.Password, "password", "", "password for etcd authentication (stored in plain text)")
	f.StringVar(&setContextOpts.ctx.CACert, "cacert", "", "path to CA certificate")
	f.StringVar(&setContextOpts.ctx.Cert, "cert", "", "path to client certificate")
	f.StringVar(&setContextOpts.ctx.Key, "key", "", "path to client key")
	f.BoolVar(&setContextOpts.ctx.InsecureSkipTLSVerify, "insecure-skip-tls-verify", false,
		"skip server certificate verification")
	f.BoolVar(&setContextOpts.makeCurrent, "use", false, "make this the current context")

	deleteContextCmd.Flags().BoolVarP(&deleteContextYes, "yes", "y", false, "delete without asking for confirmation")
}

func runGetContexts(_ *cobra.Command, _ []string) error {
	format, err := resolveOutputFormat([]output.Format{output.FormatSimple, output.FormatJSON, output.FormatYAML, output.FormatTable}, nil)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf(errFailedToLoadConfiguration, err)
	}

	if len(cfg.Contexts) == 0 {
		output.Info("No contexts found. Use 'showmore config set-context <context-name>' to create one.")
		return nil
	}

	if err := output.PrintContexts(configView(cfg), format); err != nil {
		return fmt.Errorf("failed to print contexts: %w", err)
	}
	return nil
}

func runCurrentContext(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf(errFailedToLoadConfiguration, err)
	}

	if cfg.CurrentContext == "" {
		output.Info("No current context set. Use 'showmore config use-context <context-name>'.")
		return nil
	}

	fmt.Println(cfg.CurrentContext)
	return nil
}

func runSetContext(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctxCfg := setContextOpts.ctx

	if len(ctxCfg.Endpoints) == 0 {
		if !isInteractive() {
			return invalidInput("--endpoints is required when not running in a terminal")
		}
		endpoints, err := promptEndpoints(name)
		if err != nil {
			return err
		}
		ctxCfg.Endpoints = endpoints
	}

	if err := config.SetContext(name, &ctxCfg, setContextOpts.makeCurrent); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}

	output.Success(fmt.Sprintf("Context '%s' saved", name))
	if ctxCfg.Password != "" {
		output.PrintSecurityWarning()
	}
	return nil
}

func promptEndpoints(name string) ([]string, error) {
	var raw string
	err := huh.NewInput().
		Title(fmt.Sprintf("etcd endpoints for %q", name)).
		Description("Comma-separated, e.g. http://localhost:2379").
		Value(&raw).
		Validate(func(s string) error {
			if len(splitEndpoints(s)) == 0 {
				return errors.New("at least one endpoint is required")
			}
			return nil
		}).
		Run()
	if err != nil {
		return nil, fmt.Errorf("prompt aborted: %w", err)
	}
	return splitEndpoints(raw), nil
}

func splitEndpoints(s string) []string {
	var endpoints []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			endpoints = append(endpoints, part)
		}
	}
	return endpoints
}

func runUseContext(_ *cobra.Command, args []string) error {
	ctxName := args[0]

	if err := config.UseContext(ctxName); err != nil {
		return fmt.Errorf("failed to switch context: %w", err)
	}

	output.Success(fmt.Sprintf("Switched to context '%s'", ctxName))
	return nil
}

func runDeleteContext(_ *cobra.Command, args []string) error {
	ctxName := args[0]

	if !deleteContextYes {
		if !isInteractive() {
			return invalidInput("refusing to delete context '%s' without --yes", ctxName)
		}
		confirmed, err := confirm(fmt.Sprintf("Delete context %q?", ctxName))
		if err != nil {
			return err
		}
		if !confirmed {
			output.Info("Aborted")
			return nil
		}
	}

	if err := config.DeleteContext(ctxName); err != nil {
		return fmt.Errorf("failed to delete context: %w", err)
	}

	output.Success(fmt.Sprintf("Context '%s' deleted", ctxName))
	return nil
}

func confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("prompt aborted: %w", err)
	}
	return ok, nil
}

func runSetConfig(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if key == "default-output" {
		if _, err := output.ParseFormat(value); err != nil {
			return exit.WithCode(exit.ValidationError, err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf(errFailedToLoadConfiguration, err)
	}

	if err := config.SetValue(cfg, key, value); err != nil {
		return exit.WithCode(exit.ValidationError, err)
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	output.Success(fmt.Sprintf("Configuration updated: %s = %s", key, value))
	return nil
}

func runViewConfig(_ *cobra.Command, _ []string) error {
	format, err := resolveOutputFormat([]output.Format{output.FormatSimple, output.FormatJSON, output.FormatYAML}, nil)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf(errFailedToLoadConfiguration, err)
	}

	if err := output.PrintConfigView(configView(cfg), format); err != nil {
		return fmt.Errorf("failed to print configuration: %w", err)
	}
	return nil
}

// configView strips secrets before anything is printed.
func configView(cfg *config.Config) *output.ConfigView {
	contexts := make(map[string]*output.ContextView, len(cfg.Contexts))
	for name, ctx := range cfg.Contexts {
		contexts[name] = &output.ContextView{
			Username:  ctx.Username,
			Endpoints: ctx.Endpoints,
		}
	}

	return &output.ConfigView{
		CurrentContext: cfg.CurrentContext,
		LogLevel:       cfg.LogLevel,
		DefaultOutput:  cfg.DefaultOutput,
		Strict:         cfg.Strict,
		Thresholds:     cfg.Thresholds,
		Labels:         output.Labels{More: cfg.Labels.More, Less: cfg.Labels.Less},
		Contexts:       contexts,
	}
}
