package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kazuma-desu/showmore/pkg/client"
	"github.com/kazuma-desu/showmore/pkg/config"
	"github.com/kazuma-desu/showmore/pkg/exit"
	"github.com/kazuma-desu/showmore/pkg/logger"
	"github.com/kazuma-desu/showmore/pkg/models"
	"github.com/kazuma-desu/showmore/pkg/output"
	"github.com/kazuma-desu/showmore/pkg/parsers"
	"github.com/kazuma-desu/showmore/pkg/truncate"
	"github.com/kazuma-desu/showmore/pkg/validator"
)

// stdinPath is the --file value that reads from stdin.
const stdinPath = "-"

// isInteractive is swapped out in tests, where stdin may or may not be a terminal.
var isInteractive = output.IsInteractive

var (
	textFormats  = []output.Format{output.FormatSimple, output.FormatJSON, output.FormatYAML, output.FormatTable}
	batchFormats = output.AllFormats()
	eventFormats = []output.Format{output.FormatSimple, output.FormatJSON}
)

func loadAppConfig() *config.Config {
	appCfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Debugw("Failed to load config, using defaults", "error", err)
		return nil
	}
	return appCfg
}

// addTruncateFlags registers the threshold and label flags shared by
// truncate, get, watch and validate.
func addTruncateFlags(cmd *cobra.Command, th *truncate.Thresholds, more, less *string) {
	cmd.Flags().IntVar(&th.Chars, "chars", 0,
		"maximum visible characters, counted in UTF-16 code units (0 disables; overrides config)")
	cmd.Flags().IntVar(&th.Words, "words", 0,
		"maximum visible space-separated words (0 disables; ignored when --chars is set)")
	cmd.Flags().IntVar(&th.LineBreaks, "line-breaks", 0,
		"maximum visible lines, applied before chars and words (0 disables)")
	cmd.Flags().StringVar(more, "more-label", "",
		fmt.Sprintf("label shown after collapsed text (default %q)", output.DefaultMoreLabel))
	cmd.Flags().StringVar(less, "less-label", "",
		fmt.Sprintf("label shown after expanded text (default %q)", output.DefaultLessLabel))
}

// resolveThresholds merges flag values over the config file, field by field.
func resolveThresholds(cmd *cobra.Command, flags truncate.Thresholds, appCfg *config.Config) truncate.Thresholds {
	var th truncate.Thresholds
	if appCfg != nil {
		th = appCfg.Thresholds
	}
	if cmd.Flags().Changed("chars") {
		th.Chars = flags.Chars
	}
	if cmd.Flags().Changed("words") {
		th.Words = flags.Words
	}
	if cmd.Flags().Changed("line-breaks") {
		th.LineBreaks = flags.LineBreaks
	}
	return th
}

// resolveLabels picks flag > config > built-in default for each label.
func resolveLabels(cmd *cobra.Command, more, less string, appCfg *config.Config) output.Labels {
	var labels output.Labels
	if appCfg != nil {
		labels = output.Labels{More: appCfg.Labels.More, Less: appCfg.Labels.Less}
	}
	if cmd.Flags().Changed("more-label") {
		labels.More = more
	}
	if cmd.Flags().Changed("less-label") {
		labels.Less = less
	}
	return labels
}

func resolveStrictOption(flagValue, flagChanged bool, appCfg *config.Config) bool {
	if flagChanged {
		return flagValue
	}
	if appCfg != nil {
		return appCfg.Strict
	}
	return false
}

// resolveOutputFormat validates -o against the formats a command supports.
// A config default the command cannot render falls back to simple.
func resolveOutputFormat(allowed []output.Format, appCfg *config.Config) (output.Format, error) {
	if outputFormat != "" {
		f := output.Format(outputFormat)
		if err := output.ValidateFormat(outputFormat, output.FormatNames(allowed...)); err != nil {
			return "", exit.WithCode(exit.ValidationError, err)
		}
		return f, nil
	}
	if appCfg != nil && appCfg.DefaultOutput != "" {
		f := output.Format(appCfg.DefaultOutput)
		if slices.Contains(allowed, f) {
			return f, nil
		}
		logger.Log.Debugw("Configured default output not supported here, using simple",
			"default-output", appCfg.DefaultOutput)
	}
	return output.FormatSimple, nil
}

// checkSettings runs the validator over thresholds and labels. Warnings are
// logged; errors stop the command.
func checkSettings(th truncate.Thresholds, labels output.Labels) error {
	result := validator.NewValidator(false).Validate(th, validator.Labels{More: labels.More, Less: labels.Less}, nil)
	for _, issue := range result.Issues {
		if issue.Level == validator.LevelError {
			return invalidInput("invalid %s: %s", issue.Key, issue.Message)
		}
		logger.Log.Warnw(issue.Message, "setting", issue.Key)
	}
	return nil
}

// readEntries loads the text to truncate from --file, the positional
// argument, or stdin, in that order.
func readEntries(ctx context.Context, args []string, filePath string, format models.FormatType) ([]*models.Entry, error) {
	switch {
	case filePath != "" && len(args) > 0:
		return nil, invalidInput("pass either a text argument or --file, not both")
	case filePath == stdinPath:
		return readStdin(format)
	case filePath != "":
		return parseFile(ctx, filePath, format)
	case len(args) > 0:
		return []*models.Entry{{Text: args[0]}}, nil
	case isInteractive():
		return nil, invalidInput("no input: pass text as an argument, use --file, or pipe text on stdin")
	default:
		return readStdin(format)
	}
}

func readStdin(format models.FormatType) ([]*models.Entry, error) {
	if format != "" && format != models.FormatAuto && format != models.FormatText {
		return nil, invalidInput("stdin only supports text input, got --format %s", format)
	}
	logger.Log.Debugw("Reading text from stdin")
	return parsers.ParseText(os.Stdin)
}

func parseFile(ctx context.Context, filePath string, format models.FormatType) ([]*models.Entry, error) {
	if format != "" && !format.IsValid() {
		return nil, invalidInput("invalid format: %s (use auto, text, yaml, json, toml)", format)
	}

	registry := parsers.NewRegistry()
	if format == "" || format == models.FormatAuto {
		detected, err := registry.DetectFormat(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to detect format: %w", err)
		}
		format = detected
		logger.Log.Debugw("Auto-detected format", "format", format)
	}

	parser, err := registry.GetParser(format)
	if err != nil {
		return nil, err
	}

	logVerbose("Parsing input", "file", filePath, "format", parser.FormatName())
	entries, err := parser.Parse(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}
	for _, e := range entries {
		logger.Log.Debugw("Parsed entry", zap.Stringer("entry", e))
	}
	return entries, nil
}

// isBatch reports whether entries come from a keyed source and should be
// printed as a list rather than a single text.
func isBatch(entries []*models.Entry) bool {
	return len(entries) != 1 || entries[0].Key != ""
}

func getOperationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), operationTimeout)
}

func wrapContextError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return exit.WithCode(exit.ConnectionError,
			fmt.Errorf("✗ operation timed out after %v: consider increasing --timeout", operationTimeout))
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("✗ operation canceled by user")
	default:
		return err
	}
}

// newEtcdClient connects using --context or the current context.
// Tests replace it to inject a mock.
var newEtcdClient = func() (client.EtcdClient, func(), error) {
	cfg, err := config.GetEtcdConfigWithContext(contextName)
	if err != nil {
		return nil, nil, wrapNotConnectedError(err)
	}

	etcdClient, err := client.NewClient(cfg)
	if err != nil {
		return nil, nil, exit.WithCode(exit.ConnectionError, fmt.Errorf("failed to create etcd client: %w", err))
	}

	cleanup := func() {
		if err := etcdClient.Close(); err != nil {
			logger.Log.Debugw("Failed to close etcd client", "error", err)
		}
	}

	return etcdClient, cleanup, nil
}

func isQuietOutput() bool {
	return output.Format(outputFormat).IsStructured()
}

func logVerbose(msg string, keyvals ...any) {
	if !isQuietOutput() {
		logger.Log.Infow(msg, keyvals...)
	}
}
