package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kazuma-desu/showmore/pkg/exit"
	"github.com/kazuma-desu/showmore/pkg/models"
	"github.com/kazuma-desu/showmore/pkg/output"
	"github.com/kazuma-desu/showmore/pkg/validator"
)

var (
	validateOpts models.ValidateOptions

	validateCmd = &cobra.Command{
		Use:   "validate [-f FILE]",
		Short: "Check thresholds, labels and input documents",
		Long: `Check the effective truncation settings without printing any text.

Settings are merged from flags and the config file, then checked:
  - negative thresholds (treated as disabled)
  - --words set together with --chars (words is ignored)
  - no threshold at all (text is never truncated)
  - blank toggle labels

With -f, every entry of the document is checked too: duplicate keys,
empty text, very large text, and character limits that split a character
in two.`,
		Example: `  # Check the config file settings
  showmore validate

  # Check settings against a document, failing on warnings
  showmore validate -f posts.yaml --chars 120 --strict

  # JSON report for CI
  showmore validate -f posts.yaml -o json`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateOpts.FilePath, "file", "f", "",
		"document whose entries are checked too")
	validateCmd.Flags().StringVar((*string)(&validateOpts.Format), "format", "",
		"input format: auto, text, yaml, json, toml")
	validateCmd.Flags().BoolVar(&validateOpts.Strict, "strict", false,
		"treat validation warnings as errors (overrides config)")
	addTruncateFlags(validateCmd, &validateOpts.Thresholds, &validateOpts.MoreLabel, &validateOpts.LessLabel)

	registerFileCompletion(validateCmd, "file")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	appCfg := loadAppConfig()

	format, err := resolveOutputFormat(eventFormats, appCfg)
	if err != nil {
		return err
	}

	th := resolveThresholds(cmd, validateOpts.Thresholds, appCfg)
	labels := resolveLabels(cmd, validateOpts.MoreLabel, validateOpts.LessLabel, appCfg)
	strict := resolveStrictOption(validateOpts.Strict, cmd.Flags().Changed("strict"), appCfg)

	var entries []*models.Entry
	if validateOpts.FilePath != "" {
		ctx, cancel := getOperationContext()
		defer cancel()

		entries, err = readEntries(ctx, nil, validateOpts.FilePath, validateOpts.Format)
		if err != nil {
			return err
		}
		logVerbose(fmt.Sprintf("Parsed %d entries", len(entries)))
	}

	result := validator.NewValidator(strict).Validate(th, validator.Labels{More: labels.More, Less: labels.Less}, entries)

	if format == output.FormatJSON {
		if err := output.PrintValidationJSON(result); err != nil {
			return err
		}
	} else {
		output.PrintThresholds(th, labels)
		fmt.Println()
		output.PrintValidationResult(result, strict)
	}

	if !result.Valid {
		return exit.WithCode(exit.ValidationError, fmt.Errorf("validation failed"))
	}
	return nil
}
