package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kazuma-desu/showmore/pkg/follow"
	"github.com/kazuma-desu/showmore/pkg/logger"
	"github.com/kazuma-desu/showmore/pkg/models"
	"github.com/kazuma-desu/showmore/pkg/output"
	"github.com/kazuma-desu/showmore/pkg/truncate"
)

var (
	truncateOpts models.TruncateOptions

	truncateCmd = &cobra.Command{
		Use:   "truncate [text]",
		Short: "Split text into a visible part and a hidden remainder",
		Long: `Truncate text by line breaks, then by characters or words.

Input is the text argument, a file (-f), or stdin. Plain text files are a
single text. YAML and JSON documents are flattened to /path keys and every
string value is truncated on its own.

Characters are counted in UTF-16 code units. Words are split on single
spaces. When both --chars and --words are set, --chars wins.`,
		Example: `  # Keep the first 6 characters
  showmore truncate "Test element Test element" --chars 6

  # Keep two lines, show the expanded state with a custom label
  showmore truncate -f post.txt --line-breaks 2 --expand --less-label "Show less"

  # Truncate every string in a document
  showmore truncate -f posts.yaml --words 20 -o table

  # Re-print a draft every time it is saved
  showmore truncate -f draft.md --line-breaks 5 --follow

  # Pipe text in and get JSON out
  echo "one two three" | showmore truncate --words 2 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTruncate,
	}
)

func init() {
	rootCmd.AddCommand(truncateCmd)

	truncateCmd.Flags().StringVarP(&truncateOpts.FilePath, "file", "f", "",
		"read text from a file (.txt, .yaml, .yml, .json, .toml), or - for stdin")
	truncateCmd.Flags().StringVar((*string)(&truncateOpts.Format), "format", "",
		"input format: auto, text, yaml, json, toml (auto-detected from the file extension)")
	truncateCmd.Flags().BoolVar(&truncateOpts.Expand, "expand", false,
		"print the expanded state (full text and the less label)")
	truncateCmd.Flags().BoolVar(&truncateOpts.Follow, "follow", false,
		"keep running and re-truncate --file every time it changes")
	addTruncateFlags(truncateCmd, &truncateOpts.Thresholds, &truncateOpts.MoreLabel, &truncateOpts.LessLabel)

	registerFileCompletion(truncateCmd, "file")
}

func runTruncate(cmd *cobra.Command, args []string) error {
	if truncateOpts.Follow && (truncateOpts.FilePath == "" || truncateOpts.FilePath == stdinPath) {
		return invalidInput("--follow requires --file with a file path")
	}

	appCfg := loadAppConfig()

	th := resolveThresholds(cmd, truncateOpts.Thresholds, appCfg)
	labels := resolveLabels(cmd, truncateOpts.MoreLabel, truncateOpts.LessLabel, appCfg)
	if err := checkSettings(th, labels); err != nil {
		return err
	}

	entries, err := readTruncateInput(args)
	if err != nil {
		return err
	}

	allowed := textFormats
	if isBatch(entries) || truncateOpts.Follow {
		allowed = batchFormats
	}
	format, err := resolveOutputFormat(allowed, appCfg)
	if err != nil {
		return err
	}

	opts := output.RenderOptions{Format: format, Labels: labels, Expand: truncateOpts.Expand}
	if err := printTruncated(entries, th, opts); err != nil {
		return err
	}

	if !truncateOpts.Follow {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logVerbose("Following file", "file", truncateOpts.FilePath)
	return follow.Watch(ctx, truncateOpts.FilePath, func() error {
		entries, err := readTruncateInput(nil)
		if err != nil {
			// editors can leave a half-written file behind; wait for the next save
			logger.Log.Warnw("Failed to re-read file", "file", truncateOpts.FilePath, "error", err)
			return nil
		}
		if format == output.FormatSimple {
			fmt.Println(output.Divider(40))
		}
		return printTruncated(entries, th, opts)
	})
}

func readTruncateInput(args []string) ([]*models.Entry, error) {
	ctx, cancel := getOperationContext()
	defer cancel()

	entries, err := readEntries(ctx, args, truncateOpts.FilePath, truncateOpts.Format)
	if err != nil {
		return nil, wrapContextError(err)
	}
	return entries, nil
}

func printTruncated(entries []*models.Entry, th truncate.Thresholds, opts output.RenderOptions) error {
	logVerbose("Truncating", "entries", len(entries), "thresholds", th.String())

	if !isBatch(entries) && opts.Format != output.FormatTree {
		return output.PrintResult(truncate.Truncate(entries[0].Text, th), opts)
	}
	return output.PrintEntries(models.TruncateAll(entries, th), opts)
}
