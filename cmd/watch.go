package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kazuma-desu/showmore/pkg/client"
	"github.com/kazuma-desu/showmore/pkg/logger"
	"github.com/kazuma-desu/showmore/pkg/models"
	"github.com/kazuma-desu/showmore/pkg/output"
	"github.com/kazuma-desu/showmore/pkg/truncate"
)

var (
	watchOpts struct {
		truncate models.TruncateOptions
		prefix   bool
		rev      int64
	}

	watchCmd = &cobra.Command{
		Use:   "watch <key>",
		Short: "Re-truncate text every time it changes in etcd",
		Long: `Watch a key or prefix and print the truncated text on every change.

Each PUT is truncated with the same thresholds and printed; a DELETE is
reported without text. Use -o json for one JSON object per line.
Press Ctrl+C to stop watching.`,
		Example: `  # Follow a post body, collapsed to 3 lines
  showmore watch /posts/42/body --line-breaks 3

  # Every post under a prefix as JSON lines
  showmore watch /posts/ --prefix --words 30 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}
)

// watchUpdate is the JSON line printed for every event.
type watchUpdate struct {
	Type     client.WatchEventType `json:"type"`
	Key      string                `json:"key"`
	Revision int64                 `json:"revision"`
	*truncate.Result
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchOpts.prefix, "prefix", false,
		"watch all keys with the given prefix")
	watchCmd.Flags().Int64Var(&watchOpts.rev, "rev", 0,
		"revision to start watching from (0 = current)")
	watchCmd.Flags().BoolVar(&watchOpts.truncate.Expand, "expand", false,
		"print the expanded state (full text and the less label)")
	addTruncateFlags(watchCmd, &watchOpts.truncate.Thresholds, &watchOpts.truncate.MoreLabel, &watchOpts.truncate.LessLabel)
}

func runWatch(cmd *cobra.Command, args []string) error {
	key := args[0]

	if watchOpts.rev < 0 {
		return invalidInput("invalid --rev: must be non-negative")
	}

	appCfg := loadAppConfig()
	th := resolveThresholds(cmd, watchOpts.truncate.Thresholds, appCfg)
	labels := resolveLabels(cmd, watchOpts.truncate.MoreLabel, watchOpts.truncate.LessLabel, appCfg)
	if err := checkSettings(th, labels); err != nil {
		return err
	}

	format, err := resolveOutputFormat(eventFormats, appCfg)
	if err != nil {
		return err
	}

	etcdClient, cleanup, err := newEtcdClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			output.Info("Stopping watch...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if format == output.FormatSimple {
		if watchOpts.prefix {
			output.Info(fmt.Sprintf("Watching keys with prefix: %s", key))
		} else {
			output.Info(fmt.Sprintf("Watching key: %s", key))
		}
		fmt.Println("Press Ctrl+C to stop")
		fmt.Println()
	}

	w := &watchPrinter{
		th:   th,
		opts: output.RenderOptions{Format: format, Labels: labels, Expand: watchOpts.truncate.Expand},
	}

	opts := &client.WatchOptions{Prefix: watchOpts.prefix, Revision: watchOpts.rev}
	for resp := range etcdClient.Watch(ctx, key, opts) {
		// etcd also reports compaction through Err, so check it first.
		if resp.CompactRevision > 0 {
			return fmt.Errorf("✗ watch canceled: revision %d has been compacted", resp.CompactRevision)
		}
		if resp.Err != nil {
			return wrapContextError(fmt.Errorf("watch error: %w", resp.Err))
		}
		for _, event := range resp.Events {
			if err := w.print(event); err != nil {
				return err
			}
		}
	}

	return nil
}

type watchPrinter struct {
	th   truncate.Thresholds
	opts output.RenderOptions
}

func (w *watchPrinter) print(event client.WatchEvent) error {
	logger.Log.Debugw("Watch event", "type", event.Type, "key", event.Key, "revision", event.Revision)

	update := watchUpdate{Type: event.Type, Key: event.Key, Revision: event.Revision}
	if event.Type == client.WatchEventPut {
		r := truncate.Truncate(event.Value, w.th)
		update.Result = &r
	}

	if w.opts.Format == output.FormatJSON {
		data, err := json.Marshal(update)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	header := fmt.Sprintf("%s %s (rev %d)", event.Type, event.Key, event.Revision)
	if update.Result == nil {
		output.Warning(header)
		return nil
	}
	output.Info(header)
	fmt.Println(output.Render(*update.Result, w.opts.Labels, w.opts.Expand))
	return nil
}
