package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"

	"github.com/kazuma-desu/showmore/pkg/client"
	"github.com/kazuma-desu/showmore/pkg/exit"
	"github.com/kazuma-desu/showmore/pkg/logger"
	"github.com/kazuma-desu/showmore/pkg/models"
	"github.com/kazuma-desu/showmore/pkg/output"
)

var (
	getOpts struct {
		truncate   models.TruncateOptions
		sortOrder  string
		sortTarget string
		limit      int64
		revision   int64
		prefix     bool
		fromKey    bool
		countOnly  bool
	}

	getCmd = &cobra.Command{
		Use:   "get <key> [range_end]",
		Short: "Fetch text from etcd and truncate it",
		Long: `Fetch values from etcd and truncate each one with the same thresholds.

The connection comes from the current context or --context. Range queries
(--prefix, --from-key, range_end) may return no keys; a single missing key
is an error.`,
		Example: `  # Truncate one key to 80 characters
  showmore get /posts/42/body --chars 80

  # Every post body under a prefix, two lines each
  showmore get /posts/ --prefix --line-breaks 2 -o table

  # Newest ten posts as JSON
  showmore get /posts/ --prefix --sort-by MODIFY --order DESCEND --limit 10 -o json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runGet,
	}
)

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().BoolVar(&getOpts.prefix, "prefix", false,
		"get keys with matching prefix")
	getCmd.Flags().BoolVar(&getOpts.fromKey, "from-key", false,
		"get keys that are greater than or equal to the given key using byte compare")
	getCmd.Flags().Int64Var(&getOpts.limit, "limit", 0,
		"maximum number of results")
	getCmd.Flags().Int64Var(&getOpts.revision, "rev", 0,
		"specify the kv revision")
	getCmd.Flags().StringVar(&getOpts.sortOrder, "order", "",
		"order of results; ASCEND or DESCEND (ASCEND by default)")
	getCmd.Flags().StringVar(&getOpts.sortTarget, "sort-by", "",
		"sort target; CREATE, KEY, MODIFY, VALUE, or VERSION")
	getCmd.Flags().BoolVar(&getOpts.countOnly, "count-only", false,
		"print only the number of matching keys")
	getCmd.Flags().BoolVar(&getOpts.truncate.Expand, "expand", false,
		"print the expanded state (full text and the less label)")
	addTruncateFlags(getCmd, &getOpts.truncate.Thresholds, &getOpts.truncate.MoreLabel, &getOpts.truncate.LessLabel)
}

func runGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	var rangeEnd string
	if len(args) > 1 {
		rangeEnd = args[1]
	}

	if getOpts.limit < 0 || getOpts.revision < 0 {
		return invalidInput("--limit and --rev must be non-negative")
	}

	appCfg := loadAppConfig()
	th := resolveThresholds(cmd, getOpts.truncate.Thresholds, appCfg)
	labels := resolveLabels(cmd, getOpts.truncate.MoreLabel, getOpts.truncate.LessLabel, appCfg)
	if err := checkSettings(th, labels); err != nil {
		return err
	}

	format, err := resolveOutputFormat(batchFormats, appCfg)
	if err != nil {
		return err
	}

	etcdClient, cleanup, err := newEtcdClient()
	if err != nil {
		return err
	}
	defer cleanup()

	opts := &client.GetOptions{
		Prefix:     getOpts.prefix,
		FromKey:    getOpts.fromKey,
		Limit:      getOpts.limit,
		Revision:   getOpts.revision,
		SortOrder:  getOpts.sortOrder,
		SortTarget: getOpts.sortTarget,
		CountOnly:  getOpts.countOnly,
		RangeEnd:   rangeEnd,
	}

	ctx, cancel := getOperationContext()
	defer cancel()

	logger.Log.Debugw("Fetching keys", "key", key, "prefix", opts.Prefix, "from-key", opts.FromKey)
	resp, err := fetch(ctx, etcdClient, key, opts, format)
	if errors.Is(err, client.ErrKeyNotFound) {
		return keyNotFoundError(key)
	}
	if err != nil {
		return wrapContextError(err)
	}

	if getOpts.countOnly {
		fmt.Println(resp.Count)
		return nil
	}

	if len(resp.Kvs) == 0 {
		if !opts.IsRange() {
			return keyNotFoundError(key)
		}
		logger.Log.Debugw("No keys found", "key", key)
	}

	logVerbose("Truncating", "entries", len(resp.Kvs), "thresholds", th.String())
	return output.PrintEntries(models.TruncateAll(resp.Entries(), th), output.RenderOptions{
		Format: format,
		Labels: labels,
		Expand: getOpts.truncate.Expand,
	})
}

func keyNotFoundError(key string) error {
	return exit.WithCode(exit.KeyNotFound,
		fmt.Errorf("✗ %w: %s\n\nHint: check the key path or use --prefix", client.ErrKeyNotFound, key))
}

// fetch runs the query behind a spinner when a person is watching the terminal.
func fetch(ctx context.Context, c client.EtcdReader, key string, opts *client.GetOptions, format output.Format) (*client.GetResponse, error) {
	var (
		resp *client.GetResponse
		err  error
	)
	action := func() {
		resp, err = query(ctx, c, key, opts)
	}

	if format.IsStructured() || !output.IsTerminal() {
		action()
		return resp, err
	}

	if spinErr := spinner.New().
		Title(fmt.Sprintf("Fetching %s", key)).
		Context(ctx).
		Action(action).
		Run(); spinErr != nil {
		return nil, spinErr
	}
	return resp, err
}

// query looks up a plain key with Get. Ranges, historical revisions and
// counts need the full option set.
func query(ctx context.Context, c client.EtcdReader, key string, opts *client.GetOptions) (*client.GetResponse, error) {
	if opts.IsRange() || opts.Revision > 0 || opts.CountOnly {
		return c.GetWithOptions(ctx, key, opts)
	}

	value, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return &client.GetResponse{
		Kvs:   []*client.KeyValue{{Key: key, Value: value}},
		Count: 1,
	}, nil
}
