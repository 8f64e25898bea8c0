package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kazuma-desu/showmore/pkg/client"
	"github.com/kazuma-desu/showmore/pkg/config"
	"github.com/kazuma-desu/showmore/pkg/exit"
	"github.com/kazuma-desu/showmore/pkg/logger"
)

const defaultTimeout = 30 * time.Second

var (
	logLevel         string
	contextName      string
	outputFormat     string
	operationTimeout time.Duration

	rootCmd = &cobra.Command{
		Use:   "showmore",
		Short: "Split text into a visible part and a hidden remainder",
		Long: `showmore computes the "show more" / "show less" split of a text.

Text is cut by line breaks first, then by characters or words. The visible
prefix is printed followed by a toggle label, or the whole text with
--expand. Text can come from an argument, a file, stdin, or etcd keys.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogging()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error) - overrides config file")
	rootCmd.PersistentFlags().StringVar(&contextName, "context", "",
		"context to use for etcd connection (overrides current context)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "",
		"output format (simple, json, yaml, table, tree) - overrides config file")
	rootCmd.PersistentFlags().DurationVar(&operationTimeout, "timeout", defaultTimeout,
		"timeout for etcd operations (e.g. 10s, 1m)")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	return exit.Success
}

func exitCode(err error) int {
	var coded *exit.Error
	switch {
	case err == nil:
		return exit.Success
	case errors.As(err, &coded):
		return coded.Code
	case errors.Is(err, client.ErrKeyNotFound):
		return exit.KeyNotFound
	default:
		return exit.GeneralError
	}
}

func configureLogging() {
	effectiveLogLevel := "warn"

	cfg, err := config.LoadConfig()
	if err == nil && cfg.LogLevel != "" {
		effectiveLogLevel = cfg.LogLevel
	}

	if logLevel != "" {
		effectiveLogLevel = logLevel
	}

	logger.SetLevel(effectiveLogLevel)
}
