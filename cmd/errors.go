package cmd

import (
	"fmt"

	"github.com/kazuma-desu/showmore/pkg/exit"
)

// wrapNotConnectedError returns a standardized error for when etcd
// connection fails due to missing or invalid context configuration.
func wrapNotConnectedError(err error) error {
	return exit.WithCode(exit.ConnectionError,
		fmt.Errorf("✗ not connected: %w\n\nUse 'showmore config set-context' to configure a context", err))
}

// invalidInput marks err as a usage problem so the process exits with the validation code.
func invalidInput(format string, args ...any) error {
	return exit.WithCode(exit.ValidationError, fmt.Errorf("✗ "+format, args...))
}
