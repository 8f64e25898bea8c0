package client

import (
	"context"
)

// EtcdReader defines the read operations showmore uses to fetch text.
// Implementations must be safe for concurrent use.
type EtcdReader interface {
	// Get retrieves a single value from etcd.
	// Returns ErrKeyNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// GetWithOptions retrieves keys with advanced options (prefix, sort, etc.)
	GetWithOptions(ctx context.Context, key string, opts *GetOptions) (*GetResponse, error)
}

// EtcdWatcher streams changes so callers can re-truncate text as it is updated.
type EtcdWatcher interface {
	// Watch emits responses until ctx is cancelled. The channel is closed
	// when the watch ends.
	Watch(ctx context.Context, key string, opts *WatchOptions) WatchChan
}

// EtcdClient combines read and watch operations with lifecycle management.
// This is the primary interface that commands should depend on.
type EtcdClient interface {
	EtcdReader
	EtcdWatcher

	// Close releases resources. Must be called when done.
	Close() error
}
