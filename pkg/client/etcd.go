package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.etcd.io/etcd/client/pkg/v3/transport"
	clientv3 "go.etcd.io/etcd/client/v3"
	"google.golang.org/grpc/grpclog"

	"github.com/kazuma-desu/showmore/pkg/models"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

func init() {
	grpclog.SetLoggerV2(grpclog.NewLoggerV2(io.Discard, io.Discard, io.Discard))
}

type Client struct {
	client *clientv3.Client
	config *Config
}

type Config struct {
	Username              string
	Password              string
	CACert                string
	Cert                  string
	Key                   string
	Endpoints             []string
	DialTimeout           time.Duration
	InsecureSkipTLSVerify bool
}

// usesTLS reports whether any TLS setting is present.
func (c *Config) usesTLS() bool {
	return c.CACert != "" || c.Cert != "" || c.Key != "" || c.InsecureSkipTLSVerify
}

func NewClient(cfg *Config) (*Client, error) {
	if len(cfg.Endpoints) == 0 {
		return nil, fmt.Errorf("at least one endpoint is required")
	}

	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}

	clientConfig := clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	}

	if cfg.Username != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	if cfg.usesTLS() {
		tlsInfo := transport.TLSInfo{
			CertFile:           cfg.Cert,
			KeyFile:            cfg.Key,
			TrustedCAFile:      cfg.CACert,
			InsecureSkipVerify: cfg.InsecureSkipTLSVerify,
		}
		tlsConfig, err := tlsInfo.ClientConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS configuration: %w", err)
		}
		clientConfig.TLS = tlsConfig
	}

	cli, err := clientv3.New(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	return &Client{
		client: cli,
		config: cfg,
	}, nil
}

type GetOptions struct {
	SortOrder  string // ASCEND or DESCEND
	SortTarget string // CREATE, KEY, MODIFY, VALUE, or VERSION
	RangeEnd   string // End of key range
	Limit      int64  // Maximum number of results
	Revision   int64  // Get at specific revision
	Prefix     bool   // Get keys with matching prefix
	FromKey    bool   // Get keys >= given key
	CountOnly  bool   // Return only count
}

// IsRange reports whether the query may legitimately match zero keys.
func (o *GetOptions) IsRange() bool {
	return o != nil && (o.Prefix || o.FromKey || o.RangeEnd != "")
}

type KeyValue struct {
	Key            string
	Value          string
	CreateRevision int64
	ModRevision    int64
	Version        int64
}

type GetResponse struct {
	Kvs   []*KeyValue
	Count int64
	More  bool
}

// Entries converts the fetched key-values into entries ready for truncation.
func (r *GetResponse) Entries() []*models.Entry {
	entries := make([]*models.Entry, len(r.Kvs))
	for i, kv := range r.Kvs {
		entries[i] = &models.Entry{Key: kv.Key, Text: kv.Value}
	}
	return entries
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	resp, err := c.GetWithOptions(ctx, key, &GetOptions{})
	if err != nil {
		return "", err
	}

	if len(resp.Kvs) == 0 {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	return resp.Kvs[0].Value, nil
}

func (c *Client) GetWithOptions(ctx context.Context, key string, opts *GetOptions) (*GetResponse, error) {
	clientOpts, err := buildClientOptions(opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Get(ctx, key, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	result := &GetResponse{
		Count: resp.Count,
		More:  resp.More,
		Kvs:   make([]*KeyValue, len(resp.Kvs)),
	}

	for i, kv := range resp.Kvs {
		result.Kvs[i] = &KeyValue{
			Key:            string(kv.Key),
			Value:          string(kv.Value),
			CreateRevision: kv.CreateRevision,
			ModRevision:    kv.ModRevision,
			Version:        kv.Version,
		}
	}

	return result, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Compile-time verification that Client implements EtcdClient
var _ EtcdClient = (*Client)(nil)
