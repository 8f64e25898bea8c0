package client

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type WatchCall struct {
	Opts *WatchOptions
	Key  string
}

// MockClient is an in-memory EtcdClient for command tests. Values set in
// Data back Get and GetWithOptions unless the matching func field is set.
type MockClient struct {
	GetFunc            func(ctx context.Context, key string) (string, error)
	GetWithOptionsFunc func(ctx context.Context, key string, opts *GetOptions) (*GetResponse, error)
	WatchFunc          func(ctx context.Context, key string, opts *WatchOptions) WatchChan
	CloseFunc          func() error

	Data map[string]string

	GetCalls    []string
	WatchCalls  []WatchCall
	CloseCalled bool

	mu sync.Mutex
}

func NewMockClient() *MockClient {
	return &MockClient{
		Data:       make(map[string]string),
		GetCalls:   make([]string, 0),
		WatchCalls: make([]WatchCall, 0),
	}
}

func (m *MockClient) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, key)
	m.mu.Unlock()

	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.Data[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

func (m *MockClient) GetWithOptions(ctx context.Context, key string, opts *GetOptions) (*GetResponse, error) {
	if m.GetWithOptionsFunc != nil {
		return m.GetWithOptionsFunc(ctx, key, opts)
	}

	if _, err := buildClientOptions(opts); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	resp := &GetResponse{Kvs: []*KeyValue{}}
	for _, k := range sortedKeys(m.Data) {
		if !matches(k, key, opts) {
			continue
		}
		resp.Kvs = append(resp.Kvs, &KeyValue{Key: k, Value: m.Data[k]})
	}
	resp.Count = int64(len(resp.Kvs))

	if opts != nil && opts.Limit > 0 && int64(len(resp.Kvs)) > opts.Limit {
		resp.Kvs = resp.Kvs[:opts.Limit]
		resp.More = true
	}
	if opts != nil && opts.CountOnly {
		resp.Kvs = []*KeyValue{}
	}
	return resp, nil
}

func (m *MockClient) Watch(ctx context.Context, key string, opts *WatchOptions) WatchChan {
	m.mu.Lock()
	m.WatchCalls = append(m.WatchCalls, WatchCall{Key: key, Opts: opts})
	m.mu.Unlock()

	if m.WatchFunc != nil {
		return m.WatchFunc(ctx, key, opts)
	}

	ch := make(chan WatchResponse)
	close(ch)
	return ch
}

func (m *MockClient) Close() error {
	m.mu.Lock()
	m.CloseCalled = true
	m.mu.Unlock()

	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = make([]string, 0)
	m.WatchCalls = make([]WatchCall, 0)
	m.CloseCalled = false
}

func matches(candidate, key string, opts *GetOptions) bool {
	switch {
	case opts == nil:
		return candidate == key
	case opts.Prefix:
		return strings.HasPrefix(candidate, key)
	case opts.FromKey:
		return candidate >= key
	case opts.RangeEnd != "":
		return candidate >= key && candidate < opts.RangeEnd
	default:
		return candidate == key
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ EtcdClient = (*MockClient)(nil)
