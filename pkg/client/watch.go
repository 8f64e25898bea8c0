package client

import (
	"context"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// WatchEventType is the kind of change reported by a watch.
type WatchEventType string

const (
	WatchEventPut    WatchEventType = "PUT"
	WatchEventDelete WatchEventType = "DELETE"
)

type WatchOptions struct {
	Revision int64 // Revision to start watching from (0 = current)
	Prefix   bool  // Watch all keys with the given prefix
}

// WatchEvent is a single change to a key.
type WatchEvent struct {
	Type     WatchEventType `json:"type"`
	Key      string         `json:"key"`
	Value    string         `json:"value,omitempty"`
	Revision int64          `json:"revision"`
}

type WatchResponse struct {
	Err             error
	Events          []WatchEvent
	CompactRevision int64
}

type WatchChan <-chan WatchResponse

func (c *Client) Watch(ctx context.Context, key string, opts *WatchOptions) WatchChan {
	out := make(chan WatchResponse)
	wch := c.client.Watch(ctx, key, buildWatchOptions(opts)...)

	go func() {
		defer close(out)
		for resp := range wch {
			r := WatchResponse{
				Err:             resp.Err(),
				CompactRevision: resp.CompactRevision,
				Events:          make([]WatchEvent, 0, len(resp.Events)),
			}
			for _, ev := range resp.Events {
				r.Events = append(r.Events, convertEvent(ev))
			}

			select {
			case out <- r:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func convertEvent(ev *clientv3.Event) WatchEvent {
	event := WatchEvent{
		Type:     WatchEventPut,
		Key:      string(ev.Kv.Key),
		Value:    string(ev.Kv.Value),
		Revision: ev.Kv.ModRevision,
	}
	if ev.Type == clientv3.EventTypeDelete {
		event.Type = WatchEventDelete
		event.Value = ""
	}
	return event
}
