package store

import (
	"context"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// gate serializes subscription deliveries and enforces the cancellation
// contract: once close returns, no further callbacks run. The mutex is held
// for the duration of each callback, so close blocks until an in-flight
// delivery finishes.
type gate struct {
	mu     sync.Mutex
	closed bool
}

func (g *gate) deliver(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	fn()
}

func (g *gate) close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

// WatchDocument registers a live listener on one document. The callback fires
// immediately with the current value (nil when the document does not exist)
// and again on every committed change, in commit order. Faults are delivered
// through the callback's error argument; the registration then goes quiet but
// stays valid until the returned stop function is called. After stop returns
// no further callbacks run.
func (c *Collection[T, PT]) WatchDocument(ctx context.Context, id string, onChange func(PT, error)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	g := &gate{}
	iter := c.client.Collection(c.name).Doc(id).Snapshots(ctx)

	go func() {
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				g.deliver(func() {
					onChange(nil, &ReadError{Collection: c.name, Op: "watch", Err: err})
				})
				return
			}
			if !snap.Exists() {
				g.deliver(func() { onChange(nil, nil) })
				continue
			}
			doc, derr := c.decode(snap)
			g.deliver(func() { onChange(doc, derr) })
		}
	}()

	return func() {
		g.close()
		cancel()
	}
}

// WatchQuery is WatchDocument for a filtered result set: every change to any
// member redelivers the entire filtered/ordered snapshot, not a per-record
// diff.
func (c *Collection[T, PT]) WatchQuery(ctx context.Context, filters []Filter, onChange func([]PT, error), opts ...QueryOption) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	g := &gate{}
	iter := c.buildQuery(filters, opts...).Snapshots(ctx)

	go func() {
		defer iter.Stop()
		for {
			qsnap, err := iter.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled {
					return
				}
				g.deliver(func() {
					onChange(nil, &ReadError{Collection: c.name, Op: "watch_query", Err: err})
				})
				return
			}
			docs, derr := c.drain("watch_query", qsnap.Documents)
			g.deliver(func() { onChange(docs, derr) })
		}
	}()

	return func() {
		g.close()
		cancel()
	}
}
