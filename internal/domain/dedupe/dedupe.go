// Package dedupe tracks pick submission ids for idempotency. A resubmitted
// pick (browser retry, double click, replayed request) must be acknowledged
// without being applied twice.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen submission ids to ensure at-most-once processing.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it if
	// not. Returns true if id was already seen, false if newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an id from the seen set, allowing a retry. Used when
	// a submission was marked seen but failed to enqueue (backpressure).
	Unrecord(ctx context.Context, id string)

	// Size returns the current number of tracked ids.
	Size() int64
}

const defaultMaxSize = 50000

// Option applies a configuration option to the deduper.
type Option func(*ringDeduper)

// WithMaxSize bounds the number of ids kept in memory. Oldest ids are
// evicted first once the bound is reached. A non-positive size keeps the
// default bound.
func WithMaxSize(maxSize int) Option {
	return func(d *ringDeduper) {
		if maxSize > 0 {
			d.maxSize = maxSize
		}
	}
}

// ringDeduper implements Deduper with a map for membership and a ring buffer
// of insertion order for FIFO eviction.
type ringDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	next    int // ring cursor, valid once the ring has wrapped
	maxSize int
	size    atomic.Int64
}

// New creates a bounded in-memory deduper.
func New(opts ...Option) Deduper {
	d := &ringDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.maxSize)
	d.order = make([]string, 0, d.maxSize)
	return d
}

func (d *ringDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if len(d.order) < d.maxSize {
		d.order = append(d.order, id)
	} else {
		// Evict the oldest id at the cursor and take its slot.
		if old := d.order[d.next]; old != "" {
			delete(d.seen, old)
			d.size.Add(-1)
		}
		d.order[d.next] = id
		d.next = (d.next + 1) % d.maxSize
	}
	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *ringDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	d.size.Add(-1)
	// Blank the ring slot so eviction skips it. Linear scan is fine: the
	// rollback path only ever fires under backpressure.
	for i := range d.order {
		if d.order[i] == id {
			d.order[i] = ""
			break
		}
	}
}

func (d *ringDeduper) Size() int64 {
	return d.size.Load()
}
