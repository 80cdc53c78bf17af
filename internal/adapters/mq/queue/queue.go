// Package queue buffers inbound pick submissions between the HTTP handler
// and the workers that apply them to the pick store.
package queue

import (
	"context"
	"sync"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/metrics"
)

const defaultCapacity = 10000

// Submission is the payload type flowing through the queue.
type Submission = model.PickSubmission

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a submission. Returns false when the queue is full;
	// callers translate that into backpressure.
	Enqueue(ctx context.Context, s Submission) bool

	// Dequeue returns a channel receiving submissions as they arrive. The
	// channel closes when the queue closes.
	Dequeue(ctx context.Context) <-chan Submission

	// Len returns the current number of queued submissions.
	Len(ctx context.Context) int

	// Close stops the queue. No new submissions are accepted afterward.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// Option applies a configuration option to the InMemoryQueue.
type Option func(*InMemoryQueue)

// WithCapacity bounds the number of buffered submissions.
func WithCapacity(capacity int) Option {
	return func(q *InMemoryQueue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

// InMemoryQueue implements Queue over a buffered channel.
type InMemoryQueue struct {
	subs     chan Submission
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a bounded in-memory submission queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.subs = make(chan Submission, q.capacity)
	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a submission without blocking.
func (q *InMemoryQueue) Enqueue(_ context.Context, s Submission) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return false
	}
	select {
	case q.subs <- s:
		metrics.UpdateQueueSize(len(q.subs))
		return true
	default:
		return false
	}
}

// Dequeue exposes the receiving end of the queue.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Submission {
	return q.subs
}

// Len returns the number of buffered submissions.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.subs)
}

// Close stops the queue and closes the dequeue channel.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	close(q.subs)
	return nil
}

// IsClosed reports whether Close has been called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
