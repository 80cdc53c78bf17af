// Package worker drains the submission queue and applies picks to the store.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/podium/internal/adapters/mq/queue"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

const poolShutdownTimeout = 30 * time.Second

// Applier writes a validated pick. Satisfied by the pick store.
type Applier interface {
	Put(ctx context.Context, pick model.Pick) error
}

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Submission
}

// Pool runs a fixed set of workers over a shared queue.
type Pool struct {
	queue   Queue
	applier Applier
	size    int
	logger  logger.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
	stop     chan struct{}
}

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithSize sets the number of workers.
func WithSize(size int) Option {
	return func(p *Pool) {
		if size > 0 {
			p.size = size
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(p *Pool) {
		if log != nil {
			p.logger = log
		}
	}
}

// NewPool creates a worker pool over q writing through applier.
func NewPool(q Queue, applier Applier, opts ...Option) *Pool {
	p := &Pool{
		queue:   q,
		applier: applier,
		size:    runtime.NumCPU(),
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("worker")
	}
	return p
}

// Start launches the workers.
func (p *Pool) Start(ctx context.Context) {
	metrics.UpdateWorkerCount(p.size)
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, fmt.Sprintf("worker-%d", i))
	}
}

// Stop signals the workers and waits for them, bounded by a timeout so a
// wedged worker cannot hang shutdown.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(poolShutdownTimeout):
		p.logger.Warn(context.Background(), "worker pool shutdown timed out")
	}
	metrics.UpdateWorkerCount(0)
}

func (p *Pool) run(ctx context.Context, name string) {
	defer p.wg.Done()
	subs := p.queue.Dequeue(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case sub, ok := <-subs:
			if !ok {
				return
			}
			p.apply(ctx, name, sub)
		}
	}
}

// apply validates a submission and writes the resulting pick. Malformed
// submissions are dropped, not retried: the HTTP layer already validated the
// required fields, so a failure here is a store-side invariant violation.
func (p *Pool) apply(ctx context.Context, name string, sub queue.Submission) {
	pick := sub.Pick()
	if err := p.applier.Put(ctx, pick); err != nil {
		metrics.RecordPickRejected()
		p.logger.Warn(ctx, "dropping pick submission",
			logger.String("worker", name),
			logger.String("submissionID", sub.SubmissionID),
			logger.String("playerID", sub.PlayerID),
			logger.Error(err),
		)
		return
	}
	metrics.RecordPickApplied()
	p.logger.Debug(ctx, "pick applied",
		logger.String("worker", name),
		logger.String("playerID", sub.PlayerID),
		logger.String("gameID", sub.GameID),
	)
}
