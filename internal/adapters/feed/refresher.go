package feed

import (
	"context"
	"sync"
	"time"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

const defaultRefreshInterval = 30 * time.Second

// RefresherOption applies a configuration option to the Refresher.
type RefresherOption func(*Refresher)

// WithInterval sets the refresh interval.
func WithInterval(interval time.Duration) RefresherOption {
	return func(r *Refresher) {
		if interval > 0 {
			r.interval = interval
		}
	}
}

// WithRefresherLogger sets a custom logger.
func WithRefresherLogger(log logger.Logger) RefresherOption {
	return func(r *Refresher) {
		if log != nil {
			r.logger = log
		}
	}
}

// Refresher polls a Provider on an interval and keeps the latest snapshot of
// games. Callers read the snapshot; they never block on the upstream fetch.
// A failed refresh keeps the previous snapshot, so one bad poll never blanks
// the leaderboard.
type Refresher struct {
	provider Provider
	interval time.Duration
	logger   logger.Logger

	mu        sync.RWMutex
	snapshot  []model.Game
	refreshed time.Time

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewRefresher creates a refresher around provider.
func NewRefresher(provider Provider, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		provider: provider,
		interval: defaultRefreshInterval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("feed")
	}
	return r
}

// Start performs an initial refresh and begins polling. The initial error is
// returned so a misconfigured feed fails fast at boot.
func (r *Refresher) Start(ctx context.Context) error {
	if err := r.Refresh(ctx); err != nil {
		close(r.done)
		return err
	}
	go r.loop(ctx)
	return nil
}

// Stop halts the polling loop and waits for it to exit.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
	<-r.done
}

func (r *Refresher) loop(ctx context.Context) {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stop:
			return
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				r.logger.Warn(ctx, "feed refresh failed; keeping previous snapshot",
					logger.Error(err),
				)
			}
		}
	}
}

// Refresh fetches the current games and swaps the snapshot.
func (r *Refresher) Refresh(ctx context.Context) error {
	games, err := r.provider.Games(ctx)
	if err != nil {
		metrics.RecordFeedError()
		return err
	}

	r.mu.Lock()
	r.snapshot = games
	r.refreshed = time.Now()
	r.mu.Unlock()

	metrics.RecordFeedRefresh()
	metrics.UpdateGamesTracked(len(games))
	r.logger.Debug(ctx, "feed refreshed", logger.Int("games", len(games)))
	return nil
}

// Games returns the latest snapshot. The returned slice is shared and must
// be treated as read-only; the engine never mutates games.
func (r *Refresher) Games(_ context.Context) ([]model.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot, nil
}

// LastRefreshed reports when the snapshot was last swapped.
func (r *Refresher) LastRefreshed() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refreshed
}
