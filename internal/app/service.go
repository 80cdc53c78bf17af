// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/okian/podium/internal/adapters/feed"
	submissionqueue "github.com/okian/podium/internal/adapters/mq/queue"
	workerpool "github.com/okian/podium/internal/adapters/mq/worker"
	"github.com/okian/podium/internal/adapters/pickstore"
	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/scoring"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Service wires the pick store, game feed, submission queue and workers
// together and exposes the operations the HTTP API needs. All scoring is
// delegated to the engine; the service only moves data in and out of it.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    pickstore.Store
	deduper  dedupe.Deduper
	queue    submissionqueue.Queue
	workers  *workerpool.Pool
	games    *feed.Refresher
	provider feed.Provider

	// Configuration
	workerCount  int
	queueSize    int
	dedupeSize   int
	shardCount   int
	feedInterval time.Duration
	picksFile    string
	scoring      scoring.Config
	includeLive  bool

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of submission workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the submission idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the pick store shard count.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithFeedProvider sets the game feed source. Required before Start.
func WithFeedProvider(p feed.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithFeedRefreshInterval sets how often the game feed is polled.
func WithFeedRefreshInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.feedInterval = interval
		}
	}
}

// WithScoringConfig sets the scoring contract handed to the engine.
func WithScoringConfig(cfg scoring.Config) Option {
	return func(s *Service) {
		s.scoring = cfg.Normalized()
	}
}

// WithIncludeLiveGames makes in-progress games contribute provisional
// points by default. Requests can still override per call.
func WithIncludeLiveGames(include bool) Option {
	return func(s *Service) {
		s.includeLive = include
	}
}

// WithPicksFile seeds the pick store from a JSON file at start.
func WithPicksFile(path string) Option {
	return func(s *Service) {
		s.picksFile = path
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU() * 2,
		queueSize:    10000,
		dedupeSize:   50000,
		shardCount:   8,
		feedInterval: 30 * time.Second,
		scoring:      scoring.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.provider == nil {
		return fmt.Errorf("%w: no feed provider configured", ErrNotConfigured)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting pick scoring service...")

	s.store = pickstore.NewMemStore(
		pickstore.WithShardCount(s.shardCount),
	)
	s.deduper = dedupe.New(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = submissionqueue.NewInMemoryQueue(
		submissionqueue.WithCapacity(s.queueSize),
	)

	s.games = feed.NewRefresher(s.provider,
		feed.WithInterval(s.feedInterval),
		feed.WithRefresherLogger(s.logger.Named("feed")),
	)
	if err := s.games.Start(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrFeedStart, err)
	}

	if s.picksFile != "" {
		n, err := pickstore.LoadFile(ctx, s.store, s.picksFile)
		if err != nil {
			s.games.Stop()
			return fmt.Errorf("%w: %w", ErrSeedPicks, err)
		}
		s.logger.Info(ctx, "seeded picks from file",
			logger.String("file", s.picksFile),
			logger.Int("picks", n),
		)
	}

	s.workers = workerpool.NewPool(s.queue, s.store,
		workerpool.WithSize(s.workerCount),
		workerpool.WithLogger(s.logger.Named("worker")),
	)
	s.workers.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "pick scoring service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.String("mode", string(s.scoring.Mode)),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping pick scoring service...")

	s.games.Stop()

	// Close the queue first so workers drain what is buffered, then stop.
	_ = s.queue.Close()
	s.workers.Stop()

	s.started = false
	s.logger.Info(ctx, "pick scoring service stopped")
}

// SeenAndRecord atomically checks if a submission id was seen and records it
// if not. Returns true if the submission was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordSubmissionDuplicate()
	}
	return seen
}

// Unrecord removes a submission id from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Enqueue submits a pick for asynchronous processing. Returns false when the
// queue is full; the caller translates that into backpressure.
func (s *Service) Enqueue(ctx context.Context, sub model.PickSubmission) bool {
	ok := s.queue.Enqueue(ctx, sub)
	if ok {
		metrics.RecordSubmissionAccepted()
		metrics.UpdateQueueSize(s.queue.Len(ctx))
	}
	return ok
}

// Leaderboard builds the current standings from every stored pick and the
// latest game snapshot. The board is recomputed per call; with in-memory
// stores the rebuild is cheap and always consistent with the feed.
func (s *Service) Leaderboard(ctx context.Context, limit int, includeLive *bool) ([]types.Entry, error) {
	picks, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	games, err := s.games.Games(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summaries := scoring.BuildLeaderboard(picks, games, s.scoring, s.aggregateOptions(includeLive))
	metrics.RecordLeaderboardBuild(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.UpdateTotalPlayers(len(summaries))

	if limit > 0 && limit < len(summaries) {
		summaries = summaries[:limit]
	}

	entries := make([]types.Entry, len(summaries))
	for i, summary := range summaries {
		entries[i] = types.FromSummary(summary)
	}
	return entries, nil
}

// Player returns one player's entry, ranked against the full board.
// Returns pickstore.ErrPlayerNotFound when the player has no picks.
func (s *Service) Player(ctx context.Context, playerID string, includeLive *bool) (types.Entry, error) {
	// Probe the store first so an unknown player fails fast with the
	// store's sentinel instead of an empty board scan.
	if _, err := s.store.PlayerPicks(ctx, playerID); err != nil {
		return types.Entry{}, err
	}

	entries, err := s.Leaderboard(ctx, 0, includeLive)
	if err != nil {
		return types.Entry{}, err
	}
	for _, entry := range entries {
		if entry.PlayerID == playerID {
			return entry, nil
		}
	}
	return types.Entry{}, fmt.Errorf("%w: %s", pickstore.ErrPlayerNotFound, playerID)
}

// Games returns the latest game snapshot in schedule order, each annotated
// with the round bucket the scorer would use.
func (s *Service) Games(ctx context.Context) ([]types.Game, error) {
	games, err := s.games.Games(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]types.Game, len(games))
	for i, g := range games {
		out[i] = types.FromGame(g, scoring.ClassifyRound(g, s.scoring.KnockoutCutoff))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"scoringMode": string(s.scoring.Mode),
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		totalPlayers := s.store.Players(ctx)
		games, _ := s.games.Games(ctx)

		stats["queueLength"] = queueLen
		stats["totalPlayers"] = totalPlayers
		stats["totalPicks"] = s.store.Count(ctx)
		stats["gamesTracked"] = len(games)
		stats["feedRefreshedAt"] = s.games.LastRefreshed()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalPlayers(totalPlayers)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

func (s *Service) aggregateOptions(includeLive *bool) scoring.AggregateOptions {
	include := s.includeLive
	if includeLive != nil {
		include = *includeLive
	}
	return scoring.AggregateOptions{IncludeLive: include}
}
