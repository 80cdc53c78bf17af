package pickstore

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/okian/podium/internal/domain/model"
)

const defaultShardCount = 8

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithShardCount sets the number of shards picks are spread across.
func WithShardCount(count int) Option {
	return func(s *MemStore) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// shard holds the picks for a subset of players, keyed player -> game -> pick.
type shard struct {
	mu    sync.RWMutex
	picks map[string]map[string]model.Pick
}

// MemStore implements Store with player-sharded in-memory maps. Writes to
// different players contend only on their own shard.
type MemStore struct {
	shardCount int
	shards     []*shard
}

// NewMemStore creates an in-memory pick store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{picks: make(map[string]map[string]model.Pick)}
	}
	return s
}

func (s *MemStore) shardFor(playerID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(playerID))
	return s.shards[int(h.Sum32())%s.shardCount]
}

// Put upserts a pick keyed by (player, game).
func (s *MemStore) Put(_ context.Context, pick model.Pick) error {
	if pick.PlayerID == "" || pick.GameID == "" {
		return fmt.Errorf("%w: missing player or game id", ErrInvalidPick)
	}
	sh := s.shardFor(pick.PlayerID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	byGame, ok := sh.picks[pick.PlayerID]
	if !ok {
		byGame = make(map[string]model.Pick)
		sh.picks[pick.PlayerID] = byGame
	}
	byGame[pick.GameID] = pick
	return nil
}

// PlayerPicks returns a player's picks in a stable game-id order.
func (s *MemStore) PlayerPicks(_ context.Context, playerID string) ([]model.Pick, error) {
	sh := s.shardFor(playerID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	byGame, ok := sh.picks[playerID]
	if !ok || len(byGame) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	return sortedPicks(byGame), nil
}

// All returns every pick, ordered by player then game id so repeated reads
// over unchanged data are identical.
func (s *MemStore) All(_ context.Context) ([]model.Pick, error) {
	var players []string
	byPlayer := make(map[string][]model.Pick)
	for _, sh := range s.shards {
		sh.mu.RLock()
		for playerID, byGame := range sh.picks {
			players = append(players, playerID)
			byPlayer[playerID] = sortedPicks(byGame)
		}
		sh.mu.RUnlock()
	}
	sort.Strings(players)

	var out []model.Pick
	for _, id := range players {
		out = append(out, byPlayer[id]...)
	}
	return out, nil
}

// Players returns the number of players with at least one pick.
func (s *MemStore) Players(_ context.Context) int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.picks)
		sh.mu.RUnlock()
	}
	return n
}

// Count returns the total number of stored picks.
func (s *MemStore) Count(_ context.Context) int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, byGame := range sh.picks {
			n += len(byGame)
		}
		sh.mu.RUnlock()
	}
	return n
}

func sortedPicks(byGame map[string]model.Pick) []model.Pick {
	gameIDs := make([]string, 0, len(byGame))
	for id := range byGame {
		gameIDs = append(gameIDs, id)
	}
	sort.Strings(gameIDs)
	picks := make([]model.Pick, 0, len(gameIDs))
	for _, id := range gameIDs {
		picks = append(picks, byGame[id])
	}
	return picks
}
