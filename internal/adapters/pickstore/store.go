// Package pickstore defines the pick store contract and its in-memory
// implementation. The scoring engine never touches the store; the service
// reads picks out of it and hands them to the engine as plain values.
package pickstore

import (
	"context"

	"github.com/okian/podium/internal/domain/model"
)

// Store provides read/write access to submitted picks. A pick is keyed by
// (player id, game id); putting a second pick for the same key replaces the
// first.
type Store interface {
	// Put upserts a pick.
	Put(ctx context.Context, pick model.Pick) error

	// PlayerPicks returns every pick a player has submitted.
	// Returns ErrPlayerNotFound when the player has no picks.
	PlayerPicks(ctx context.Context, playerID string) ([]model.Pick, error)

	// All returns every stored pick across all players.
	All(ctx context.Context) ([]model.Pick, error)

	// Players returns the number of players with at least one pick.
	Players(ctx context.Context) int

	// Count returns the total number of stored picks.
	Count(ctx context.Context) int
}
