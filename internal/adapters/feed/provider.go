// Package feed supplies normalized game records to the service. The raw
// upstream shapes (including the historically duck-typed status field) are
// normalized here at the boundary; nothing downstream ever sees them.
package feed

import (
	"context"

	"github.com/okian/podium/internal/domain/model"
)

// Provider fetches the current set of games.
type Provider interface {
	Games(ctx context.Context) ([]model.Game, error)
}
