// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// GameDependencies defines the interface for game listings.
type GameDependencies interface {
	Games(ctx context.Context) ([]Game, error)
}

// GamesHandler handles game listing requests.
type GamesHandler struct {
	deps GameDependencies
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps GameDependencies) *GamesHandler {
	return &GamesHandler{deps: deps}
}

// HandleGetGames handles GET /games requests.
func (h *GamesHandler) HandleGetGames(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_games"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	games, err := h.deps.Games(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if games == nil {
		games = []Game{}
	}
	writeJSON(w, http.StatusOK, games)
}
