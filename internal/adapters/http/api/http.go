// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/podium/internal/adapters/pickstore"
	"github.com/okian/podium/internal/domain/dedupe"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a pick submission for async processing. Returns false
	// on backpressure.
	Enqueue(ctx context.Context, sub model.PickSubmission) bool

	// Read operations expose leaderboard data.
	Leaderboard(ctx context.Context, limit int, includeLive *bool) ([]Entry, error)
	Player(ctx context.Context, playerID string, includeLive *bool) (Entry, error)
	Games(ctx context.Context) ([]Game, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Game mirrors the read shape returned by the game listing.
type Game = types.Game

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	picksHandler       *PicksHandler
	leaderboardHandler *LeaderboardHandler
	playerHandler      *PlayerHandler
	gamesHandler       *GamesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		picksHandler:       NewPicksHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		playerHandler:      NewPlayerHandler(deps),
		gamesHandler:       NewGamesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/picks", MetricsMiddleware(s.picksHandler.HandlePostPick, "picks"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playerHandler.HandleGetPlayer, "players"))
	mux.HandleFunc("/games", MetricsMiddleware(s.gamesHandler.HandleGetGames, "games"))
}

// pickRequest mirrors the wire schema for POST /picks.
type pickRequest struct {
	SubmissionID    string   `json:"submission_id"`
	PlayerID        string   `json:"player_id"`
	PlayerName      string   `json:"player_name"`
	GameID          string   `json:"game_id"`
	PredictedScoreA int      `json:"predicted_score_a"`
	PredictedScoreB int      `json:"predicted_score_b"`
	PredictedResult string   `json:"predicted_result"`
	Confidence      *float64 `json:"confidence"`
}

func (p pickRequest) validate() error {
	switch {
	case strings.TrimSpace(p.SubmissionID) == "":
		return errors.New("missing submission_id")
	case strings.TrimSpace(p.PlayerID) == "":
		return errors.New("missing player_id")
	case strings.TrimSpace(p.GameID) == "":
		return errors.New("missing game_id")
	}
	switch model.Result(p.PredictedResult) {
	case model.ResultNone, model.ResultWinA, model.ResultWinB, model.ResultTie:
	default:
		return errors.New("invalid predicted_result; must be win_a, win_b or tie")
	}
	return nil
}

func (p pickRequest) submission() model.PickSubmission {
	return model.PickSubmission{
		SubmissionID:    p.SubmissionID,
		PlayerID:        p.PlayerID,
		PlayerName:      p.PlayerName,
		GameID:          p.GameID,
		PredictedScoreA: p.PredictedScoreA,
		PredictedScoreB: p.PredictedScoreB,
		PredictedResult: model.Result(p.PredictedResult),
		Confidence:      p.Confidence,
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// parseIncludeLive reads the optional include_live query parameter. A nil
// return means "use the service default".
func parseIncludeLive(r *http.Request) (*bool, error) {
	raw := r.URL.Query().Get("include_live")
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case "true", "1":
		v := true
		return &v, nil
	case "false", "0":
		v := false
		return &v, nil
	}
	return nil, errors.New("invalid include_live; must be true or false")
}

// isNotFound translates the store's not-found condition for the API layer.
func isNotFound(err error) bool {
	return errors.Is(err, pickstore.ErrPlayerNotFound)
}
