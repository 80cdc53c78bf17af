package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/status"
)

// Sentinel kinds for feed errors.
var (
	ErrReadFeed  = errors.New("read feed failed")
	ErrParseFeed = errors.New("parse feed failed")
)

// rawGame mirrors the JSON schema of the game fixture file. Status is left
// raw because upstream has shipped it as a string, a numeric code, and a
// nested object over the years.
type rawGame struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SeasonType  string          `json:"season_type"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	Status      json.RawMessage `json:"status"`
	Round       string          `json:"round"`
	TeamA       string          `json:"team_a"`
	TeamB       string          `json:"team_b"`
	ScoreA      *int            `json:"score_a"`
	ScoreB      *int            `json:"score_b"`
}

// FileProvider reads games from a JSON file. The file is re-read on every
// call so an updated fixture shows up on the next refresh without a restart.
type FileProvider struct {
	path string
}

// NewFileProvider creates a provider backed by a JSON games file.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Games reads, parses, and normalizes the file's games.
func (p *FileProvider) Games(_ context.Context) ([]model.Game, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFeed, err)
	}
	var raws []rawGame
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFeed, err)
	}

	games := make([]model.Game, 0, len(raws))
	for _, r := range raws {
		games = append(games, normalizeGame(r))
	}
	return games, nil
}

// normalizeGame converts one raw record into the engine's Game shape.
func normalizeGame(r rawGame) model.Game {
	g := model.Game{
		ID:          r.ID,
		Name:        r.Name,
		SeasonType:  r.SeasonType,
		ScheduledAt: r.ScheduledAt,
		TeamA:       r.TeamA,
		TeamB:       r.TeamB,
		ScoreA:      r.ScoreA,
		ScoreB:      r.ScoreB,
		State:       model.StateUnknown,
	}
	if round := model.RoundBucket(r.Round); model.ValidRound(round) {
		g.RoundHint = round
	}
	if len(r.Status) > 0 {
		var rawStatus any
		if err := json.Unmarshal(r.Status, &rawStatus); err == nil {
			n := status.Normalize(rawStatus)
			g.State = n.State
			g.StatusDetail = n.Detail
		}
	}
	return g
}
