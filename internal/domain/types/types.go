// Package types contains the wire shapes shared by the HTTP API and its
// consumers. Field aliases are snake_case for legacy clients; the aliasing is
// a presentation concern and never leaks into the scoring engine.
package types

import (
	"time"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/scoring"
)

// RoundLine is the wire form of a per-bucket breakdown line.
type RoundLine struct {
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
	Points  float64 `json:"points"`
}

// RoundBreakdown is the wire form of a player's per-round breakdown.
type RoundBreakdown struct {
	GroupStage    RoundLine `json:"group_stage"`
	KnockoutRound RoundLine `json:"knockout_round"`
	MedalRound    RoundLine `json:"medal_round"`
}

// Entry represents one leaderboard row.
type Entry struct {
	Rank         int            `json:"rank"`
	PlayerID     string         `json:"player_id"`
	PlayerName   string         `json:"player_name"`
	TotalPoints  float64        `json:"total_points"`
	CorrectPicks int            `json:"correct_picks"`
	TotalPicks   int            `json:"total_picks"`
	ScoredGames  int            `json:"scored_games"`
	Accuracy     string         `json:"accuracy"`
	Rounds       RoundBreakdown `json:"round_breakdown"`
}

// Game represents one normalized game row.
type Game struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	State        string    `json:"state"`
	StatusDetail string    `json:"status_detail,omitempty"`
	Round        string    `json:"round"`
	TeamA        string    `json:"team_a"`
	TeamB        string    `json:"team_b"`
	ScoreA       *int      `json:"score_a"`
	ScoreB       *int      `json:"score_b"`
	ScheduledAt  time.Time `json:"scheduled_at"`
}

// FromSummary converts an engine summary into its wire form.
func FromSummary(s scoring.PlayerSummary) Entry {
	return Entry{
		Rank:         s.Rank,
		PlayerID:     s.PlayerID,
		PlayerName:   s.PlayerName,
		TotalPoints:  s.TotalPoints,
		CorrectPicks: s.CorrectPicks,
		TotalPicks:   s.TotalPicks,
		ScoredGames:  s.ScoredGames,
		Accuracy:     s.Accuracy,
		Rounds: RoundBreakdown{
			GroupStage:    RoundLine(s.Rounds.GroupStage),
			KnockoutRound: RoundLine(s.Rounds.KnockoutRound),
			MedalRound:    RoundLine(s.Rounds.MedalRound),
		},
	}
}

// FromGame converts a normalized game into its wire form. The round is
// resolved by the caller so the game listing agrees with scoring decisions.
func FromGame(g model.Game, round model.RoundBucket) Game {
	return Game{
		ID:           g.ID,
		Name:         g.Name,
		State:        string(g.State),
		StatusDetail: g.StatusDetail,
		Round:        string(round),
		TeamA:        g.TeamA,
		TeamB:        g.TeamB,
		ScoreA:       g.ScoreA,
		ScoreB:       g.ScoreB,
		ScheduledAt:  g.ScheduledAt,
	}
}
