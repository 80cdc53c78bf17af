package seeder

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Score generation ranges.
const (
	maxGoals         = 6
	randomDivisor    = 1000000
	groupShare       = 0.6 // fraction of games in the group stage
	knockoutShare    = 0.3
	finalShare       = 0.7 // fraction of games already finished
	inProgressShare  = 0.15
	overtimeShare    = 0.2 // fraction of finished games decided late
	confidenceFloor  = 0.5
	confidenceSpread = 0.5
)

var teamNames = []string{
	"Falcons", "Bears", "Otters", "Ravens", "Wolves", "Lynx",
	"Drakes", "Bison", "Herons", "Vipers", "Moose", "Cranes",
}

// gameRecord mirrors the feed file schema. Status is any because the feed
// accepts string, numeric, and structured encodings; the generator emits a
// mix so the normalizer is exercised end to end.
type gameRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      any       `json:"status"`
	Round       string    `json:"round,omitempty"`
	TeamA       string    `json:"team_a"`
	TeamB       string    `json:"team_b"`
	ScoreA      *int      `json:"score_a,omitempty"`
	ScoreB      *int      `json:"score_b,omitempty"`
}

// pickRecord mirrors the POST /picks schema and the picks fixture schema.
type pickRecord struct {
	SubmissionID    string   `json:"submission_id,omitempty"`
	PlayerID        string   `json:"player_id"`
	PlayerName      string   `json:"player_name"`
	GameID          string   `json:"game_id"`
	PredictedScoreA int      `json:"predicted_score_a"`
	PredictedScoreB int      `json:"predicted_score_b"`
	Confidence      *float64 `json:"confidence,omitempty"`
}

// randomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomDivisor))
	return float64(n.Int64()) / float64(randomDivisor)
}

// randomInt returns a random int in [0, n).
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateGames builds a tournament worth of games: mostly finished group
// games, a knockout slice, and one medal game at the end.
func generateGames(cfg *Config) []gameRecord {
	base := time.Now().UTC().Truncate(time.Hour)
	games := make([]gameRecord, cfg.NumGames)

	for i := range games {
		teamA := teamNames[randomInt(len(teamNames))]
		teamB := teamNames[randomInt(len(teamNames))]
		for teamB == teamA {
			teamB = teamNames[randomInt(len(teamNames))]
		}

		g := gameRecord{
			ID:          fmt.Sprintf("game-%04d", i+1),
			ScheduledAt: base.Add(time.Duration(i-cfg.NumGames) * 6 * time.Hour),
			TeamA:       teamA,
			TeamB:       teamB,
		}

		position := float64(i) / float64(cfg.NumGames)
		switch {
		case i == cfg.NumGames-1:
			g.Name = fmt.Sprintf("Gold Medal Game: %s vs %s", teamA, teamB)
			g.Round = "medal_round"
		case position >= groupShare+knockoutShare:
			g.Name = fmt.Sprintf("Bronze Medal Game: %s vs %s", teamA, teamB)
			g.Round = "medal_round"
		case position >= groupShare:
			g.Name = fmt.Sprintf("Semifinal: %s vs %s", teamA, teamB)
			g.Round = "knockout_round"
		default:
			g.Name = fmt.Sprintf("Group %c: %s vs %s", 'A'+byte(i%4), teamA, teamB)
			g.Round = "group_stage"
		}

		r := randomFloat()
		switch {
		case r < finalShare:
			scoreA, scoreB := randomInt(maxGoals), randomInt(maxGoals)
			g.ScoreA, g.ScoreB = &scoreA, &scoreB
			g.Status = finishedStatus(i)
		case r < finalShare+inProgressShare:
			scoreA, scoreB := randomInt(maxGoals), randomInt(maxGoals)
			g.ScoreA, g.ScoreB = &scoreA, &scoreB
			g.Status = map[string]any{
				"type":   map[string]any{"state": "in"},
				"detail": "2nd Period",
			}
		default:
			g.Status = "scheduled"
		}
		games[i] = g
	}
	return games
}

// finishedStatus rotates through the status encodings upstream has shipped,
// including overtime and shootout finishes.
func finishedStatus(i int) any {
	if randomFloat() < overtimeShare {
		if i%2 == 0 {
			return map[string]any{"state": "post", "detail": "Final/OT"}
		}
		return map[string]any{"state": "post", "detail": "Final/SO"}
	}
	switch i % 3 {
	case 0:
		return "final"
	case 1:
		return 3 // numeric post-game code
	default:
		return map[string]any{"type": map[string]any{"state": "post", "shortDetail": "Final"}}
	}
}

// generatePicks creates one pick per player per game.
func generatePicks(games []gameRecord, cfg *Config) []pickRecord {
	picks := make([]pickRecord, 0, len(games)*cfg.NumPlayers)

	for p := 0; p < cfg.NumPlayers; p++ {
		playerID := uuid.New().String()
		playerName := fmt.Sprintf("player-%03d", p+1)

		for _, g := range games {
			pick := pickRecord{
				SubmissionID:    uuid.New().String(),
				PlayerID:        playerID,
				PlayerName:      playerName,
				GameID:          g.ID,
				PredictedScoreA: randomInt(maxGoals),
				PredictedScoreB: randomInt(maxGoals),
			}
			// Half the players play with explicit confidence.
			if p%2 == 0 {
				c := confidenceFloor + randomFloat()*confidenceSpread
				pick.Confidence = &c
			}
			picks = append(picks, pick)
		}
	}
	return picks
}
