package pickstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/podium/internal/domain/model"
)

// seedPick mirrors the JSON shape of a pick fixture file.
type seedPick struct {
	PlayerID        string   `json:"player_id"`
	PlayerName      string   `json:"player_name"`
	GameID          string   `json:"game_id"`
	PredictedScoreA int      `json:"predicted_score_a"`
	PredictedScoreB int      `json:"predicted_score_b"`
	Confidence      *float64 `json:"confidence,omitempty"`
}

// LoadFile seeds the store from a JSON array of picks. Out-of-range values
// in legacy fixtures are normalized through the same clamping path as live
// submissions.
func LoadFile(ctx context.Context, store Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read picks file: %w", err)
	}
	var seeds []seedPick
	if err := json.Unmarshal(data, &seeds); err != nil {
		return 0, fmt.Errorf("parse picks file: %w", err)
	}

	loaded := 0
	for _, sp := range seeds {
		sub := model.PickSubmission{
			PlayerID:        sp.PlayerID,
			PlayerName:      sp.PlayerName,
			GameID:          sp.GameID,
			PredictedScoreA: sp.PredictedScoreA,
			PredictedScoreB: sp.PredictedScoreB,
			Confidence:      sp.Confidence,
		}
		if err := store.Put(ctx, sub.Pick()); err != nil {
			continue // one bad row never blocks the rest
		}
		loaded++
	}
	return loaded, nil
}
