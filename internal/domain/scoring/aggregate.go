package scoring

import (
	"strconv"

	"github.com/okian/podium/internal/domain/model"
)

// RoundLine is a player's per-bucket scoring breakdown.
type RoundLine struct {
	Correct int
	Total   int
	Points  float64
}

// RoundBreakdown holds one line per round bucket.
type RoundBreakdown struct {
	GroupStage    RoundLine
	KnockoutRound RoundLine
	MedalRound    RoundLine
}

func (b *RoundBreakdown) line(round model.RoundBucket) *RoundLine {
	switch round {
	case model.RoundMedal:
		return &b.MedalRound
	case model.RoundKnockout:
		return &b.KnockoutRound
	default:
		return &b.GroupStage
	}
}

// PlayerSummary is a player's aggregated score. Rank is assigned only by
// RankPlayers, never by the aggregator.
type PlayerSummary struct {
	PlayerID     string
	PlayerName   string
	TotalPoints  float64
	CorrectPicks int
	TotalPicks   int
	ScoredGames  int
	// Accuracy is correct/scored as a percentage with one decimal, "0.0"
	// when nothing has been scored yet.
	Accuracy string
	Rounds   RoundBreakdown
	Rank     int
	// SkippedPicks records picks whose game could not be found or scored.
	// Bad data for one pick never aborts the aggregation.
	SkippedPicks int
}

// AggregateOptions control caller policy for which games are eligible.
type AggregateOptions struct {
	// IncludeLive counts provisional scores for in-progress games. When
	// false, only final games contribute.
	IncludeLive bool
}

// AggregatePlayer folds ScorePick over every pick the player submitted.
// Unknown game ids and unscoreable games are skipped, not fatal. games is
// keyed by game id.
func AggregatePlayer(picks []model.Pick, games map[string]model.Game, cfg Config, opts AggregateOptions) PlayerSummary {
	cfg = cfg.Normalized()
	s := PlayerSummary{TotalPicks: len(picks)}
	if len(picks) > 0 {
		s.PlayerID = picks[0].PlayerID
		s.PlayerName = picks[0].PlayerName
	}

	for _, pick := range picks {
		game, ok := games[pick.GameID]
		if !ok {
			s.SkippedPicks++
			continue
		}
		res := ScorePick(pick, game, cfg)
		if !res.Scored {
			s.SkippedPicks++
			continue
		}
		if res.Details.Live && !opts.IncludeLive {
			s.SkippedPicks++
			continue
		}

		line := s.Rounds.line(res.Details.Round)
		line.Total++
		line.Points = round2(line.Points + res.TotalPoints)
		s.ScoredGames++
		s.TotalPoints = round2(s.TotalPoints + res.TotalPoints)
		if res.IsCorrect {
			s.CorrectPicks++
			line.Correct++
		}
	}

	s.Accuracy = formatAccuracy(s.CorrectPicks, s.ScoredGames)
	return s
}

// formatAccuracy never divides by zero: zero scored games reads "0.0".
func formatAccuracy(correct, scored int) string {
	if scored == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(correct)/float64(scored)*100, 'f', 1, 64)
}
