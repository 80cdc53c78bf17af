package scoring

import "github.com/okian/podium/internal/domain/model"

// Reasons recorded on neutral (zero-point) results. These are the only audit
// trail for why a pick did not score; they are human-readable by design.
const (
	ReasonNotStarted    = "game not started"
	ReasonMissingScores = "missing scores"
	ReasonGameNotFound  = "game not found"
)

// ScoreDetails carries everything needed to reproduce a scoring decision
// from (pick, game, config) alone.
type ScoreDetails struct {
	Reason          string
	Round           model.RoundBucket
	Multiplier      float64
	Overtime        bool
	Live            bool // scored provisionally against an in-progress game
	Confidence      float64
	PredictedResult model.Result
	ActualResult    model.Result
	PredictedScoreA int
	PredictedScoreB int
	ActualScoreA    *int
	ActualScoreB    *int
	ExactScore      bool
}

// PickScore is the computed outcome of scoring one pick against one game.
// It is created fresh on every evaluation and never mutated afterward.
type PickScore struct {
	PlayerID    string
	GameID      string
	IsCorrect   bool
	TotalPoints float64
	// Scored is false for neutral results (unplayed game, missing scores);
	// such picks do not count toward a player's scored-game totals.
	Scored  bool
	Details ScoreDetails
}

// ScorePick scores one pick against one game under cfg. It never fails:
// every malformed or incomplete input degrades to a zero-point result with a
// reason in Details. In-progress games score provisionally in both modes so
// callers can offer live leaderboards; the aggregator decides whether those
// provisional scores count.
func ScorePick(pick model.Pick, game model.Game, cfg Config) PickScore {
	cfg = cfg.Normalized()
	ps := PickScore{PlayerID: pick.PlayerID, GameID: game.ID}

	if game.State != model.StateFinal && game.State != model.StateInProgress {
		ps.Details.Reason = ReasonNotStarted
		return ps
	}
	if game.ScoreA == nil || game.ScoreB == nil {
		ps.Details.Reason = ReasonMissingScores
		return ps
	}

	actual := ResolveResult(game.ScoreA, game.ScoreB)
	round := ClassifyRound(game, cfg.KnockoutCutoff)
	mult := ResolveMultiplier(cfg, round, game.StatusDetail)

	predicted := pick.PredictedResult
	if predicted == model.ResultNone {
		predicted = resolveScores(pick.PredictedScoreA, pick.PredictedScoreB)
	}

	confidence := DefaultConfidence
	if pick.Confidence != nil {
		confidence = ClampConfidence(*pick.Confidence)
	}

	correct := predicted == actual
	exact := pick.PredictedScoreA == *game.ScoreA && pick.PredictedScoreB == *game.ScoreB

	ps.IsCorrect = correct
	ps.Scored = true
	ps.Details = ScoreDetails{
		Round:           round,
		Multiplier:      mult.Value,
		Overtime:        mult.Overtime.Adjusted(),
		Live:            game.State == model.StateInProgress,
		Confidence:      confidence,
		PredictedResult: predicted,
		ActualResult:    actual,
		PredictedScoreA: pick.PredictedScoreA,
		PredictedScoreB: pick.PredictedScoreB,
		ActualScoreA:    game.ScoreA,
		ActualScoreB:    game.ScoreB,
		ExactScore:      exact,
	}

	switch cfg.Mode {
	case ModeBrier:
		// Brier points apply even to incorrect picks; overconfidence goes
		// negative on purpose.
		ps.TotalPoints = BrierPoints(correct, confidence, mult.Value, cfg.Brier)
	default:
		if correct {
			ps.TotalPoints = mult.Value
			if exact && cfg.ExactScoreBonus.Enabled {
				ps.TotalPoints += cfg.ExactScoreBonus.Points
			}
		}
	}
	return ps
}
