package scoring

import (
	"strings"
	"time"

	"github.com/okian/podium/internal/domain/model"
)

// ClassifyRound determines which round bucket a game belongs to. The stages
// run strictly in order and later stages only run when earlier ones are
// inconclusive:
//
//  1. explicit round hint, when it names a valid bucket
//  2. keyword match on the game name and season-type text
//  3. the configured knockout cutoff date, when set
//  4. default group stage
//
// The keyword stage is intentionally lossy: a mis-tagged name silently
// misclassifies and that is accepted behavior.
func ClassifyRound(game model.Game, knockoutCutoff time.Time) model.RoundBucket {
	if model.ValidRound(game.RoundHint) {
		return game.RoundHint
	}

	text := strings.ToLower(game.Name + " " + game.SeasonType)
	switch {
	case strings.Contains(text, "gold"), strings.Contains(text, "bronze"):
		return model.RoundMedal
	case strings.Contains(text, "semifinal"),
		strings.Contains(text, "quarterfinal"),
		strings.Contains(text, "knockout"):
		return model.RoundKnockout
	case strings.Contains(text, "group"):
		return model.RoundGroupStage
	}

	if !knockoutCutoff.IsZero() && !game.ScheduledAt.Before(knockoutCutoff) {
		return model.RoundKnockout
	}
	return model.RoundGroupStage
}
