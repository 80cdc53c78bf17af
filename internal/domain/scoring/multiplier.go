package scoring

import (
	"strings"
	"unicode"

	"github.com/okian/podium/internal/domain/model"
)

// Overtime describes how a game ended for multiplier purposes.
type Overtime string

const (
	// Regulation means no overtime adjustment applies.
	Regulation Overtime = ""
	// OvertimeEnd means the game was decided in overtime.
	OvertimeEnd Overtime = "overtime"
	// ShootoutEnd means the game was decided in a shootout.
	ShootoutEnd Overtime = "shootout"
)

// Adjusted reports whether an overtime multiplier replaces the base one.
func (o Overtime) Adjusted() bool { return o != Regulation }

// DetectOvertime inspects a free-text status detail for overtime or shootout
// markers. Shootout takes priority over overtime when both could match.
// Matching is case-insensitive: the literal word "shootout", a standalone
// "so" token, a standalone "ot" token, or the word "overtime". An empty
// detail means regulation.
func DetectOvertime(detail string) Overtime {
	if detail == "" {
		return Regulation
	}
	t := strings.ToLower(detail)
	if strings.Contains(t, "shootout") || hasToken(t, "so") {
		return ShootoutEnd
	}
	if hasToken(t, "ot") || strings.Contains(t, "overtime") {
		return OvertimeEnd
	}
	return Regulation
}

// hasToken reports whether text contains word as a standalone token,
// delimited by non-alphanumeric runes. "Final/SO" matches "so";
// "Boston" does not match "so".
func hasToken(text, word string) bool {
	for _, tok := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if tok == word {
			return true
		}
	}
	return false
}

// Multiplier is the resolved scoring multiplier for one game.
type Multiplier struct {
	Value    float64
	Overtime Overtime
}

// ResolveMultiplier resolves the numeric multiplier for a round bucket and
// status detail under cfg. In classic mode the multiplier is the flat
// per-round point value and overtime is irrelevant. In brier mode knockout
// and medal rounds collapse into the playoff bucket, and an overtime or
// shootout finish swaps the base multiplier for the overtime one (a
// replacement, not a product).
func ResolveMultiplier(cfg Config, round model.RoundBucket, statusDetail string) Multiplier {
	if cfg.Mode != ModeBrier {
		return Multiplier{Value: classicPoints(cfg.Points, round)}
	}

	ot := DetectOvertime(statusDetail)
	base, overtime := cfg.Brier.BaseMultipliers.Playoff, cfg.Brier.OvertimeMultipliers.Playoff
	if round == model.RoundGroupStage {
		base, overtime = cfg.Brier.BaseMultipliers.GroupStage, cfg.Brier.OvertimeMultipliers.GroupStage
	}
	if ot.Adjusted() {
		return Multiplier{Value: overtime, Overtime: ot}
	}
	return Multiplier{Value: base}
}

func classicPoints(points RoundPoints, round model.RoundBucket) float64 {
	switch round {
	case model.RoundMedal:
		return points.MedalRound
	case model.RoundKnockout:
		return points.KnockoutRound
	default:
		return points.GroupStage
	}
}
