// Package scoring is the pure computation core: it scores picks against game
// outcomes and builds ranked leaderboards. Every function here is a
// deterministic function of its explicit inputs. The package performs no I/O,
// holds no state, and may be called concurrently without coordination; the
// same (picks, games, config) triple always produces identical output.
package scoring

import "time"

// Mode selects which scoring formula is active. Exactly one mode applies at
// evaluation time; the classic exact-score bonus and brier confidence scoring
// are never combined.
type Mode string

const (
	// ModeClassic awards a flat per-round point value for a correct pick.
	ModeClassic Mode = "classic"
	// ModeBrier awards confidence-weighted points with a quadratic penalty
	// for confident wrong picks.
	ModeBrier Mode = "brier"
)

// Documented defaults applied when config fields are missing.
const (
	DefaultGroupPoints    = 1
	DefaultKnockoutPoints = 2
	DefaultMedalPoints    = 3

	DefaultBrierBase  = 25
	DefaultBrierScale = 100

	DefaultGroupBaseMultiplier   = 1
	DefaultPlayoffBaseMultiplier = 1

	DefaultGroupOvertimeMultiplier   = 0.75
	DefaultPlayoffOvertimeMultiplier = 1.5
)

// RoundPoints holds the flat per-round point values used in classic mode.
type RoundPoints struct {
	GroupStage    float64 `koanf:"group_stage" json:"group_stage"`
	KnockoutRound float64 `koanf:"knockout_round" json:"knockout_round"`
	MedalRound    float64 `koanf:"medal_round" json:"medal_round"`
}

// ExactScoreBonus is an additive award, classic mode only, when predicted
// scores match the final scores exactly.
type ExactScoreBonus struct {
	Enabled bool    `koanf:"enabled" json:"enabled"`
	Points  float64 `koanf:"points" json:"points"`
}

// BucketMultipliers holds per-bucket multipliers for brier mode, where the
// three round buckets collapse into group stage and playoff.
type BucketMultipliers struct {
	GroupStage float64 `koanf:"group_stage" json:"group_stage"`
	Playoff    float64 `koanf:"playoff" json:"playoff"`
}

// BrierParams parameterizes the brier formula
// points = multiplier x (base - scale x (outcome - confidence)^2).
type BrierParams struct {
	Base                float64           `koanf:"base" json:"base"`
	Scale               float64           `koanf:"multiplier" json:"multiplier"`
	BaseMultipliers     BucketMultipliers `koanf:"base_multipliers" json:"base_multipliers"`
	OvertimeMultipliers BucketMultipliers `koanf:"overtime_multipliers" json:"overtime_multipliers"`
}

// Config is the immutable scoring contract. The engine never loads it; callers
// pass it into every call. Missing sections degrade to defaults via
// Normalized, never to errors.
type Config struct {
	Mode            Mode            `koanf:"mode" json:"mode"`
	Points          RoundPoints     `koanf:"points" json:"points"`
	ExactScoreBonus ExactScoreBonus `koanf:"exact_score_bonus" json:"exact_score_bonus"`
	Brier           BrierParams     `koanf:"brier" json:"brier"`
	// KnockoutCutoff is the date-based fallback for round classification:
	// games scheduled on or after it classify as knockout when no explicit
	// hint or keyword matched. Zero disables the fallback.
	KnockoutCutoff time.Time `koanf:"-" json:"-"`
}

// Default returns the fully-populated default configuration.
func Default() Config {
	return Config{
		Mode: ModeClassic,
		Points: RoundPoints{
			GroupStage:    DefaultGroupPoints,
			KnockoutRound: DefaultKnockoutPoints,
			MedalRound:    DefaultMedalPoints,
		},
		Brier: BrierParams{
			Base:  DefaultBrierBase,
			Scale: DefaultBrierScale,
			BaseMultipliers: BucketMultipliers{
				GroupStage: DefaultGroupBaseMultiplier,
				Playoff:    DefaultPlayoffBaseMultiplier,
			},
			OvertimeMultipliers: BucketMultipliers{
				GroupStage: DefaultGroupOvertimeMultiplier,
				Playoff:    DefaultPlayoffOvertimeMultiplier,
			},
		},
	}
}

// Normalized returns a copy of c with every missing field replaced by its
// documented default. A zero value in any numeric field is treated as
// missing; none of the defaults are legitimately zero.
func (c Config) Normalized() Config {
	d := Default()
	if c.Mode != ModeClassic && c.Mode != ModeBrier {
		c.Mode = d.Mode
	}
	if c.Points.GroupStage == 0 {
		c.Points.GroupStage = d.Points.GroupStage
	}
	if c.Points.KnockoutRound == 0 {
		c.Points.KnockoutRound = d.Points.KnockoutRound
	}
	if c.Points.MedalRound == 0 {
		c.Points.MedalRound = d.Points.MedalRound
	}
	if c.Brier.Base == 0 {
		c.Brier.Base = d.Brier.Base
	}
	if c.Brier.Scale == 0 {
		c.Brier.Scale = d.Brier.Scale
	}
	if c.Brier.BaseMultipliers.GroupStage == 0 {
		c.Brier.BaseMultipliers.GroupStage = d.Brier.BaseMultipliers.GroupStage
	}
	if c.Brier.BaseMultipliers.Playoff == 0 {
		c.Brier.BaseMultipliers.Playoff = d.Brier.BaseMultipliers.Playoff
	}
	if c.Brier.OvertimeMultipliers.GroupStage == 0 {
		c.Brier.OvertimeMultipliers.GroupStage = d.Brier.OvertimeMultipliers.GroupStage
	}
	if c.Brier.OvertimeMultipliers.Playoff == 0 {
		c.Brier.OvertimeMultipliers.Playoff = d.Brier.OvertimeMultipliers.Playoff
	}
	return c
}
