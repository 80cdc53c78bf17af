// Package model contains domain models passed between layers.
package model

import "time"

// GameState is the closed set of normalized game states.
type GameState string

// Normalized game states. Anything the boundary cannot recognize becomes
// StateUnknown, which downstream scoring treats as not scoreable.
const (
	StateScheduled  GameState = "scheduled"
	StateInProgress GameState = "in_progress"
	StateFinal      GameState = "final"
	StateUnknown    GameState = "unknown"
)

// Result is the canonical outcome of a two-team contest.
// The zero value means "no result" (a score is still missing).
type Result string

const (
	ResultWinA Result = "win_a"
	ResultWinB Result = "win_b"
	ResultTie  Result = "tie"
	ResultNone Result = ""
)

// RoundBucket classifies a game into one of three tournament phases.
type RoundBucket string

const (
	RoundGroupStage RoundBucket = "group_stage"
	RoundKnockout   RoundBucket = "knockout_round"
	RoundMedal      RoundBucket = "medal_round"
)

// ValidRound reports whether b is one of the three known buckets.
func ValidRound(b RoundBucket) bool {
	switch b {
	case RoundGroupStage, RoundKnockout, RoundMedal:
		return true
	default:
		return false
	}
}

// Game is the normalized shape of an upstream game record. The feed adapter
// produces it; the scoring engine only ever reads it.
type Game struct {
	ID           string    // opaque id, stable per contest
	Name         string    // free-text name, used by round keyword matching
	SeasonType   string    // upstream season/phase label, also keyword-matched
	ScheduledAt  time.Time // scheduled start
	State        GameState
	StatusDetail string      // free text, may encode OT/SO
	RoundHint    RoundBucket // explicit round when upstream supplies one, else ""
	TeamA        string
	TeamB        string
	ScoreA       *int // nil until known
	ScoreB       *int
}

// Pick is a player's prediction for one game.
type Pick struct {
	PlayerID        string
	PlayerName      string
	GameID          string
	PredictedScoreA int
	PredictedScoreB int
	// PredictedResult is optional; when empty the result is derived from the
	// predicted scores.
	PredictedResult Result
	// Confidence is the player's certainty in [0.5, 1.0]. Nil means the player
	// never chose one and defaults to the risk-neutral 0.5.
	Confidence *float64
}

// PickSubmission is an inbound pick waiting to be validated and stored.
// Fields mirror the POST /picks request schema.
type PickSubmission struct {
	SubmissionID    string // unique id for idempotency
	PlayerID        string
	PlayerName      string
	GameID          string
	PredictedScoreA int
	PredictedScoreB int
	PredictedResult Result
	Confidence      *float64
	TS              time.Time
}

// Pick converts a submission into a storable pick. Out-of-range values are
// normalized here rather than rejected: negative predicted scores clamp to
// zero and confidence clamps into [0.5, 1.0].
func (s PickSubmission) Pick() Pick {
	p := Pick{
		PlayerID:        s.PlayerID,
		PlayerName:      s.PlayerName,
		GameID:          s.GameID,
		PredictedScoreA: clampNonNegative(s.PredictedScoreA),
		PredictedScoreB: clampNonNegative(s.PredictedScoreB),
		PredictedResult: s.PredictedResult,
	}
	if s.Confidence != nil {
		c := *s.Confidence
		if c < 0.5 {
			c = 0.5
		}
		if c > 1.0 {
			c = 1.0
		}
		p.Confidence = &c
	}
	return p
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// IntPtr is a small helper for building score pointers in fixtures and tests.
func IntPtr(n int) *int { return &n }

// Float64Ptr is a small helper for building confidence pointers.
func Float64Ptr(f float64) *float64 { return &f }
