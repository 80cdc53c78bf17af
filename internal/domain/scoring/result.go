package scoring

import "github.com/okian/podium/internal/domain/model"

// ResolveResult derives the canonical outcome from a pair of scores. It
// returns ResultNone iff either score is nil. Comparison is strict integer
// equality; there is no rounding or tolerance.
func ResolveResult(scoreA, scoreB *int) model.Result {
	if scoreA == nil || scoreB == nil {
		return model.ResultNone
	}
	switch {
	case *scoreA > *scoreB:
		return model.ResultWinA
	case *scoreB > *scoreA:
		return model.ResultWinB
	default:
		return model.ResultTie
	}
}

// resolveScores is the int (non-pointer) variant used for predicted scores,
// which are always present.
func resolveScores(a, b int) model.Result {
	return ResolveResult(&a, &b)
}
