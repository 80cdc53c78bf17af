package scoring

import "math"

// Confidence bounds. Values outside the range are clamped, never rejected;
// legacy pick data is known to contain out-of-range values.
const (
	MinConfidence = 0.5
	MaxConfidence = 1.0
)

// DefaultConfidence is the risk-neutral value used when a pick carries no
// confidence. At 0.5 a pick contributes exactly zero points, win or lose.
const DefaultConfidence = 0.5

// ClampConfidence forces c into [MinConfidence, MaxConfidence].
func ClampConfidence(c float64) float64 {
	if math.IsNaN(c) || c < MinConfidence {
		return MinConfidence
	}
	if c > MaxConfidence {
		return MaxConfidence
	}
	return c
}

// BrierPoints computes the confidence-weighted point value for one pick:
//
//	points = multiplier x (base - scale x (outcome - confidence)^2)
//
// with outcome 1 for a correct pick and 0 otherwise. The result is rounded
// to two decimal places. The multiplier scales the whole expression, so a
// playoff multiplier doubles the penalty along with the reward. At
// confidence 0.5 the points are exactly zero either way; that anchor is what
// makes the default confidence risk-neutral. With the default base 25 and
// scale 100, a certain correct pick earns +25 and a certain wrong pick earns
// -75. The negative is intended.
func BrierPoints(correct bool, confidence, multiplier float64, params BrierParams) float64 {
	c := ClampConfidence(confidence)
	outcome := 0.0
	if correct {
		outcome = 1.0
	}
	diff := outcome - c
	return round2(multiplier * (params.Base - params.Scale*diff*diff))
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
