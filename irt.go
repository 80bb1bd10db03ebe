package adapt

import "math"

// expClamp bounds the logistic exponent before math.Exp to avoid
// floating-point overflow for extreme theta/difficulty gaps.
const expClamp = 35.0

// ProbabilityCorrect computes the 2PL probability of a correct response:
// P(theta) = 1 / (1 + e^(-a * (theta - b))).
// Strictly increasing in theta for a > 0.
func ProbabilityCorrect(it Item, theta float64) float64 {
	x := it.Discrimination * (theta - it.Difficulty)
	if x > expClamp {
		x = expClamp
	}
	if x < -expClamp {
		x = -expClamp
	}
	return 1.0 / (1.0 + math.Exp(-x))
}

// Information computes the 2PL Fisher information of the item at theta:
// I(theta) = a² * p * (1 - p), maximal where p ≈ 0.5.
func Information(it Item, theta float64) float64 {
	p := ProbabilityCorrect(it, theta)
	return it.Discrimination * it.Discrimination * p * (1 - p)
}

// clampUnit clamps a probability to [0, 1].
func clampUnit(p float64) float64 {
	return math.Min(math.Max(p, 0), 1)
}
