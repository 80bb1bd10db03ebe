package adapt

import "math"

// Defaults for the Newton-Raphson solver. Zero-valued CATConfig fields
// fall back to these.
const (
	defaultMaxIterations      = 25
	defaultConvergenceEpsilon = 1e-3

	// curvatureEpsilon guards 1/L2: below this magnitude the second
	// derivative is treated as numerically degenerate.
	curvatureEpsilon = 1e-10

	// maxStep damps each Newton step. Far from the optimum the logistic
	// saturates and raw L1/L2 steps overshoot by orders of magnitude.
	maxStep = 1.0

	// thetaBound keeps the estimate inside the operational ability range.
	// An all-correct or all-incorrect history has no finite MLE; the
	// estimate walks to the bound and is flagged as non-converged.
	thetaBound = 6.0
)

// Response pairs an administered item with the observed correctness.
type Response struct {
	Item    Item `json:"item"`
	Correct bool `json:"correct"`
}

// AbilityEstimate is the result of one maximum-likelihood solve.
//
// Converged=false and Degenerate=true are legitimate states of partial
// information (too few responses, all-identical outcomes), not failures:
// Theta is always usable and StandardError is +Inf when undetermined.
type AbilityEstimate struct {
	Theta         float64 `json:"theta"`
	StandardError float64 `json:"standard_error"` // +Inf when undetermined.
	Converged     bool    `json:"converged"`
	Degenerate    bool    `json:"degenerate"`
}

// estimator runs Newton-Raphson maximum-likelihood ability estimation.
type estimator struct {
	maxIter     int
	convergence float64
}

func newEstimator(maxIter int, convergence float64) estimator {
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	if convergence <= 0 {
		convergence = defaultConvergenceEpsilon
	}
	return estimator{maxIter: maxIter, convergence: convergence}
}

// derivatives computes the first and second derivatives of the
// log-likelihood of the response history at theta:
//
//	L1 = Σ aᵢ * (yᵢ - pᵢ)
//	L2 = -Σ aᵢ² * pᵢ * (1 - pᵢ)
func derivatives(history []Response, theta float64) (l1, l2 float64) {
	for _, r := range history {
		p := ProbabilityCorrect(r.Item, theta)
		y := 0.0
		if r.Correct {
			y = 1.0
		}
		a := r.Item.Discrimination
		l1 += a * (y - p)
		l2 -= a * a * p * (1 - p)
	}
	return l1, l2
}

// clampTheta bounds an ability value to [-thetaBound, thetaBound].
func clampTheta(t float64) float64 {
	return math.Min(math.Max(t, -thetaBound), thetaBound)
}

// estimate refines startTheta against the full response history.
// An empty history returns startTheta untouched with undetermined
// standard error. Failure to converge within maxIter returns the last
// computed theta with Converged=false.
func (e estimator) estimate(history []Response, startTheta float64) AbilityEstimate {
	if len(history) == 0 {
		return AbilityEstimate{
			Theta:         startTheta,
			StandardError: math.Inf(1),
			Degenerate:    true,
		}
	}

	theta := clampTheta(startTheta)
	converged := false
	for i := 0; i < e.maxIter; i++ {
		l1, l2 := derivatives(history, theta)
		if math.Abs(l2) < curvatureEpsilon {
			// Flat likelihood: keep the current theta.
			break
		}
		step := l1 / l2
		if step > maxStep {
			step = maxStep
		}
		if step < -maxStep {
			step = -maxStep
		}
		theta = clampTheta(theta - step)
		if math.Abs(step) < e.convergence {
			converged = true
			break
		}
	}

	// Standard error from the observed information at the final theta.
	_, l2 := derivatives(history, theta)
	if l2 < -curvatureEpsilon {
		return AbilityEstimate{
			Theta:         theta,
			StandardError: math.Sqrt(1.0 / -l2),
			Converged:     converged,
		}
	}
	return AbilityEstimate{
		Theta:         theta,
		StandardError: math.Inf(1),
		Converged:     converged,
		Degenerate:    true,
	}
}
