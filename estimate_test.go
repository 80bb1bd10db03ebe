package adapt

import (
	"math"
	"testing"
)

func defaultEstimator() estimator {
	return newEstimator(0, 0)
}

// --- empty history ---

func TestEstimateEmptyHistory(t *testing.T) {
	est := defaultEstimator().estimate(nil, 0.7)
	if est.Theta != 0.7 {
		t.Errorf("Theta = %.4f, want start theta 0.7 unmodified", est.Theta)
	}
	if !math.IsInf(est.StandardError, 1) {
		t.Errorf("StandardError = %v, want +Inf", est.StandardError)
	}
	if !est.Degenerate {
		t.Error("empty history should be flagged Degenerate")
	}
	if est.Converged {
		t.Error("empty history should not be flagged Converged")
	}
}

// --- derivatives ---

func TestDerivativesAtSymmetry(t *testing.T) {
	// One correct and one incorrect response on the same item: the
	// likelihood peaks at theta = b, where L1 = 0.
	it := testItem("q1", 2.0, 0.0)
	history := []Response{{Item: it, Correct: true}, {Item: it, Correct: false}}

	l1, l2 := derivatives(history, 0.0)
	assertFloat(t, "L1", l1, 0.0)
	// L2 = -2 * a² * p * (1-p) = -2 * 4 * 0.25 = -2.
	assertFloat(t, "L2", l2, -2.0)
}

func TestDerivativesSigns(t *testing.T) {
	it := testItem("q1", 1.0, 0.0)
	correct := []Response{{Item: it, Correct: true}}
	incorrect := []Response{{Item: it, Correct: false}}

	l1c, l2c := derivatives(correct, 0.0)
	if l1c <= 0 {
		t.Errorf("L1 after correct = %.4f, want > 0", l1c)
	}
	l1i, _ := derivatives(incorrect, 0.0)
	if l1i >= 0 {
		t.Errorf("L1 after incorrect = %.4f, want < 0", l1i)
	}
	if l2c >= 0 {
		t.Errorf("L2 = %.4f, want < 0", l2c)
	}
}

// --- convergence ---

func TestEstimateConvergesToSymmetricOptimum(t *testing.T) {
	// Balanced correct/incorrect on identical items has its MLE at b.
	it := testItem("q1", 2.0, 0.5)
	history := []Response{
		{Item: it, Correct: true},
		{Item: it, Correct: false},
		{Item: it, Correct: true},
		{Item: it, Correct: false},
	}
	est := defaultEstimator().estimate(history, 0.0)
	if !est.Converged {
		t.Error("balanced history should converge")
	}
	if est.Degenerate {
		t.Error("balanced history should not be degenerate")
	}
	assertFloat(t, "Theta", est.Theta, 0.5)
	// SE = sqrt(1 / -L2) at the final theta.
	_, l2 := derivatives(history, est.Theta)
	assertFloat(t, "StandardError", est.StandardError, math.Sqrt(1.0/-l2))
}

func TestEstimateMixedBankFixture(t *testing.T) {
	// Mixed outcomes across items of staggered difficulty: the solver
	// must land at the zero of L1 regardless of start.
	items := []Item{
		testItem("q1", 1.0, -1.0),
		testItem("q2", 1.5, 0.0),
		testItem("q3", 2.0, 1.0),
	}
	history := []Response{
		{Item: items[0], Correct: true},
		{Item: items[1], Correct: true},
		{Item: items[2], Correct: false},
	}
	for _, start := range []float64{-3.0, 0.0, 3.0} {
		est := defaultEstimator().estimate(history, start)
		if !est.Converged {
			t.Errorf("start %.1f: not converged", start)
		}
		l1, _ := derivatives(history, est.Theta)
		if math.Abs(l1) > 1e-2 {
			t.Errorf("start %.1f: L1(theta) = %.5f, want ≈ 0", start, l1)
		}
	}
}

func TestEstimateStartIndependence(t *testing.T) {
	it := testItem("q1", 1.2, 0.0)
	history := []Response{
		{Item: it, Correct: true},
		{Item: it, Correct: false},
	}
	a := defaultEstimator().estimate(history, -2.0)
	b := defaultEstimator().estimate(history, 2.0)
	if math.Abs(a.Theta-b.Theta) > 1e-2 {
		t.Errorf("theta differs by start: %.4f vs %.4f", a.Theta, b.Theta)
	}
}

// --- degenerate outcomes ---

func TestEstimateAllCorrectWalksUp(t *testing.T) {
	// An all-correct history has no finite MLE: the estimate rises to
	// the ability bound and is flagged non-converged, never an error.
	it := testItem("q1", 1.0, 0.0)
	history := []Response{
		{Item: it, Correct: true},
		{Item: it, Correct: true},
		{Item: it, Correct: true},
	}
	est := defaultEstimator().estimate(history, 0.0)
	if est.Theta <= 0 {
		t.Errorf("Theta = %.4f, want > 0 after all-correct history", est.Theta)
	}
	if est.Theta > thetaBound {
		t.Errorf("Theta = %.4f exceeds bound %.1f", est.Theta, thetaBound)
	}
	if est.Converged {
		t.Error("all-correct history should not converge")
	}
}

func TestEstimateAllIncorrectWalksDown(t *testing.T) {
	it := testItem("q1", 1.0, 0.0)
	history := []Response{
		{Item: it, Correct: false},
		{Item: it, Correct: false},
	}
	est := defaultEstimator().estimate(history, 0.0)
	if est.Theta >= 0 {
		t.Errorf("Theta = %.4f, want < 0 after all-incorrect history", est.Theta)
	}
}

func TestEstimateNonConvergenceCap(t *testing.T) {
	// maxIter=1 cannot converge on a history whose optimum is far from
	// the start; the last computed theta is still returned.
	it := testItem("q1", 2.0, 3.0)
	history := []Response{
		{Item: it, Correct: true},
		{Item: it, Correct: false},
	}
	est := newEstimator(1, 0).estimate(history, -3.0)
	if est.Converged {
		t.Error("one iteration should not converge from a distant start")
	}
	if est.Theta == -3.0 {
		t.Error("theta should have moved after one iteration")
	}
}

// --- step damping ---

func TestEstimateSaturatedStartRecovers(t *testing.T) {
	// Starting at the ability bound saturates the logistic; damped steps
	// must still walk back to the interior optimum.
	it := testItem("q1", 2.0, 0.0)
	history := []Response{
		{Item: it, Correct: true},
		{Item: it, Correct: false},
	}
	est := defaultEstimator().estimate(history, thetaBound)
	if math.Abs(est.Theta) > 0.1 {
		t.Errorf("Theta = %.4f, want ≈ 0 after recovery from saturated start", est.Theta)
	}
}

func TestClampTheta(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.0, 0.0},
		{thetaBound, thetaBound},
		{-thetaBound, -thetaBound},
		{thetaBound + 5, thetaBound},
		{-thetaBound - 5, -thetaBound},
	}
	for _, tt := range tests {
		assertFloat(t, "clampTheta", clampTheta(tt.in), tt.want)
	}
}

// --- defaults ---

func TestNewEstimatorDefaults(t *testing.T) {
	e := newEstimator(0, 0)
	if e.maxIter != defaultMaxIterations {
		t.Errorf("maxIter = %d, want %d", e.maxIter, defaultMaxIterations)
	}
	assertFloat(t, "convergence", e.convergence, defaultConvergenceEpsilon)

	e2 := newEstimator(40, 1e-5)
	if e2.maxIter != 40 {
		t.Errorf("maxIter = %d, want 40", e2.maxIter)
	}
	assertFloat(t, "convergence override", e2.convergence, 1e-5)
}
