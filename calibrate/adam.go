package calibrate

import "math"

// Adam hyperparameters, standard values.
const (
	adamBeta1 = 0.9
	adamBeta2 = 0.999
	adamEps   = 1e-8
)

// moments holds the Adam state for a single 2PL parameter: exponential
// moving averages of its gradient and squared gradient.
type moments struct {
	grad, sq float64
}

// delta folds in one gradient sample and returns the bias-corrected
// descent step for the parameter.
func (m *moments) delta(g, lr float64, step int) float64 {
	m.grad = adamBeta1*m.grad + (1-adamBeta1)*g
	m.sq = adamBeta2*m.sq + (1-adamBeta2)*g*g
	gHat := m.grad / (1 - math.Pow(adamBeta1, float64(step)))
	sqHat := m.sq / (1 - math.Pow(adamBeta2, float64(step)))
	return lr * gHat / (math.Sqrt(sqHat) + adamEps)
}

// Adam descends the calibration loss with an independent adaptive step
// size for each 2PL parameter. Discrimination and difficulty gradients
// live on different scales (the difficulty partial carries an extra
// factor of a), which the per-parameter second-moment normalization
// absorbs without hand-tuned per-parameter rates.
type Adam struct {
	lr   float64
	disc moments // discrimination (a)
	diff moments // difficulty (b)
	step int
}

// NewAdam creates an optimizer with the given base learning rate.
func NewAdam(lr float64) *Adam {
	return &Adam{lr: lr}
}

// Update applies one descent step against the loss gradient and returns
// the updated {discrimination, difficulty} pair. A zero partial leaves
// that parameter and its moment state untouched.
func (o *Adam) Update(params, grad [2]float64) [2]float64 {
	o.step++
	if grad[0] != 0 {
		params[0] -= o.disc.delta(grad[0], o.lr, o.step)
	}
	if grad[1] != 0 {
		params[1] -= o.diff.delta(grad[1], o.lr, o.step)
	}
	return params
}

// SetLR replaces the base learning rate. The annealing schedule calls
// this before every step.
func (o *Adam) SetLR(lr float64) {
	o.lr = lr
}

// cosineLR decays the learning rate from base to zero over the planned
// number of optimizer steps along a half-cosine, so late mini-batches
// refine the fit instead of bouncing around the minimum.
type cosineLR struct {
	base  float64
	total int
	t     int
}

func newCosineLR(base float64, total int) *cosineLR {
	return &cosineLR{base: base, total: total}
}

// lr returns the rate for the current step.
func (c *cosineLR) lr() float64 {
	return 0.5 * c.base * (1 + math.Cos(math.Pi*float64(c.t)/float64(c.total)))
}

// advance consumes one step of the schedule and returns the new rate.
func (c *cosineLR) advance() float64 {
	c.t++
	return c.lr()
}
