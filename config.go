package adapt

import "fmt"

// CATConfig configures the adaptive test loop for one session.
// MaxItems and SEStop are required; zero values for the solver fields
// produce sensible defaults (see field comments).
type CATConfig struct {
	MaxItems           int     `json:"max_items" yaml:"max_items"` // required, > 0
	SEStop             float64 `json:"se_stop" yaml:"se_stop"`     // standard error at which to stop; zero disables the precision stop
	StartTheta         float64 `json:"start_theta" yaml:"start_theta"`
	MaxIterations      int     `json:"max_iterations" yaml:"max_iterations"`           // zero → 25
	ConvergenceEpsilon float64 `json:"convergence_epsilon" yaml:"convergence_epsilon"` // zero → 1e-3
}

// validate checks the required fields. Solver fields are defaulted, not
// validated, so a zero value is never an error.
func (c CATConfig) validate() error {
	if c.MaxItems <= 0 {
		return fmt.Errorf("%w: max_items %d must be > 0", ErrInvalidConfiguration, c.MaxItems)
	}
	if c.SEStop < 0 {
		return fmt.Errorf("%w: se_stop %f must be >= 0", ErrInvalidConfiguration, c.SEStop)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: max_iterations %d must be >= 0", ErrInvalidConfiguration, c.MaxIterations)
	}
	if c.ConvergenceEpsilon < 0 {
		return fmt.Errorf("%w: convergence_epsilon %f must be >= 0", ErrInvalidConfiguration, c.ConvergenceEpsilon)
	}
	return nil
}

// BKTParams are the Bayesian knowledge tracing parameters, each a
// probability in [0, 1].
type BKTParams struct {
	PInit    float64 `json:"p_init" yaml:"p_init"`       // prior mastery before any evidence
	PTransit float64 `json:"p_transit" yaml:"p_transit"` // learning transition per opportunity
	PSlip    float64 `json:"p_slip" yaml:"p_slip"`       // incorrect despite mastery
	PGuess   float64 `json:"p_guess" yaml:"p_guess"`     // correct without mastery
}

// DefaultBKTParams are conventional starting values from the BKT
// literature (Corbett & Anderson).
var DefaultBKTParams = BKTParams{
	PInit:    0.25,
	PTransit: 0.15,
	PSlip:    0.1,
	PGuess:   0.2,
}

// validate checks that every parameter is a probability.
func (p BKTParams) validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"p_init", p.PInit},
		{"p_transit", p.PTransit},
		{"p_slip", p.PSlip},
		{"p_guess", p.PGuess},
	}
	for _, f := range fields {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("%w: %s = %f outside [0, 1]", ErrInvalidConfiguration, f.name, f.v)
		}
	}
	return nil
}
