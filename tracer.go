package adapt

import "math"

// bktDenominatorEpsilon guards the evidence-update denominator.
const bktDenominatorEpsilon = 1e-12

// Tracer maintains a per-skill mastery probability using Bayesian
// knowledge tracing. Skills initialize to PInit on first touch. A Tracer
// is owned by a single session; it performs no locking.
type Tracer struct {
	params  BKTParams
	mastery map[string]float64
}

// NewTracer creates a Tracer with the given parameters and no prior
// evidence. NewSession validates the parameters; a Tracer built directly
// accepts them as-is.
func NewTracer(params BKTParams) *Tracer {
	return &Tracer{
		params:  params,
		mastery: make(map[string]float64),
	}
}

// NewTracerFrom seeds a Tracer with a prior mastery snapshot, for callers
// that carry mastery across sessions. Unseen skills still initialize to
// PInit; snapshot values are clamped to [0, 1].
func NewTracerFrom(params BKTParams, snapshot map[string]float64) *Tracer {
	t := NewTracer(params)
	for skill, p := range snapshot {
		t.mastery[skill] = clampUnit(p)
	}
	return t
}

// Update applies one Bayesian update for an observed response on the
// skill and returns the new mastery probability.
//
// Evidence step (correct):   p|e = p(1-slip) / (p(1-slip) + (1-p)guess)
// Evidence step (incorrect): p|e = p·slip / (p·slip + (1-p)(1-guess))
// Learning step:             p' = p|e + (1 - p|e)·transit
func (t *Tracer) Update(skill string, correct bool) float64 {
	p := t.Mastery(skill)

	var num, den float64
	if correct {
		num = p * (1 - t.params.PSlip)
		den = num + (1-p)*t.params.PGuess
	} else {
		num = p * t.params.PSlip
		den = num + (1-p)*(1-t.params.PGuess)
	}
	evidence := num / math.Max(den, bktDenominatorEpsilon)

	next := clampUnit(evidence + (1-evidence)*t.params.PTransit)
	t.mastery[skill] = next
	return next
}

// Mastery returns the current mastery probability for the skill,
// PInit if the skill has no evidence yet. Read-only.
func (t *Tracer) Mastery(skill string) float64 {
	if p, ok := t.mastery[skill]; ok {
		return p
	}
	return t.params.PInit
}

// Snapshot returns a copy of the skill → mastery map for every skill
// with at least one observed response. Callable any number of times.
func (t *Tracer) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(t.mastery))
	for skill, p := range t.mastery {
		out[skill] = p
	}
	return out
}
