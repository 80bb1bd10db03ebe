package adapt

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// Property tests for the universally quantified guarantees: any calibrated
// item, any response sequence, any bank.

func drawItem(rt *rapid.T, id string) Item {
	return Item{
		ID:             id,
		Skill:          rapid.SampledFrom([]string{"algebra", "geometry", "fractions"}).Draw(rt, "skill"),
		Discrimination: rapid.Float64Range(0.2, 3.0).Draw(rt, "a"),
		Difficulty:     rapid.Float64Range(-3.0, 3.0).Draw(rt, "b"),
	}
}

func TestPropertyProbabilityMonotone(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		it := drawItem(rt, "q")
		lo := rapid.Float64Range(-6.0, 5.9).Draw(rt, "lo")
		hi := rapid.Float64Range(lo+0.01, 6.0).Draw(rt, "hi")

		pLo := ProbabilityCorrect(it, lo)
		pHi := ProbabilityCorrect(it, hi)
		if pHi <= pLo {
			rt.Fatalf("P not increasing: P(%.3f)=%.6f >= P(%.3f)=%.6f", lo, pLo, hi, pHi)
		}
	})
}

func TestPropertyMasteryBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		params := BKTParams{
			PInit:    rapid.Float64Range(0, 1).Draw(rt, "p_init"),
			PTransit: rapid.Float64Range(0, 1).Draw(rt, "p_transit"),
			PSlip:    rapid.Float64Range(0, 1).Draw(rt, "p_slip"),
			PGuess:   rapid.Float64Range(0, 1).Draw(rt, "p_guess"),
		}
		tr := NewTracer(params)

		n := rapid.IntRange(1, 60).Draw(rt, "updates")
		for i := 0; i < n; i++ {
			p := tr.Update("s", rapid.Bool().Draw(rt, "correct"))
			if p < 0 || p > 1 {
				rt.Fatalf("mastery %.8f outside [0, 1] at update %d (params %+v)", p, i, params)
			}
		}
	})
}

func TestPropertySessionNeverRepeatsItems(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(2, 12).Draw(rt, "bank_size")
		items := make([]Item, n)
		for i := range items {
			items[i] = drawItem(rt, fmt.Sprintf("q%02d", i))
		}
		bank, err := NewItemBank(items)
		if err != nil {
			rt.Fatalf("NewItemBank: %v", err)
		}

		cfg := CATConfig{
			MaxItems: rapid.IntRange(1, n+3).Draw(rt, "max_items"),
			SEStop:   rapid.Float64Range(0, 1).Draw(rt, "se_stop"),
		}
		s, err := NewSession(bank, cfg, DefaultBKTParams)
		if err != nil {
			rt.Fatalf("NewSession: %v", err)
		}

		seen := make(map[string]bool)
		administered := 0
		for {
			it, ok := s.NextItem()
			if !ok {
				break
			}
			if seen[it.ID] {
				rt.Fatalf("item %q administered twice", it.ID)
			}
			seen[it.ID] = true
			if _, err := s.RecordResponse(it.ID, rapid.Bool().Draw(rt, "correct")); err != nil {
				rt.Fatalf("RecordResponse: %v", err)
			}
			administered++
		}

		if administered > cfg.MaxItems {
			rt.Fatalf("administered %d items, budget %d", administered, cfg.MaxItems)
		}
		done, reason := s.Complete()
		if !done {
			rt.Fatal("session loop ended without termination")
		}
		if !reason.IsValid() {
			rt.Fatalf("invalid stop reason %v", reason)
		}
	})
}

func TestPropertyEstimateAlwaysUsable(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(rt, "n")
		history := make([]Response, n)
		for i := range history {
			history[i] = Response{
				Item:    drawItem(rt, fmt.Sprintf("q%d", i)),
				Correct: rapid.Bool().Draw(rt, "correct"),
			}
		}
		start := rapid.Float64Range(-6, 6).Draw(rt, "start")

		est := defaultEstimator().estimate(history, start)
		if est.Theta < -thetaBound || est.Theta > thetaBound {
			rt.Fatalf("theta %.4f escaped [-%.1f, %.1f]", est.Theta, thetaBound, thetaBound)
		}
		// SE is either a positive real or +Inf with the degenerate flag.
		if est.StandardError <= 0 {
			rt.Fatalf("standard error %.6f, want > 0 or +Inf", est.StandardError)
		}
	})
}
