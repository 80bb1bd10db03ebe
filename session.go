package adapt

import (
	"fmt"
	"math"
	"time"
)

// Session is one adaptive test: the per-test-taker CAT state machine plus
// its knowledge tracer, driven against a shared read-only ItemBank.
//
// A Session is owned by a single caller and performs no internal locking;
// concurrent sessions over the same bank are safe, concurrent calls into
// one session are not. Given the same bank, configuration, and response
// sequence, a session's ability and mastery trajectories are reproducible.
type Session struct {
	bank   *ItemBank
	cfg    CATConfig
	est    estimator
	tracer *Tracer

	phase   Phase
	ability AbilityEstimate
	asked   map[string]bool
	history []Response
	logs    []ResponseLog
	pending string // item id returned by the last NextItem, "" when none.
	stop    StopReason
}

// Progress is returned after every recorded response: the refreshed
// ability estimate and the current mastery snapshot.
type Progress struct {
	Ability AbilityEstimate    `json:"ability"`
	Mastery map[string]float64 `json:"mastery"`
}

// Result is the terminal artifact of a session, consumed by the caller's
// persistence and reporting layers.
type Result struct {
	Ability      AbilityEstimate    `json:"ability"`
	Mastery      map[string]float64 `json:"mastery"`
	Administered []ResponseLog      `json:"administered"`
	StopReason   StopReason         `json:"stop_reason"`
}

// NewSession creates a session over the given bank. Returns
// ErrInvalidConfiguration (wrapped with the offending field) when the bank
// is missing or any configuration value is out of range.
func NewSession(bank *ItemBank, cfg CATConfig, params BKTParams) (*Session, error) {
	if bank == nil || bank.Len() == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, ErrEmptyBank)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	return &Session{
		bank:   bank,
		cfg:    cfg,
		est:    newEstimator(cfg.MaxIterations, cfg.ConvergenceEpsilon),
		tracer: NewTracer(params),
		phase:  AwaitingItem,
		ability: AbilityEstimate{
			Theta:         cfg.StartTheta,
			StandardError: math.Inf(1),
			Degenerate:    true,
		},
		asked: make(map[string]bool),
	}, nil
}

// NextItem selects the unasked item with maximal Fisher information at
// the current ability estimate, ties broken by lowest item id. It does
// not mark the item as asked; only RecordResponse does. Calling NextItem
// again before responding returns the same item.
//
// Returns ok=false when the session is terminal or the bank is exhausted
// (which itself terminates the session).
func (s *Session) NextItem() (Item, bool) {
	if s.phase == Terminated {
		return Item{}, false
	}
	if s.pending != "" {
		it, _ := s.bank.Item(s.pending)
		return it, true
	}

	best := -1
	bestInfo := 0.0
	for i := range s.bank.items {
		it := &s.bank.items[i]
		if s.asked[it.ID] {
			continue
		}
		info := Information(*it, s.ability.Theta)
		switch {
		case best < 0, info > bestInfo:
			best, bestInfo = i, info
		case info == bestInfo && it.ID < s.bank.items[best].ID:
			best = i
		}
	}
	if best < 0 {
		s.terminate(BankExhausted)
		return Item{}, false
	}

	s.pending = s.bank.items[best].ID
	s.phase = AwaitingResponse
	return s.bank.items[best].clone(), true
}

// RecordResponse records the correctness of the pending item, refreshes
// the ability estimate over the full response history, updates the
// skill's mastery, and evaluates the stopping rule.
//
// Misuse (unknown id, already-answered id, id other than the pending
// selection, terminal session) returns a sentinel error and leaves the
// session state untouched.
func (s *Session) RecordResponse(itemID string, correct bool) (Progress, error) {
	if s.phase == Terminated {
		return Progress{}, fmt.Errorf("%w: response for item %q", ErrSessionTerminated, itemID)
	}
	it, ok := s.bank.Item(itemID)
	if !ok {
		return Progress{}, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	if s.asked[itemID] {
		return Progress{}, fmt.Errorf("%w: %q", ErrDuplicateResponse, itemID)
	}
	if s.pending != itemID {
		return Progress{}, fmt.Errorf("%w: got %q, pending %q", ErrNoPendingItem, itemID, s.pending)
	}

	s.logs = append(s.logs, ResponseLog{
		ItemID:    it.ID,
		Skill:     it.Skill,
		Correct:   correct,
		Theta:     s.ability.Theta,
		Timestamp: time.Now(),
	})
	s.history = append(s.history, Response{Item: it, Correct: correct})
	s.asked[itemID] = true
	s.pending = ""
	s.phase = AwaitingItem

	s.ability = s.est.estimate(s.history, s.ability.Theta)
	s.tracer.Update(it.Skill, correct)

	// Stopping rule, in priority order.
	switch {
	case len(s.asked) >= s.cfg.MaxItems:
		s.terminate(MaxItemsReached)
	case s.ability.StandardError <= s.cfg.SEStop:
		s.terminate(PrecisionReached)
	case len(s.asked) >= s.bank.Len():
		s.terminate(BankExhausted)
	}

	return Progress{Ability: s.ability, Mastery: s.tracer.Snapshot()}, nil
}

// Complete reports whether the session has terminated and, if so, why.
// The reason is the zero StopReason while the session is live.
func (s *Session) Complete() (bool, StopReason) {
	return s.phase == Terminated, s.stop
}

// Phase returns the session's current state-machine phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Ability returns the current ability estimate.
func (s *Session) Ability() AbilityEstimate {
	return s.ability
}

// Responses returns a copy of the administered-response log so far, in
// administration order.
func (s *Session) Responses() []ResponseLog {
	return append([]ResponseLog(nil), s.logs...)
}

// Finalize assembles the terminal Result. Returns ErrSessionActive if the
// stopping rule has not fired yet. Finalize is idempotent.
func (s *Session) Finalize() (Result, error) {
	if s.phase != Terminated {
		return Result{}, ErrSessionActive
	}
	return Result{
		Ability:      s.ability,
		Mastery:      s.tracer.Snapshot(),
		Administered: s.Responses(),
		StopReason:   s.stop,
	}, nil
}

func (s *Session) terminate(reason StopReason) {
	s.phase = Terminated
	s.stop = reason
	s.pending = ""
}
