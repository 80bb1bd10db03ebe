package adapt

import "fmt"

// ReplaySession rebuilds session state by re-administering a stored
// response log against the bank. Replay is deterministic: the same bank,
// configuration, and log always produce the same ability and mastery
// trajectories, so callers can persist only the log and reconstruct the
// rest.
//
// The logged items are administered as recorded, bypassing adaptive
// selection. Returns an error if a log entry references an unknown item,
// repeats an item, or continues past the stopping rule.
func ReplaySession(bank *ItemBank, cfg CATConfig, params BKTParams, logs []ResponseLog) (*Session, error) {
	s, err := NewSession(bank, cfg, params)
	if err != nil {
		return nil, err
	}
	for i, rec := range logs {
		if s.phase == Terminated {
			return nil, fmt.Errorf("%w: log entry %d (%q) after stop", ErrSessionTerminated, i, rec.ItemID)
		}
		// Administer the recorded item rather than the adaptive choice.
		s.pending = rec.ItemID
		s.phase = AwaitingResponse
		if _, err := s.RecordResponse(rec.ItemID, rec.Correct); err != nil {
			return nil, fmt.Errorf("adapt: replay entry %d: %w", i, err)
		}
		s.logs[len(s.logs)-1].Timestamp = rec.Timestamp
	}
	return s, nil
}
