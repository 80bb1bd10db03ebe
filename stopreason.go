package adapt

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// StopReason identifies which stopping condition terminated a session.
// The conditions are checked in declaration order after every response:
// item budget first, then precision, then bank exhaustion.
type StopReason int

const (
	MaxItemsReached  StopReason = iota + 1 // len(asked) reached CATConfig.MaxItems.
	PrecisionReached                       // Standard error fell to CATConfig.SEStop or below.
	BankExhausted                          // No unasked items remain.
)

var (
	stopReasonNames  = [...]string{
		MaxItemsReached:  "max_items_reached",
		PrecisionReached: "precision_reached",
		BankExhausted:    "bank_exhausted",
	}
	stopReasonByName = map[string]StopReason{
		"max_items_reached": MaxItemsReached,
		"precision_reached": PrecisionReached,
		"bank_exhausted":    BankExhausted,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = StopReason(0)
	_ json.Marshaler           = StopReason(0)
	_ json.Unmarshaler         = (*StopReason)(nil)
	_ encoding.TextMarshaler   = StopReason(0)
	_ encoding.TextUnmarshaler = (*StopReason)(nil)
)

// IsValid reports whether r is a defined stop reason.
func (r StopReason) IsValid() bool {
	return r >= MaxItemsReached && r <= BankExhausted
}

// String returns the wire name of the reason ("max_items_reached",
// "precision_reached", "bank_exhausted"). For invalid values it returns
// "StopReason(n)".
func (r StopReason) String() string {
	if r.IsValid() {
		return stopReasonNames[r]
	}
	return fmt.Sprintf("StopReason(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r StopReason) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("adapt: invalid stop reason: %d", int(r))
	}
	return []byte(stopReasonNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *StopReason) UnmarshalText(text []byte) error {
	v, ok := stopReasonByName[string(text)]
	if !ok {
		return fmt.Errorf("adapt: invalid stop reason: %q", text)
	}
	*r = v
	return nil
}

// MarshalJSON implements json.Marshaler. StopReason serializes as a JSON string.
func (r StopReason) MarshalJSON() ([]byte, error) {
	text, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (r *StopReason) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("adapt: invalid stop reason: %s", data)
	}
	return r.UnmarshalText([]byte(s))
}
