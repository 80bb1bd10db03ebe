package adapt

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Phase represents the state-machine position of a session.
type Phase int

const (
	AwaitingItem     Phase = iota + 1 // Ready for the next NextItem call.
	AwaitingResponse                  // An item has been selected, awaiting RecordResponse.
	Terminated                        // Stopping rule fired, state is frozen.
)

var (
	phaseNames  = [...]string{AwaitingItem: "AwaitingItem", AwaitingResponse: "AwaitingResponse", Terminated: "Terminated"}
	phaseByName = map[string]Phase{
		"AwaitingItem":     AwaitingItem,
		"AwaitingResponse": AwaitingResponse,
		"Terminated":       Terminated,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Phase(0)
	_ json.Marshaler           = Phase(0)
	_ json.Unmarshaler         = (*Phase)(nil)
	_ encoding.TextMarshaler   = Phase(0)
	_ encoding.TextUnmarshaler = (*Phase)(nil)
)

func (p Phase) isValid() bool {
	return p >= AwaitingItem && p <= Terminated
}

// String returns the name of the phase ("AwaitingItem", "AwaitingResponse",
// "Terminated"). For invalid values it returns "Phase(n)".
func (p Phase) String() string {
	if p.isValid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.isValid() {
		return nil, fmt.Errorf("adapt: invalid phase: %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	v, ok := phaseByName[string(text)]
	if !ok {
		return fmt.Errorf("adapt: invalid phase: %q", text)
	}
	*p = v
	return nil
}

// MarshalJSON implements json.Marshaler. Phase serializes as a JSON string.
func (p Phase) MarshalJSON() ([]byte, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (p *Phase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("adapt: invalid phase: %s", data)
	}
	return p.UnmarshalText([]byte(s))
}
