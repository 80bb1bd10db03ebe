package adapt

import "fmt"

// Item is a calibrated test question under the two-parameter logistic model.
// Items are created by an external authoring or calibration process and are
// read-only once loaded into an ItemBank.
type Item struct {
	ID             string   `json:"id" yaml:"id"`
	Skill          string   `json:"skill" yaml:"skill"`
	Discrimination float64  `json:"discrimination" yaml:"discrimination"` // a, must be > 0.
	Difficulty     float64  `json:"difficulty" yaml:"difficulty"`         // b, theta at which p = 0.5.
	Prompt         string   `json:"prompt" yaml:"prompt"`
	Choices        []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	CorrectChoice  *int     `json:"correct_choice,omitempty" yaml:"correct_choice,omitempty"` // nil for free-response items.
}

// validate checks the structural invariants enforced at bank-load time.
func (it Item) validate() error {
	if it.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidItem)
	}
	if it.Discrimination <= 0 {
		return fmt.Errorf("%w: item %q discrimination %f must be > 0", ErrInvalidItem, it.ID, it.Discrimination)
	}
	if it.CorrectChoice != nil {
		idx := *it.CorrectChoice
		if idx < 0 || idx >= len(it.Choices) {
			return fmt.Errorf("%w: item %q correct_choice %d out of range [0, %d)", ErrInvalidItem, it.ID, idx, len(it.Choices))
		}
	}
	return nil
}

// clone returns a deep copy of the item. Pointer and slice fields are
// copied so bank items cannot be mutated through a caller-held value.
func (it Item) clone() Item {
	out := it
	if it.CorrectChoice != nil {
		v := *it.CorrectChoice
		out.CorrectChoice = &v
	}
	if it.Choices != nil {
		out.Choices = append([]string(nil), it.Choices...)
	}
	return out
}
