package adapt

import "fmt"

// ItemBank is an immutable, ordered collection of calibrated items,
// indexed by item id and by skill. A bank is built once and may be shared
// read-only across any number of concurrent sessions.
type ItemBank struct {
	items   []Item
	byID    map[string]int
	bySkill map[string][]int
}

// NewItemBank validates the items and builds an immutable bank.
// Load order is preserved. Returns ErrEmptyBank for an empty slice,
// ErrInvalidItem for malformed items, and ErrDuplicateItemID when two
// items share an id.
func NewItemBank(items []Item) (*ItemBank, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBank
	}

	b := &ItemBank{
		items:   make([]Item, 0, len(items)),
		byID:    make(map[string]int, len(items)),
		bySkill: make(map[string][]int),
	}
	for _, it := range items {
		if err := it.validate(); err != nil {
			return nil, err
		}
		if _, ok := b.byID[it.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateItemID, it.ID)
		}
		idx := len(b.items)
		b.items = append(b.items, it.clone())
		b.byID[it.ID] = idx
		b.bySkill[it.Skill] = append(b.bySkill[it.Skill], idx)
	}
	return b, nil
}

// Len returns the number of items in the bank.
func (b *ItemBank) Len() int {
	return len(b.items)
}

// Item returns the item with the given id and whether it exists.
func (b *ItemBank) Item(id string) (Item, bool) {
	idx, ok := b.byID[id]
	if !ok {
		return Item{}, false
	}
	return b.items[idx].clone(), true
}

// Items returns all items in load order. The returned slice is a copy.
func (b *ItemBank) Items() []Item {
	out := make([]Item, len(b.items))
	for i, it := range b.items {
		out[i] = it.clone()
	}
	return out
}

// Skill returns all items tagged with the given skill, in load order.
func (b *ItemBank) Skill(skill string) []Item {
	idxs := b.bySkill[skill]
	out := make([]Item, len(idxs))
	for i, idx := range idxs {
		out[i] = b.items[idx].clone()
	}
	return out
}

// Skills returns the number of distinct skills in the bank.
func (b *ItemBank) Skills() int {
	return len(b.bySkill)
}
