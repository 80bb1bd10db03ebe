package adapt

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// bankDocument is the on-disk form of an item bank.
type bankDocument struct {
	Items []Item `yaml:"items"`
}

// LoadItemBankYAML decodes a YAML item-bank document and builds an
// ItemBank from it. The document is a mapping with a single `items`
// sequence; each entry carries the Item fields. Decoding is strict: a
// field name outside the Item schema is an error rather than a silently
// dropped value.
//
// Item validation is the same as NewItemBank: unique ids, positive
// discrimination, in-range correct_choice.
func LoadItemBankYAML(data []byte) (*ItemBank, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc bankDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBank
		}
		return nil, fmt.Errorf("adapt: decoding item bank: %w", err)
	}
	return NewItemBank(doc.Items)
}

// EncodeItemBankYAML renders the bank back into the document form read
// by LoadItemBankYAML, preserving load order.
func EncodeItemBankYAML(b *ItemBank) ([]byte, error) {
	doc := bankDocument{Items: b.Items()}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("adapt: encoding item bank: %w", err)
	}
	return out, nil
}
