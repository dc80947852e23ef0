// Package model defines the taskboard document shape and the total
// normalization rules that repair whatever the stores hand back into
// that shape.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the full ordered collection of sections, the unit of
// persistence. Section order is meaningful: reordering permutes this
// slice and the permutation itself is persisted.
type Document []Section

// ParseDocument decodes serialized document data and repairs it into
// canonical shape. The top-level value must be a JSON array; anything
// else is reported as an error so the caller can treat the stored
// value as corrupt. Element-level damage is never an error and is
// absorbed by per-entity normalization.
func ParseDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("document is not an array")
	}

	doc := Document{}
	for _, s := range list {
		doc = append(doc, NormalizeSection(s))
	}
	return doc, nil
}

// Normalized returns a copy of the document with every section run
// through the same field repairs applied on load: a non-nil Tasks
// slice and a defaulted color. Transforms that build sections by hand
// pass through here before persistence.
func (d Document) Normalized() Document {
	out := make(Document, 0, len(d))
	for _, s := range d {
		if s.Tasks == nil {
			s.Tasks = []Task{}
		}
		if s.Color == "" {
			s.Color = DefaultColor
		}
		out = append(out, s)
	}
	return out
}

// Encode serializes the document compactly, the form kept in the
// local store.
func (d Document) Encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

// EncodePretty serializes the document indented, the form written to
// the external mirror file and to exports.
func (d Document) EncodePretty() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

// SectionIndex returns the position of the section with the given id,
// or -1 when absent.
func (d Document) SectionIndex(id string) int {
	for i, s := range d {
		if s.ID == id {
			return i
		}
	}
	return -1
}
