package typemap

import (
	"encoding/json"
	"slices"
	"strings"
)

// ReferenceMap maps lowercased fully-qualified identifiers to notations.
//
// Function entries are merge points: inserting a function notation under an
// existing function key appends its signatures. Every other key is written
// once. A ReferenceMap is not safe for concurrent use.
type ReferenceMap struct {
	entries map[string]*Entry
}

// NewReferenceMap returns an empty ReferenceMap.
func NewReferenceMap() *ReferenceMap {
	return &ReferenceMap{entries: make(map[string]*Entry)}
}

// Insert adds an entry, merging signatures into an existing function entry.
// Returns ECONFLICT if the key is already taken by a non-function entry or
// if a function and a non-function notation collide.
func (m *ReferenceMap) Insert(e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	existing, ok := m.entries[e.Key]
	if !ok {
		if fn, isFn := e.Notation.(*FunctionNotation); isFn {
			e.Notation = &FunctionNotation{Signatures: slices.Clone(fn.Signatures)}
		}
		m.entries[e.Key] = &e
		return nil
	}

	have, haveFn := existing.Notation.(*FunctionNotation)
	add, addFn := e.Notation.(*FunctionNotation)
	if haveFn && addFn {
		have.Signatures = append(have.Signatures, add.Signatures...)
		return nil
	}

	return Errorf(ECONFLICT, "duplicate %s entry for %q (already recorded as %s)",
		e.Notation.NotationType(), e.Key, existing.Notation.NotationType())
}

// Get returns the entry stored under key. The lookup is case-insensitive.
func (m *ReferenceMap) Get(key string) (Entry, bool) {
	e, ok := m.entries[strings.ToLower(key)]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Len returns the number of entries.
func (m *ReferenceMap) Len() int {
	return len(m.entries)
}

// Keys returns all keys in ascending byte order.
func (m *ReferenceMap) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Entries returns a snapshot of all entries sorted by key.
func (m *ReferenceMap) Entries() []Entry {
	keys := m.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, *m.entries[k])
	}
	return entries
}

// MarshalJSON encodes the map as a JSON object with keys in ascending order.
func (m *ReferenceMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]Entry, len(m.entries))
	for k, e := range m.entries {
		v := *e
		v.Key = ""
		out[k] = v
	}
	// encoding/json writes map keys sorted.
	return json.Marshal(out)
}

// UnmarshalJSON replaces the map contents with the decoded object.
func (m *ReferenceMap) UnmarshalJSON(data []byte) error {
	var in map[string]Entry
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	m.entries = make(map[string]*Entry, len(in))
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		e := in[k]
		e.Key = k
		if err := m.Insert(e); err != nil {
			return err
		}
	}
	return nil
}
