package domain

import (
	"encoding/json"
	"sort"
)

// StringSet is a set of strings with deterministic JSON encoding. It backs
// facet selections, flag sets and exclusion lists, all of which must survive
// snapshot round-trips byte-identically.
type StringSet map[string]struct{}

// NewStringSet creates a set from the given values
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Contains reports whether v is in the set
func (s StringSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Add inserts v into the set
func (s StringSet) Add(v string) {
	s[v] = struct{}{}
}

// Remove deletes v from the set
func (s StringSet) Remove(v string) {
	delete(s, v)
}

// Toggle inserts v if absent and removes it if present. Returns true if the
// value is in the set afterwards. Toggling twice restores the prior state.
func (s StringSet) Toggle(v string) bool {
	if s.Contains(v) {
		delete(s, v)
		return false
	}
	s[v] = struct{}{}
	return true
}

// Len returns the number of elements
func (s StringSet) Len() int {
	return len(s)
}

// IsEmpty reports whether the set has no elements
func (s StringSet) IsEmpty() bool {
	return len(s) == 0
}

// Values returns the elements in sorted order
func (s StringSet) Values() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Clone returns an independent copy of the set
func (s StringSet) Clone() StringSet {
	c := make(StringSet, len(s))
	for v := range s {
		c[v] = struct{}{}
	}
	return c
}

// MarshalJSON encodes the set as a sorted JSON array
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes the set from a JSON array
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}
