package model

import (
	"encoding/json"
	"sort"
)

// FounderSet is a deduplicated set of validated founder names. The zero value
// is an empty set ready to use.
type FounderSet struct {
	names map[string]struct{}
}

// NewFounderSet builds a set from names. Names are taken as already
// normalized and validated.
func NewFounderSet(names ...string) FounderSet {
	var s FounderSet
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name and reports whether it was new.
func (s *FounderSet) Add(name string) bool {
	if s.names == nil {
		s.names = make(map[string]struct{})
	}
	if _, ok := s.names[name]; ok {
		return false
	}
	s.names[name] = struct{}{}
	return true
}

// Merge adds every name of other.
func (s *FounderSet) Merge(other FounderSet) {
	for n := range other.names {
		s.Add(n)
	}
}

// Contains reports whether name is in the set.
func (s FounderSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of names.
func (s FounderSet) Len() int {
	return len(s.names)
}

// Sorted returns the names in ascending lexicographic order. The result is a
// fresh slice, never nil.
func (s FounderSet) Sorted() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON renders the set as a sorted array.
func (s FounderSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON reads a JSON array of names.
func (s *FounderSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewFounderSet(names...)
	return nil
}
