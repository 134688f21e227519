package store

import (
	"encoding/json"
	"sort"
)

// Persisted keys. Each value is stored as JSON text.
const (
	KeySentences        = "sentences"
	KeyRevealed         = "revealed"
	KeyChosenTime       = "chosenTime"
	KeyRemainingSeconds = "remainingSeconds"
)

// State is the durable deck state.
type State struct {
	// Sentences in insertion order; duplicates allowed.
	Sentences []string

	// Revealed holds indices into Sentences whose cards show their text.
	Revealed IndexSet

	// ChosenTime is the countdown length in minutes, nil when unset.
	ChosenTime *int

	// RemainingSeconds is only meaningful while a countdown runs.
	RemainingSeconds *int
}

// Default returns the empty state.
func Default() State {
	return State{
		Sentences: []string{},
		Revealed:  IndexSet{},
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{
		Sentences: append([]string{}, s.Sentences...),
		Revealed:  s.Revealed.Clone(),
	}
	if s.ChosenTime != nil {
		v := *s.ChosenTime
		out.ChosenTime = &v
	}
	if s.RemainingSeconds != nil {
		v := *s.RemainingSeconds
		out.RemainingSeconds = &v
	}
	return out
}

// IsEmpty reports whether s equals the all-empty default.
func (s State) IsEmpty() bool {
	return len(s.Sentences) == 0 && s.Revealed.Len() == 0 &&
		s.ChosenTime == nil && s.RemainingSeconds == nil
}

// IndexSet is a set of sentence indices. It encodes as a sorted JSON array.
type IndexSet map[int]struct{}

// NewIndexSet builds a set from indices.
func NewIndexSet(indices ...int) IndexSet {
	s := make(IndexSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Add inserts i. It reports false when i was already present.
func (s IndexSet) Add(i int) bool {
	if s.Has(i) {
		return false
	}
	s[i] = struct{}{}
	return true
}

// Len returns the set size.
func (s IndexSet) Len() int { return len(s) }

// Sorted returns the members in ascending order.
func (s IndexSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Clone returns a copy; a nil set clones to an empty one.
func (s IndexSet) Clone() IndexSet {
	out := make(IndexSet, len(s))
	for i := range s {
		out[i] = struct{}{}
	}
	return out
}

// WithoutIndex returns the set as it must look after the sentence at
// removed is deleted: removed is dropped and every larger index shifts down by one.
func (s IndexSet) WithoutIndex(removed int) IndexSet {
	out := make(IndexSet, len(s))
	for i := range s {
		switch {
		case i < removed:
			out[i] = struct{}{}
		case i > removed:
			out[i-1] = struct{}{}
		}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s IndexSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of integers; null yields an empty set.
func (s *IndexSet) UnmarshalJSON(data []byte) error {
	var xs []int
	if err := json.Unmarshal(data, &xs); err != nil {
		return err
	}
	*s = NewIndexSet(xs...)
	return nil
}
