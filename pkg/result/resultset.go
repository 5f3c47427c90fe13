package result

import "sort"

// Set is a bounded top-K collection of PathResult, ordered by PathOrderKey
// (§4.8). Entries are always kept sorted best-first.
type Set struct {
	limit   int
	entries []PathResult
}

// NewSet builds an empty Set bounded to limit entries.
func NewSet(limit int) *Set {
	return &Set{limit: limit}
}

// Len returns the number of entries currently held.
func (s *Set) Len() int { return len(s.entries) }

// IsEmpty reports whether the set holds no entries.
func (s *Set) IsEmpty() bool { return len(s.entries) == 0 }

// First returns the best entry, or the zero value and false if empty.
func (s *Set) First() (PathResult, bool) {
	if s.IsEmpty() {
		return PathResult{}, false
	}
	return s.entries[0], true
}

// Worst returns the currently-retained worst entry, or false if the set is
// not yet at capacity (i.e. there is no eviction pressure).
func (s *Set) Worst() (PathResult, bool) {
	if len(s.entries) < s.limit || s.IsEmpty() {
		return PathResult{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// All returns entries in sorted (best-first) order. The returned slice must
// not be mutated by the caller.
func (s *Set) All() []PathResult {
	return s.entries
}

// Insert adds candidate if it belongs in the top-K, evicting the current
// worst entry when the set is already at capacity and the candidate sorts
// strictly before it. Ties keep the existing entry (ordering stability).
// Reports whether candidate was retained.
func (s *Set) Insert(candidate PathResult) bool {
	pos := sort.Search(len(s.entries), func(i int) bool {
		return Less(candidate.OrderKey, s.entries[i].OrderKey)
	})

	if len(s.entries) >= s.limit {
		if pos >= len(s.entries) {
			// candidate is not strictly better than anything retained.
			return false
		}
	}

	s.entries = append(s.entries, PathResult{})
	copy(s.entries[pos+1:], s.entries[pos:])
	s.entries[pos] = candidate

	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
	return true
}
