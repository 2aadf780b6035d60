// Package dedup decides whether a barcode+UMI key has been seen before.
package dedup

// Filter reports whether a record with key should be kept.
type Filter interface {
	// Keep returns true the first time key is offered and false afterwards.
	Keep(key string) bool
	// Len is the number of distinct keys remembered.
	Len() int
}

// Set is an unbounded exact set with O(1) amortized hit/insert.
//
// Memory grows with the number of distinct keys (one entry per distinct
// molecule) and is never released during a run: exact deduplication has to
// remember every key it has seen.
type Set[K comparable] struct {
	m map[K]struct{}
}

// NewSet returns an empty set sized for sizeHint keys.
func NewSet[K comparable](sizeHint int) *Set[K] {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Set[K]{m: make(map[K]struct{}, sizeHint)}
}

// Add inserts k; returns true if it was already present.
func (s *Set[K]) Add(k K) bool {
	if _, ok := s.m[k]; ok {
		return true
	}
	s.m[k] = struct{}{}
	return false
}

// Len returns the number of keys held.
func (s *Set[K]) Len() int { return len(s.m) }

// Exact is the Filter backed by a Set.
type Exact struct {
	set *Set[string]
}

// NewExact returns an exact-match filter.
func NewExact() *Exact { return &Exact{set: NewSet[string](1 << 16)} }

func (e *Exact) Keep(key string) bool { return !e.set.Add(key) }
func (e *Exact) Len() int             { return e.set.Len() }

// KeepAll bypasses deduplication.
type KeepAll struct{}

func (KeepAll) Keep(string) bool { return true }
func (KeepAll) Len() int         { return 0 }

// New picks the filter for a run.
func New(enabled bool) Filter {
	if enabled {
		return NewExact()
	}
	return KeepAll{}
}
