package utils

// Set is an insertion-ordered set of comparable keys. It is not safe for
// concurrent use; every caller builds its own.
type Set[K comparable] struct {
	seen  map[K]struct{}
	order []K
}

// NewSet creates a set holding keys.
func NewSet[K comparable](keys ...K) *Set[K] {
	s := &Set[K]{seen: make(map[K]struct{}, len(keys))}
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add returns true if the key was newly added, false if already present.
func (s *Set[K]) Add(k K) bool {
	if _, exists := s.seen[k]; exists {
		return false
	}
	s.seen[k] = struct{}{}
	s.order = append(s.order, k)
	return true
}

// Contains returns true if the key is in the set.
func (s *Set[K]) Contains(k K) bool {
	_, exists := s.seen[k]
	return exists
}

// Size returns the number of unique keys tracked.
func (s *Set[K]) Size() int {
	return len(s.seen)
}

// Keys returns the keys in insertion order.
func (s *Set[K]) Keys() []K {
	out := make([]K, len(s.order))
	copy(out, s.order)
	return out
}
