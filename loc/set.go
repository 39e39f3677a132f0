package loc

// Set is an insertion ordered set whose membership is decided by a value-comparable key
// derived from each item. Two items with the same key are the same member; the first one
// added is kept.
type Set[K comparable, T any] struct {
	key   func(T) K
	index map[K]int
	items []T
}

// NewSet creates a set using key as the identity function
func NewSet[K comparable, T any](key func(T) K, items ...T) *Set[K, T] {
	s := &Set[K, T]{key: key, index: make(map[K]int, len(items))}
	s.Add(items...)
	return s
}

// Add adds items that are not already members
func (s *Set[K, T]) Add(items ...T) {
	for _, item := range items {
		k := s.key(item)
		if _, ok := s.index[k]; ok {
			continue
		}
		s.index[k] = len(s.items)
		s.items = append(s.items, item)
	}
}

// Has returns true if a member with the same identity exists
func (s *Set[K, T]) Has(item T) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[s.key(item)]
	return ok
}

// Len returns the number of members
func (s *Set[K, T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns members in insertion order. The returned slice must not be modified.
func (s *Set[K, T]) Items() []T {
	if s == nil {
		return nil
	}
	return s.items
}

// Union returns a new set with members of s followed by members of others
func (s *Set[K, T]) Union(others ...*Set[K, T]) *Set[K, T] {
	result := NewSet(s.key, s.items...)
	for _, other := range others {
		if other != nil {
			result.Add(other.items...)
		}
	}
	return result
}

// Minus returns a new set with members of s that are not in other
func (s *Set[K, T]) Minus(other *Set[K, T]) *Set[K, T] {
	return s.Filter(func(item T) bool { return !other.Has(item) })
}

// Filter returns a new set with members matching predicate
func (s *Set[K, T]) Filter(predicate func(T) bool) *Set[K, T] {
	result := NewSet[K, T](s.key)
	for _, item := range s.items {
		if predicate(item) {
			result.Add(item)
		}
	}
	return result
}

// Some returns true if any member matches predicate
func (s *Set[K, T]) Some(predicate func(T) bool) bool {
	if s == nil {
		return false
	}
	for _, item := range s.items {
		if predicate(item) {
			return true
		}
	}
	return false
}

// Map returns a new set of the same type holding fn applied to every member
func (s *Set[K, T]) Map(fn func(T) T) *Set[K, T] {
	result := NewSet[K, T](s.key)
	for _, item := range s.items {
		result.Add(fn(item))
	}
	return result
}

// Equal returns true if both sets have the same members, regardless of order
func (s *Set[K, T]) Equal(other *Set[K, T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, item := range s.Items() {
		if !other.Has(item) {
			return false
		}
	}
	return true
}
