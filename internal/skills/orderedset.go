package skills

// OrderedSet is a set that remembers insertion order.
type OrderedSet[T comparable] struct {
	items []T
	index map[T]struct{}
}

// NewOrderedSet returns an empty set.
func NewOrderedSet[T comparable]() *OrderedSet[T] {
	return &OrderedSet[T]{index: make(map[T]struct{})}
}

// Add inserts v if absent and reports whether it was added.
func (s *OrderedSet[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

// Contains reports whether v is in the set.
func (s *OrderedSet[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of distinct elements.
func (s *OrderedSet[T]) Len() int {
	return len(s.items)
}

// Items returns the elements in insertion order. The returned slice is a copy.
func (s *OrderedSet[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
