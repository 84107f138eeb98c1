package listview

import "slices"

// Store holds the authoritative copy of a collection and reconciles server
// responses into it by unique key. It is not safe for concurrent use.
type Store[T any, K comparable] struct {
	items []T
	key   func(T) K
}

func NewStore[T any, K comparable](key func(T) K) *Store[T, K] {
	return &Store[T, K]{key: key}
}

// Reset replaces the whole collection, typically with a fresh list response.
func (s *Store[T, K]) Reset(items []T) {
	s.items = slices.Clone(items)
}

// Items returns a copy of the collection in server order.
func (s *Store[T, K]) Items() []T {
	return slices.Clone(s.items)
}

func (s *Store[T, K]) Len() int { return len(s.items) }

func (s *Store[T, K]) Key(rec T) K { return s.key(rec) }

func (s *Store[T, K]) indexOf(k K) int {
	return slices.IndexFunc(s.items, func(it T) bool { return s.key(it) == k })
}

func (s *Store[T, K]) Get(k K) (T, bool) {
	if i := s.indexOf(k); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// Insert adds the record the server returned for a create. A record whose key
// is already present replaces the old entry so keys stay unique.
func (s *Store[T, K]) Insert(rec T) {
	if i := s.indexOf(s.key(rec)); i >= 0 {
		s.items[i] = rec
		return
	}
	s.items = append(s.items, rec)
}

// Replace swaps the entry sharing rec's key for rec. It reports false and
// leaves the collection untouched when no entry has that key.
func (s *Store[T, K]) Replace(rec T) bool {
	i := s.indexOf(s.key(rec))
	if i < 0 {
		return false
	}
	s.items[i] = rec
	return true
}

// Remove drops the entry with key k, reporting whether one existed.
func (s *Store[T, K]) Remove(k K) bool {
	i := s.indexOf(k)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}
