package set

import "clusterhttp/internal/generic"

// Set is an unordered collection of unique comparable values.
type Set[T comparable] map[T]struct{}

func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, val := range vals {
		s.Add(val)
	}

	return s
}

func FromSlice[T comparable](sl []T) Set[T] {
	return New(sl...)
}

func (s Set[T]) Add(val T) {
	s[val] = struct{}{}
}

func (s Set[T]) Remove(val T) {
	delete(s, val)
}

func (s Set[T]) Has(val T) bool {
	_, ok := s[val]
	return ok
}

// Union returns a new set containing the values present in either set.
func (s Set[T]) Union(ss Set[T]) Set[T] {
	newset := make(Set[T], len(s)+len(ss))
	generic.MapCopy(s, newset)
	generic.MapCopy(ss, newset)

	return newset
}

// Values returns the set values as a slice, in no particular order.
func (s Set[T]) Values() []T {
	return generic.MapKeys(s)
}

func (s Set[T]) Equals(ss Set[T]) bool {
	if len(s) != len(ss) {
		return false
	}

	for val := range s {
		if !ss.Has(val) {
			return false
		}
	}

	return true
}
