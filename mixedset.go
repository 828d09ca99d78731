package mixedset

// Linearizer routes elements between the dense and sparse branches of a
// MixedSet. Index reports the dense-branch index of v, if it has one; it must
// be pure, stable, and injective over the values it accepts, with results in
// [0, Size()). Size is the extent of the dense index universe.
type Linearizer[T any] interface {
	Index(v T) (int, bool)
	Size() int
}

// MixedSet is a set over a universe that partitions into a dense integer
// range, held in a lock-free BitVectorSet, and a sparse remainder, held in a
// split-ordered HashSet. The linearizer decides per element; since it is a
// pure function of the value, an element can never migrate between branches
// and each lives in exactly one substructure.
type MixedSet[T any] struct {
	lin  Linearizer[T]
	bits *BitVectorSet
	rest *HashSet[T]
}

// NewMixedSet creates a set routed by lin, with a bit vector sized to
// lin.Size() and a hash set using the given hash and order.
func NewMixedSet[T any](lin Linearizer[T], hash func(T) uint64, less func(a, b T) bool) *MixedSet[T] {
	return &MixedSet[T]{
		lin:  lin,
		bits: NewBitVectorSet(lin.Size()),
		rest: NewHashSet[T](DefaultBuckets, hash, less),
	}
}

// Insert adds v. Returns true iff v was not already present.
func (s *MixedSet[T]) Insert(v T) bool {
	if i, ok := s.lin.Index(v); ok {
		return s.bits.Insert(i)
	}
	return s.rest.Insert(v)
}

// Erase removes v. Returns true iff v was present.
func (s *MixedSet[T]) Erase(v T) bool {
	if i, ok := s.lin.Index(v); ok {
		return s.bits.Erase(i)
	}
	return s.rest.Erase(v)
}

// Contains reports whether v is in the set.
func (s *MixedSet[T]) Contains(v T) bool {
	if i, ok := s.lin.Index(v); ok {
		return s.bits.Contains(i)
	}
	return s.rest.Contains(v)
}
