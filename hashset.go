package mixedset

import (
	"math"
	"math/bits"
	"sync"
	"sync/atomic"

	"github.com/templexxx/cpu"
)

const (
	// DefaultBuckets is the initial bucket count used by MixedSet.
	DefaultBuckets = 32
	// DefaultMaxLoadFactor is the elements-per-bucket threshold that
	// triggers bucket extension.
	DefaultMaxLoadFactor = 512
)

// entry is a hash-set element keyed for split ordering:
// reversed hash major, caller order minor.
type entry[T any] struct {
	rev uint64
	val T
}

// HashSet is a concurrent set with split-ordered incremental growth
// (Shalev-Shavit). Each bucket is an ordered List keyed by reversed hashes,
// so appending bucket k moves a contiguous suffix out of its parent bucket.
// Nothing is ever rehashed.
type HashSet[T any] struct {
	hash func(T) uint64
	less func(a, b T) bool

	// mu guards the bucket vector, not the lists inside it. Operations hold
	// it shared for the duration of one bucket call; extension holds it
	// exclusive.
	mu      sync.RWMutex
	buckets []*List[entry[T]]

	_padding0 [cpu.X86FalseSharingRange]byte
	size      int64
	_padding1 [cpu.X86FalseSharingRange]byte

	maxLoad uint32 // float32 bits.
}

// NewHashSet creates a set with the given initial bucket count (clamped to at
// least 1), hash function, and strict order on T.
func NewHashSet[T any](initialBuckets int, hash func(T) uint64, less func(a, b T) bool) *HashSet[T] {
	if initialBuckets < 1 {
		initialBuckets = 1
	}
	s := &HashSet[T]{
		hash:    hash,
		less:    less,
		buckets: make([]*List[entry[T]], initialBuckets),
		maxLoad: math.Float32bits(DefaultMaxLoadFactor),
	}
	for i := range s.buckets {
		s.buckets[i] = NewList[entry[T]](s.entryLess)
	}
	return s
}

// entryLess orders entries by reversed hash, then by the caller's order.
func (s *HashSet[T]) entryLess(a, b entry[T]) bool {
	if a.rev != b.rev {
		return a.rev < b.rev
	}
	return s.less(a.val, b.val)
}

// bucketIndex selects the bucket for hash h. If the masked index lands past
// the vector's end, the element stays with the parent bucket (the masked
// index with the top bit dropped). Caller holds mu.
func (s *HashSet[T]) bucketIndex(h uint64) uint64 {
	mask := bitCeil(uint64(len(s.buckets))) - 1
	b := h & mask
	if b >= uint64(len(s.buckets)) {
		b = h & (mask >> 1)
	}
	return b
}

// Insert adds v. Returns true iff v was not already present.
func (s *HashSet[T]) Insert(v T) bool {
	h := s.hash(v)
	e := entry[T]{rev: bits.Reverse64(h), val: v}

	s.mu.RLock()
	ok := s.buckets[s.bucketIndex(h)].Insert(e)
	nb := len(s.buckets)
	s.mu.RUnlock()

	if !ok {
		return false
	}
	n := atomic.AddInt64(&s.size, 1)
	if float32(n)/float32(nb) > s.MaxLoadFactor() {
		s.tryExtendBuckets()
	}
	return true
}

// Erase removes v. Returns true iff v was present.
func (s *HashSet[T]) Erase(v T) bool {
	h := s.hash(v)
	e := entry[T]{rev: bits.Reverse64(h), val: v}

	s.mu.RLock()
	ok := s.buckets[s.bucketIndex(h)].Erase(e)
	s.mu.RUnlock()

	if ok {
		atomic.AddInt64(&s.size, -1)
	}
	return ok
}

// Contains reports whether v is in the set.
func (s *HashSet[T]) Contains(v T) bool {
	h := s.hash(v)
	e := entry[T]{rev: bits.Reverse64(h), val: v}

	s.mu.RLock()
	ok := s.buckets[s.bucketIndex(h)].Contains(e)
	s.mu.RUnlock()
	return ok
}

// Size returns the element count. Eventually consistent.
func (s *HashSet[T]) Size() int {
	return int(atomic.LoadInt64(&s.size))
}

// LoadFactor returns elements per bucket.
func (s *HashSet[T]) LoadFactor() float32 {
	s.mu.RLock()
	nb := len(s.buckets)
	s.mu.RUnlock()
	return float32(atomic.LoadInt64(&s.size)) / float32(nb)
}

// MaxLoadFactor returns the growth threshold.
func (s *HashSet[T]) MaxLoadFactor() float32 {
	return math.Float32frombits(atomic.LoadUint32(&s.maxLoad))
}

// SetMaxLoadFactor sets the growth threshold. Growth is lazy: the next
// over-threshold insert extends the bucket vector.
func (s *HashSet[T]) SetMaxLoadFactor(f float32) {
	atomic.StoreUint32(&s.maxLoad, math.Float32bits(f))
}

// tryExtendBuckets appends one bucket and pulls its elements out of the
// parent. In reversed-hash order those elements are a contiguous suffix of
// the parent's list, so the migration is a single SplitAfter. The fresh
// bucket's list is allocated before the bucket vector is extended.
func (s *HashSet[T]) tryExtendBuckets() {
	s.mu.Lock()
	defer s.mu.Unlock()

	nb := len(s.buckets)
	if float32(atomic.LoadInt64(&s.size))/float32(nb) <= s.MaxLoadFactor() {
		return
	}

	k := uint64(nb) // Index of the bucket about to be appended.
	parent := k - bitFloor(k)
	fresh := NewList[entry[T]](s.entryLess)
	s.buckets = append(s.buckets, fresh)

	threshold := bits.Reverse64(k)
	s.buckets[parent].SplitAfter(fresh, func(e entry[T]) bool {
		return e.rev >= threshold
	})
}
