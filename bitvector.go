package mixedset

import (
	"sync/atomic"

	"github.com/templexxx/cpu"
)

// BitVectorSet is a lock-free set over the integer universe [0, n).
//
// Bits are packed into uint64 words, one CAS per mutation. Bits are
// independent flags: the CAS loop serialises writers of the same word, and
// a failed CAS re-inspects the freshly observed word so an insert/erase that
// lost the race to the same bit returns false without spinning.
type BitVectorSet struct {
	_padding0 [cpu.X86FalseSharingRange]byte
	words     []uint64
	size      int
	_padding1 [cpu.X86FalseSharingRange]byte
}

// NewBitVectorSet creates a set over [0, n). Negative n is treated as 0;
// a zero-sized universe rejects every index.
func NewBitVectorSet(n int) *BitVectorSet {
	if n < 0 {
		n = 0
	}
	return &BitVectorSet{
		words: make([]uint64, (n+63)/64),
		size:  n,
	}
}

// Size returns the size of the index universe.
func (s *BitVectorSet) Size() int {
	return s.size
}

// Insert sets bit i.
// Returns true iff the bit went 0 -> 1. Out-of-range indexes return false.
func (s *BitVectorSet) Insert(i int) bool {
	if i < 0 || i >= s.size {
		return false
	}
	w := &s.words[uint(i)>>6]
	mask := uint64(1) << (uint(i) & 63)
	for {
		old := atomic.LoadUint64(w)
		if old&mask != 0 {
			return false
		}
		if atomic.CompareAndSwapUint64(w, old, old|mask) {
			return true
		}
	}
}

// Erase clears bit i.
// Returns true iff the bit went 1 -> 0. Out-of-range indexes return false.
func (s *BitVectorSet) Erase(i int) bool {
	if i < 0 || i >= s.size {
		return false
	}
	w := &s.words[uint(i)>>6]
	mask := uint64(1) << (uint(i) & 63)
	for {
		old := atomic.LoadUint64(w)
		if old&mask == 0 {
			return false
		}
		if atomic.CompareAndSwapUint64(w, old, old&^mask) {
			return true
		}
	}
}

// Contains reports the current value of bit i.
func (s *BitVectorSet) Contains(i int) bool {
	if i < 0 || i >= s.size {
		return false
	}
	return atomic.LoadUint64(&s.words[uint(i)>>6])&(1<<(uint(i)&63)) != 0
}
