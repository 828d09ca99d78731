package mixedset

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// Default hash functions for HashSet & MixedSet.
// Any func(T) uint64 will do; split ordering benefits from good avalanche.

// Uint64Hasher hashes a fixed 8-byte key.
func Uint64Hasher(k uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], k)
	return xxh3.Hash(b[:]) // xxh3 is bijective for 8 bytes and blazing fast.
}

// BytesHasher hashes an arbitrary byte slice.
func BytesHasher(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// StringHasher hashes a string without copying it.
func StringHasher(s string) uint64 {
	return xxhash.Sum64String(s)
}

// IntHasher hashes an int for HashSet[int] / MixedSet[int] callers.
func IntHasher(v int) uint64 {
	return Uint64Hasher(uint64(v))
}

// IntLess orders ints for HashSet[int] / MixedSet[int] callers.
func IntLess(a, b int) bool {
	return a < b
}
