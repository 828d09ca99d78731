package mixedset

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitVectorSetBasic(t *testing.T) {
	s := NewBitVectorSet(256)
	require.False(t, s.Contains(3))
	require.True(t, s.Insert(3))
	require.False(t, s.Insert(3))
	require.True(t, s.Contains(3))
	require.True(t, s.Erase(3))
	require.False(t, s.Erase(3))
	require.False(t, s.Contains(3))
}

func TestBitVectorSetOutOfRange(t *testing.T) {
	s := NewBitVectorSet(100)
	require.Equal(t, 100, s.Size())
	require.False(t, s.Insert(100))
	require.False(t, s.Insert(-1))
	require.False(t, s.Erase(100))
	require.False(t, s.Erase(-1))
	require.False(t, s.Contains(100))
	require.False(t, s.Contains(-1))
	require.True(t, s.Insert(99))
	require.True(t, s.Contains(99))
}

func TestBitVectorSetEmptyUniverse(t *testing.T) {
	s := NewBitVectorSet(0)
	require.False(t, s.Insert(0))
	require.False(t, s.Erase(0))
	require.False(t, s.Contains(0))

	s = NewBitVectorSet(-5)
	require.Equal(t, 0, s.Size())
	require.False(t, s.Insert(0))
}

func TestBitVectorSetDenseSweep(t *testing.T) {
	const n = 4096
	s := NewBitVectorSet(n)
	for i := 0; i < n; i++ {
		if !s.Insert(i) {
			t.Fatal("fresh insert failed", i)
		}
	}
	for i := 0; i < n; i++ {
		if !s.Contains(i) {
			t.Fatal("missing", i)
		}
	}
	for i := 0; i < n; i += 2 {
		if !s.Erase(i) {
			t.Fatal("erase failed", i)
		}
	}
	for i := 0; i < n; i++ {
		if s.Contains(i) != (i%2 == 1) {
			t.Fatal("wrong membership after erase", i)
		}
	}
}

// TestBitVectorSetNetChange hammers a small universe with equal adder and
// eraser goroutine counts. Per bit, successful inserts and erases strictly
// alternate starting from empty, so summed over all goroutines no index can
// end with a negative net change (and none can exceed one).
func TestBitVectorSetNetChange(t *testing.T) {
	const (
		adders   = 5
		erasers  = 5
		universe = 256
		ops      = 1 << 18
	)

	s := NewBitVectorSet(universe)
	results := make(chan []int64, adders+erasers)

	var wg sync.WaitGroup
	worker := func(seed int64, insert bool) {
		defer wg.Done()
		rng := rand.New(rand.NewSource(seed))
		changes := make([]int64, universe)
		for i := 0; i < ops; i++ {
			idx := rng.Intn(universe)
			if insert {
				if s.Insert(idx) {
					changes[idx]++
				}
			} else {
				if s.Erase(idx) {
					changes[idx]--
				}
			}
		}
		results <- changes
	}

	wg.Add(adders + erasers)
	for i := 0; i < adders; i++ {
		go worker(int64(i+1), true)
	}
	for i := 0; i < erasers; i++ {
		go worker(int64(100+i), false)
	}
	wg.Wait()
	close(results)

	net := make([]int64, universe)
	for changes := range results {
		for i, c := range changes {
			net[i] += c
		}
	}
	for i, c := range net {
		if c < 0 {
			t.Fatal("net change below zero at bit", i, c)
		}
		if c > 1 {
			t.Fatal("net change above one at bit", i, c)
		}
		if (c == 1) != s.Contains(i) {
			t.Fatal("final membership disagrees with net change at bit", i, c)
		}
	}
}
