package memoize

import "chained_hashmap/hashtable"

// Memoize caches the results of f in a chained hash table.
type Memoize struct {
	f       func(uint64) uint64
	results *hashtable.Table[uint64, uint64]
}

func NewMemoize(f func(uint64) uint64) Memoize {
	return Memoize{
		f:       f,
		results: hashtable.New[uint64, uint64](),
	}
}

// NewMemoizeWithCapacity is like NewMemoize but sizes the cache's bucket
// array for the expected number of distinct arguments.
func NewMemoizeWithCapacity(f func(uint64) uint64, capacity uint64) Memoize {
	return Memoize{
		f:       f,
		results: hashtable.NewWithCapacity[uint64, uint64](capacity),
	}
}

func (m Memoize) Call(x uint64) uint64 {
	cached, ok := m.results.Get(x)
	if ok {
		return cached
	}
	y := m.f(x)
	m.results.Put(x, y)
	return y
}

// Cached returns the number of distinct arguments with a saved result.
func (m Memoize) Cached() uint64 {
	return m.results.Len()
}

// Forget drops the saved result for x, if any.
func (m Memoize) Forget(x uint64) {
	m.results.Remove(x)
}

// Reset drops all saved results.
func (m Memoize) Reset() {
	m.results.Clear()
}

// MockMemoize has the same API as Memoize but with an implementation that
// doesn't actually save any results.
type MockMemoize struct {
	f func(uint64) uint64
}

func NewMockMemoize(f func(uint64) uint64) *MockMemoize {
	return &MockMemoize{f: f}
}

func (m *MockMemoize) Call(x uint64) uint64 {
	return m.f(x)
}
