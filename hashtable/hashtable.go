// Package hashtable implements a fixed-capacity hash table that resolves
// collisions by chaining: each bucket holds a [chain.Chain] of the entries
// whose keys hash to it.
//
// The bucket array never grows. Once many more keys are stored than there
// are buckets, chains get long and lookups degrade toward a linear scan.
package hashtable

import (
	"iter"

	"github.com/goose-lang/std"

	"chained_hashmap/chain"
)

// DefaultCapacity is the number of buckets used by New.
const DefaultCapacity uint64 = 256

// A Table maps keys to values. It is not safe for concurrent use.
type Table[K comparable, V any] struct {
	// a nil bucket is empty
	buckets []*chain.Chain[K, V]
	size    uint64
	hash    func(K) uint64
}

func New[K comparable, V any]() *Table[K, V] {
	return NewWithCapacity[K, V](DefaultCapacity)
}

// NewWithCapacity returns an empty table with capacity buckets. It panics if
// capacity is zero.
func NewWithCapacity[K comparable, V any](capacity uint64) *Table[K, V] {
	return NewWithHasher[K, V](capacity, newSeededHash[K]())
}

// NewWithHasher is like NewWithCapacity but places keys with hash instead of
// the default seeded hash. hash must return equal digests for equal keys.
func NewWithHasher[K comparable, V any](capacity uint64, hash func(K) uint64) *Table[K, V] {
	if capacity == 0 {
		panic("hashtable: capacity must be positive")
	}
	return &Table[K, V]{
		buckets: make([]*chain.Chain[K, V], capacity),
		size:    0,
		hash:    hash,
	}
}

// BucketIndex returns the index of the bucket key belongs to.
func (t *Table[K, V]) BucketIndex(key K) uint64 {
	return t.hash(key) % uint64(len(t.buckets))
}

// Put associates val with key. If key was already present its value is
// replaced in place and the previous value is returned with true.
func (t *Table[K, V]) Put(key K, val V) (V, bool) {
	i := t.BucketIndex(key)
	c := t.buckets[i]
	if c == nil {
		c = chain.New[K, V]()
		t.buckets[i] = c
	} else if h, ok := c.Find(key); ok {
		return c.SetValue(h, val), true
	}
	c.Append(key, val)
	t.size = std.SumAssumeNoOverflow(t.size, 1)
	var zero V
	return zero, false
}

func (t *Table[K, V]) Get(key K) (V, bool) {
	var zero V
	c := t.buckets[t.BucketIndex(key)]
	if c == nil {
		return zero, false
	}
	h, ok := c.Find(key)
	if !ok {
		return zero, false
	}
	return c.Value(h), true
}

func (t *Table[K, V]) Contains(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// Remove deletes key and returns the value it held. It reports false, and
// leaves the table unchanged, if key was not present.
func (t *Table[K, V]) Remove(key K) (V, bool) {
	var zero V
	i := t.BucketIndex(key)
	c := t.buckets[i]
	if c == nil {
		return zero, false
	}
	h, ok := c.Find(key)
	if !ok {
		return zero, false
	}
	_, val := c.Remove(h)
	if c.Empty() {
		t.buckets[i] = nil
	}
	t.size--
	return val, true
}

// Clear removes every entry. The capacity is unchanged.
func (t *Table[K, V]) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.size = 0
}

// Len returns the number of distinct keys stored.
func (t *Table[K, V]) Len() uint64 {
	return t.size
}

// Capacity returns the number of buckets.
func (t *Table[K, V]) Capacity() uint64 {
	return uint64(len(t.buckets))
}

// Load returns the ratio of stored entries to buckets.
func (t *Table[K, V]) Load() float64 {
	return float64(t.size) / float64(len(t.buckets))
}

// Bucket yields the entries of bucket i in insertion order. It panics if i is
// not less than Capacity.
func (t *Table[K, V]) Bucket(i uint64) iter.Seq2[K, V] {
	c := t.buckets[i]
	return func(yield func(K, V) bool) {
		if c == nil {
			return
		}
		for k, v := range c.All() {
			if !yield(k, v) {
				return
			}
		}
	}
}

// All yields every entry, bucket by bucket. The order across buckets is
// unspecified; within a bucket it is insertion order. The table must not be
// modified during iteration.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, c := range t.buckets {
			if c == nil {
				continue
			}
			for k, v := range c.All() {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}
