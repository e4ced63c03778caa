package hashtable

import "hash/maphash"

// newSeededHash returns a hash function for K keyed by a fresh random seed.
// Equal keys hash equally for the lifetime of the returned function; digests
// differ between seeds and between process runs.
func newSeededHash[K comparable]() func(K) uint64 {
	seed := maphash.MakeSeed()
	return func(key K) uint64 {
		return maphash.Comparable(seed, key)
	}
}
