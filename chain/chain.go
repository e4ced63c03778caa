// Package chain implements the collision chain of a hash bucket: an ordered
// list of (key, value) nodes supporting append, lookup by key, and O(1)
// removal of a node given its handle.
//
// Nodes are stored in a flat arena and linked by index rather than by
// pointer. A node's next link is the only thing that makes it part of the
// chain; the prev link is a plain back-index used to unlink in constant time.
package chain

import (
	"iter"

	"github.com/goose-lang/primitive"
)

// Handle names a node slot in a chain's arena.
//
// A handle is only meaningful until the next Append or Remove on the same
// chain: slots of removed nodes are recycled, so a stale handle may name a
// different node. Use Valid to re-check a handle before acting on it.
type Handle uint64

// NilHandle marks the absence of a node (end of chain, empty chain, empty
// free list).
const NilHandle Handle = ^Handle(0)

type node[K comparable, V any] struct {
	key  K
	val  V
	next Handle
	prev Handle
	used bool
}

// A Chain is not safe for concurrent use.
type Chain[K comparable, V any] struct {
	nodes []node[K, V]
	head  Handle
	tail  Handle
	// free slots are threaded through their next field
	free Handle
	size uint64
}

func New[K comparable, V any]() *Chain[K, V] {
	return &Chain[K, V]{
		head: NilHandle,
		tail: NilHandle,
		free: NilHandle,
	}
}

// slot returns the occupied node named by h, panicking if h is out of range
// or names a free slot.
func (c *Chain[K, V]) slot(h Handle) *node[K, V] {
	primitive.Assert(uint64(h) < uint64(len(c.nodes)))
	n := &c.nodes[h]
	primitive.Assert(n.used)
	return n
}

func (c *Chain[K, V]) alloc() Handle {
	if c.free != NilHandle {
		h := c.free
		c.free = c.nodes[h].next
		return h
	}
	c.nodes = append(c.nodes, node[K, V]{})
	return Handle(len(c.nodes) - 1)
}

// Append links a new node holding (key, val) after the current tail and
// returns its handle.
//
// Append does not check for an existing node with an equal key; callers that
// need unique keys must Find first.
func (c *Chain[K, V]) Append(key K, val V) Handle {
	h := c.alloc()
	c.nodes[h] = node[K, V]{
		key:  key,
		val:  val,
		next: NilHandle,
		prev: c.tail,
		used: true,
	}
	if c.tail == NilHandle {
		c.head = h
	} else {
		c.nodes[c.tail].next = h
	}
	c.tail = h
	c.size++
	return h
}

// Find scans from the head and returns the handle of the first node whose
// key equals key.
func (c *Chain[K, V]) Find(key K) (Handle, bool) {
	var h = c.head
	for h != NilHandle {
		n := &c.nodes[h]
		if n.key == key {
			return h, true
		}
		h = n.next
	}
	return NilHandle, false
}

// Valid reports whether h still names an occupied node holding key.
func (c *Chain[K, V]) Valid(h Handle, key K) bool {
	if uint64(h) >= uint64(len(c.nodes)) {
		return false
	}
	n := &c.nodes[h]
	return n.used && n.key == key
}

// Remove unlinks the node named by h and returns its key and value. The
// node's slot is cleared and goes on the free list.
func (c *Chain[K, V]) Remove(h Handle) (K, V) {
	n := c.slot(h)
	key, val := n.key, n.val

	if n.prev == NilHandle {
		c.head = n.next
	} else {
		c.nodes[n.prev].next = n.next
	}
	if n.next == NilHandle {
		c.tail = n.prev
	} else {
		c.nodes[n.next].prev = n.prev
	}

	// drop references to the removed key and value
	c.nodes[h] = node[K, V]{next: c.free, prev: NilHandle}
	c.free = h
	c.size--
	return key, val
}

func (c *Chain[K, V]) Key(h Handle) K {
	return c.slot(h).key
}

func (c *Chain[K, V]) Value(h Handle) V {
	return c.slot(h).val
}

// SetValue replaces the value of the node named by h in place and returns
// the previous value. The node keeps its position in the chain.
func (c *Chain[K, V]) SetValue(h Handle, val V) V {
	n := c.slot(h)
	old := n.val
	n.val = val
	return old
}

func (c *Chain[K, V]) Len() uint64 {
	return c.size
}

func (c *Chain[K, V]) Empty() bool {
	return c.head == NilHandle
}

// Clear removes every node and releases the arena.
func (c *Chain[K, V]) Clear() {
	c.nodes = nil
	c.head = NilHandle
	c.tail = NilHandle
	c.free = NilHandle
	c.size = 0
}

// All yields the chain's entries from head to tail, which is insertion
// order. The chain must not be modified during iteration.
func (c *Chain[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for h := c.head; h != NilHandle; h = c.nodes[h].next {
			n := &c.nodes[h]
			if !yield(n.key, n.val) {
				return
			}
		}
	}
}

// Backward yields the chain's entries from tail to head by following prev
// links.
func (c *Chain[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for h := c.tail; h != NilHandle; h = c.nodes[h].prev {
			n := &c.nodes[h]
			if !yield(n.key, n.val) {
				return
			}
		}
	}
}
