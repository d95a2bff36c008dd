package snapshot

import (
	"github.com/chazu/heapkind/heap"
)

// Census tallies the blocks of a snapshot by kind.
type Census struct {
	Counts [heap.NumKinds]int
	Total  int
	Marked int // blocks with any mark bit set
}

// Census counts the captured blocks.
func (s *Snapshot) Census() *Census {
	c := &Census{}
	for _, b := range s.Blocks {
		h := b.Header()
		if !h.Kind().IsValid() {
			continue
		}
		c.Counts[h.Kind()]++
		c.Total++
		if h.Marks() != 0 {
			c.Marked++
		}
	}
	return c
}

// Count returns the number of blocks of kind k; zero for an invalid kind.
func (c *Census) Count(k heap.Kind) int {
	if !k.IsValid() {
		return 0
	}
	return c.Counts[k]
}

// Objects returns the number of blocks with an object layout.
func (c *Census) Objects() int {
	n := 0
	for k := heap.FirstObjectKind; k <= heap.LastObjectKind; k++ {
		n += c.Counts[k]
	}
	return n
}

// Collections returns per-type counts, indexed from heap.CollectionVector.
func (c *Census) Collections() [heap.NumCollectionTypes]int {
	var out [heap.NumCollectionTypes]int
	for i := range out {
		out[i] = c.Counts[heap.FirstCollectionKind+heap.Kind(i)]
	}
	return out
}

// Mutable returns the number of mutable collection blocks.
func (c *Census) Mutable() int {
	n := 0
	for k := heap.FirstCollectionKind; k <= heap.LastCollectionKind; k++ {
		if ct, _ := k.Collection(); ct.IsMutable() {
			n += c.Counts[k]
		}
	}
	return n
}

// AllocatorInternal returns the number of blocks owned by the allocator.
func (c *Census) AllocatorInternal() int {
	n := 0
	for k := heap.FirstAllocatorKind; k <= heap.LastAllocatorKind; k++ {
		n += c.Counts[k]
	}
	return n
}
