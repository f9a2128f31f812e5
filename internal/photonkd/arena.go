package photonkd

import "sync/atomic"

const noChild = -1

// node is the build-time tree record. Nodes are placed once and never
// move relative to each other; children are referenced by arena index so
// the arena may be reallocated between stages.
type node struct {
	extent    Bounds3
	split     Real
	splitLo   uint32 // rank of the first edge at split
	splitHi   uint32 // rank of the last edge at split
	count     uint32
	below     int32
	above     int32
	leafSlot  int32
	depth     uint16
	axis      uint8
	interior  bool
}

// nodeArena is a bump allocator of nodes sized for a full tree up to the
// build depth, capped by the point count, grown only between stages.
type nodeArena struct {
	nodes []node
	next  atomic.Int32
	grown int
}

func newNodeArena(maxDepth, points int) *nodeArena {
	size := min(arenaSizeLimit, 4*points+1)
	if maxDepth < 20 {
		size = min(size, 1<<(maxDepth+1)-1)
	}
	return &nodeArena{nodes: make([]node, size)}
}

// ensure makes room for extra more nodes. Not safe for concurrent use.
func (a *nodeArena) ensure(extra int) {
	need := int(a.next.Load()) + extra
	if need <= len(a.nodes) {
		return
	}
	size := 2 * len(a.nodes)
	if size < need {
		size = need
	}
	grown := make([]node, size)
	copy(grown, a.nodes)
	a.nodes = grown
	a.grown++
}

// reserve claims k consecutive slots and returns the first one.
func (a *nodeArena) reserve(k int) int32 {
	return a.next.Add(int32(k)) - int32(k)
}

func (a *nodeArena) alloc() int32 {
	i := a.reserve(1)
	a.nodes[i] = node{below: noChild, above: noChild, leafSlot: noChild}
	return i
}

func (a *nodeArena) at(i int32) *node { return &a.nodes[i] }

func (a *nodeArena) len() int { return int(a.next.Load()) }

// reset drops every node in one go.
func (a *nodeArena) reset() {
	a.nodes = nil
	a.next.Store(0)
}
