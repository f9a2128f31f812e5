package photonkd

import "time"

// Node is one record of a finished tree. Interior nodes keep their below
// child in the next slot; Above is explicit. Either child may be missing
// (-1) when that side of the split held no points.
type Node struct {
	Extent Bounds3
	Axis   int
	Split  Real
	Below  int32
	Above  int32
	Count  int
	Depth  int
	Points []int // leaf only, ascending point indices
	leaf   bool
}

func (n *Node) IsLeaf() bool { return n.leaf }

// BuildStats describes one build.
type BuildStats struct {
	Points       int
	Nodes        int
	Leaves       int
	EmptyLeaves  int
	MaxDepth     int
	Levels       int
	LeafRefs     int // sum of leaf list lengths, straddlers counted per leaf
	MaxLeafSize  int
	Spilled      int64
	ArenaGrowths int
	Duration     time.Duration
}

// Tree is an immutable k-d tree over a point set. It is safe for
// concurrent queries.
type Tree struct {
	nodes     []Node
	numPoints int
	stats     BuildStats
}

func (t *Tree) Nodes() []Node      { return t.nodes }
func (t *Tree) Root() *Node        { return &t.nodes[0] }
func (t *Tree) Bounds() Bounds3    { return t.nodes[0].Extent }
func (t *Tree) NumPoints() int     { return t.numPoints }
func (t *Tree) Stats() BuildStats  { return t.stats }
func (t *Tree) Node(i int32) *Node { return &t.nodes[i] }

// Leaves calls fn for every leaf in depth-first order.
func (t *Tree) Leaves(fn func(idx int32, n *Node)) {
	for i := range t.nodes {
		if t.nodes[i].leaf {
			fn(int32(i), &t.nodes[i])
		}
	}
}

// finish lays the arena out depth first, so every below child lands right
// after its parent, and flattens the leaf collectors into plain lists.
func (b *builder) finish() *Tree {
	t := &Tree{
		nodes:     make([]Node, 0, b.arena.len()),
		numPoints: len(b.points),
	}

	type frame struct {
		src, parent int32
		above       bool
	}
	type leafRef struct{ dst, slot int32 }
	var leaves []leafRef

	stack := []frame{{src: 0, parent: noChild}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := b.arena.at(f.src)
		dst := int32(len(t.nodes))
		out := Node{Extent: n.extent, Below: noChild, Above: noChild, Count: int(n.count), Depth: int(n.depth)}
		if n.interior {
			out.Axis, out.Split = int(n.axis), n.split
		} else {
			out.leaf = true
			leaves = append(leaves, leafRef{dst: dst, slot: n.leafSlot})
		}
		t.nodes = append(t.nodes, out)

		if f.parent != noChild {
			if f.above {
				t.nodes[f.parent].Above = dst
			} else {
				t.nodes[f.parent].Below = dst
			}
		}
		if n.interior {
			// below is pushed last so it is popped next
			if n.above != noChild {
				stack = append(stack, frame{src: n.above, parent: dst, above: true})
			}
			if n.below != noChild {
				stack = append(stack, frame{src: n.below, parent: dst})
			}
		}
	}

	parallelRange(b.workers, len(leaves), func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			t.nodes[leaves[i].dst].Points = b.leaves.flatten(leaves[i].slot)
		}
	})

	s := BuildStats{
		Points:       len(b.points),
		Nodes:        len(t.nodes),
		Leaves:       len(leaves),
		Levels:       b.levels,
		Spilled:      b.spilled.Load(),
		ArenaGrowths: b.arena.grown,
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		s.MaxDepth = max(s.MaxDepth, n.Depth)
		if !n.leaf {
			continue
		}
		s.LeafRefs += len(n.Points)
		s.MaxLeafSize = max(s.MaxLeafSize, len(n.Points))
		if len(n.Points) == 0 {
			s.EmptyLeaves++
		}
	}
	t.stats = s

	b.leaves, b.aux, b.edges = nil, nil, nil
	b.arena.reset()
	return t
}
