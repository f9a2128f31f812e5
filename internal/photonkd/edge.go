package photonkd

import (
	"cmp"
	"slices"
)

// EdgeKind tells whether an edge opens or closes a point's box on its axis.
type EdgeKind uint8

const (
	Start EdgeKind = iota
	End
)

// Edge is the projection of one side of a point's box onto an axis.
type Edge struct {
	T     Real
	Point uint32
	Kind  EdgeKind
	Axis  uint8
}

// compareEdges orders by coordinate, then point index, then Start before End.
func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a.T, b.T); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Point, b.Point); c != 0 {
		return c
	}
	return cmp.Compare(a.Kind, b.Kind)
}

// Less reports whether a sorts before b.
func (a Edge) Less(b Edge) bool { return compareEdges(a, b) < 0 }

// edgeSet holds 2N edges per axis in three contiguous regions
// [2N*axis, 2N*(axis+1)), each sorted independently.
type edgeSet struct {
	edges []Edge
	n     int
}

func (s *edgeSet) region(axis int) []Edge {
	return s.edges[2*s.n*axis : 2*s.n*(axis+1)]
}

func (s *edgeSet) base(axis int) int { return 2 * s.n * axis }

// buildEdges creates, sorts and ranks the edges of all points. After it
// returns, aux[i].edges holds the global rank of each of point i's six
// edges in [Xs, Xe, Ys, Ye, Zs, Ze] order.
func buildEdges(points []Point, aux []pointAux, workers int) *edgeSet {
	n := len(points)
	s := &edgeSet{edges: make([]Edge, 6*n), n: n}

	for axis := 0; axis < 3; axis++ {
		region := s.region(axis)
		ax := uint8(axis)
		parallelRange(workers, n, func(_, lo, hi int) {
			for i := lo; i < hi; i++ {
				b := points[i].Bounds()
				region[2*i] = Edge{T: axisOf(b.Min, axis), Point: uint32(i), Kind: Start, Axis: ax}
				region[2*i+1] = Edge{T: axisOf(b.Max, axis), Point: uint32(i), Kind: End, Axis: ax}
			}
		})
	}

	// one sort per axis, all three at once
	parallelDo(workers, 3, func(axis int) {
		slices.SortFunc(s.region(axis), compareEdges)
	})

	for axis := 0; axis < 3; axis++ {
		region := s.region(axis)
		base := s.base(axis)
		parallelRange(workers, len(region), func(_, lo, hi int) {
			for r := lo; r < hi; r++ {
				e := region[r]
				aux[e.Point].edges[2*axis+int(e.Kind)] = uint32(base + r)
			}
		})
	}
	return s
}
