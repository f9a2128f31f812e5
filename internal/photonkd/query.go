package photonkd

import "github.com/golang/geo/r3"

// Query returns the point indices of the leaf containing pos, or nil when
// pos falls into an empty side of a split. The list is shared with the
// tree and must not be modified. Callers filter by radius.
func (t *Tree) Query(pos r3.Vector) []int {
	queriesTotal.Inc()
	i := int32(0)
	for {
		n := &t.nodes[i]
		if n.leaf {
			candidatesPerQuery.Observe(float64(len(n.Points)))
			return n.Points
		}
		if axisOf(pos, n.Axis) <= n.Split {
			i = n.Below
		} else {
			i = n.Above
		}
		if i == noChild {
			return nil
		}
	}
}

// Query is the function form of Tree.Query.
func Query(t *Tree, pos r3.Vector) []int { return t.Query(pos) }

// Within returns the indices of the points whose search radius covers
// pos, appended to dst.
func (t *Tree) Within(points []Point, pos r3.Vector, dst []int) []int {
	for _, i := range t.Query(pos) {
		if points[i].Contains(pos) {
			dst = append(dst, i)
		}
	}
	return dst
}
