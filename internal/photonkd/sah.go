package photonkd

import "math"

// sahModel is the surface area heuristic used to score split candidates.
type sahModel struct {
	isect      Real
	traversal  Real
	emptyBonus Real
}

// leafCost is the expected cost of not splitting a node with n points.
func (m sahModel) leafCost(n uint32) Real { return m.isect * Real(n) }

// splitCost scores the plane t on axis for a node with extent ext, given
// nBelow/nAbove points on either side. invArea is 1/SurfaceArea(ext).
func (m sahModel) splitCost(ext Bounds3, invArea Real, axis int, t Real, nBelow, nAbove uint32) Real {
	d := ext.Diagonal()
	o1, o2 := axisOf(d, (axis+1)%3), axisOf(d, (axis+2)%3)
	lo, hi := axisOf(ext.Min, axis), axisOf(ext.Max, axis)

	belowArea := 2 * (o1*o2 + (t-lo)*(o1+o2))
	aboveArea := 2 * (o1*o2 + (hi-t)*(o1+o2))
	pBelow, pAbove := belowArea*invArea, aboveArea*invArea

	eb := Real(0)
	if nBelow == 0 || nAbove == 0 {
		eb = m.emptyBonus
	}
	return m.traversal + m.isect*(1-eb)*(pBelow*Real(nBelow)+pAbove*Real(nAbove))
}

// splitMemo is the best split found for one live node. first and rank
// are the global ranks of the first and last edge at coordinate t.
type splitMemo struct {
	cost  Real
	t     Real
	first uint32
	rank  uint32
	nA    uint32
	nB    uint32
	axis  uint8
	ok    bool
}

func noSplit() splitMemo { return splitMemo{cost: math.Inf(1)} }

// better orders candidates by cost, then axis, then coordinate, then edge
// rank, so the winner does not depend on how edges were chunked.
func (m splitMemo) better(o splitMemo) bool {
	if !m.ok {
		return false
	}
	if !o.ok {
		return true
	}
	if m.cost != o.cost {
		return m.cost < o.cost
	}
	if m.axis != o.axis {
		return m.axis < o.axis
	}
	if m.t != o.t {
		return m.t < o.t
	}
	return m.rank < o.rank
}
