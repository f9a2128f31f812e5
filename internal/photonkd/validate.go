package photonkd

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Validate checks the structural invariants of t against the points it
// was built from: child layout, child extents nested in their parent and
// split by the parent's plane, cached counts and sorted leaf lists. All
// violations are combined.
func (t *Tree) Validate(points []Point) error {
	if len(t.nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	if len(points) != t.numPoints {
		return errors.Errorf("tree built over %d points, got %d", t.numPoints, len(points))
	}
	var err error
	for i := range t.nodes {
		err = multierr.Append(err, t.validateNode(int32(i), points))
	}
	return err
}

func (t *Tree) validateNode(i int32, points []Point) error {
	n := &t.nodes[i]
	if n.leaf {
		if len(n.Points) != n.Count {
			return errors.Errorf("leaf %d: count %d, listed %d", i, n.Count, len(n.Points))
		}
		seen := -1
		for _, p := range n.Points {
			if p <= seen || p >= len(points) {
				return errors.Errorf("leaf %d: bad or unordered point %d", i, p)
			}
			seen = p
		}
		return nil
	}
	var err error
	if n.Below != noChild && n.Below != i+1 {
		err = multierr.Append(err, errors.Errorf("node %d: below child at %d", i, n.Below))
	}
	if n.Below == noChild && n.Above == noChild {
		err = multierr.Append(err, errors.Errorf("node %d: interior without children", i))
	}
	lo, hi := axisOf(n.Extent.Min, n.Axis), axisOf(n.Extent.Max, n.Axis)
	if !(n.Split > lo && n.Split < hi) {
		err = multierr.Append(err, errors.Errorf("node %d: split %g outside (%g,%g)", i, n.Split, lo, hi))
	}
	for _, c := range []struct {
		idx   int32
		below bool
	}{{n.Below, true}, {n.Above, false}} {
		if c.idx == noChild {
			continue
		}
		if int(c.idx) <= int(i) || int(c.idx) >= len(t.nodes) {
			err = multierr.Append(err, errors.Errorf("node %d: child index %d out of order", i, c.idx))
			continue
		}
		child := &t.nodes[c.idx]
		if !n.Extent.ContainsBounds(child.Extent) {
			err = multierr.Append(err, errors.Errorf("node %d: child %d extent escapes parent", i, c.idx))
		}
		if c.below && axisOf(child.Extent.Max, n.Axis) != n.Split {
			err = multierr.Append(err, errors.Errorf("node %d: below child %d not bounded by split", i, c.idx))
		}
		if !c.below && axisOf(child.Extent.Min, n.Axis) != n.Split {
			err = multierr.Append(err, errors.Errorf("node %d: above child %d not bounded by split", i, c.idx))
		}
		if child.Depth != n.Depth+1 {
			err = multierr.Append(err, errors.Errorf("node %d: child %d depth %d", i, c.idx, child.Depth))
		}
		if child.Count > n.Count {
			err = multierr.Append(err, errors.Errorf("node %d: child %d holds %d > %d points", i, c.idx, child.Count, n.Count))
		}
	}
	return err
}

// CheckCoverage reports every point whose box intersects a leaf extent,
// faces included, without being listed in that leaf.
func (t *Tree) CheckCoverage(points []Point) error {
	var err error
	t.Leaves(func(idx int32, n *Node) {
		listed := make(map[int]struct{}, len(n.Points))
		for _, p := range n.Points {
			listed[p] = struct{}{}
		}
		for i := range points {
			if !n.Extent.Intersects(points[i].Bounds()) {
				continue
			}
			if _, ok := listed[i]; !ok {
				err = multierr.Append(err, errors.Errorf("leaf %d misses point %d", idx, i))
			}
		}
	})
	return err
}
