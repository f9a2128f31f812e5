package photonkd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBuilder prepares a builder up to the first Evaluate stage.
func newTestBuilder(pts []Point, workers int) (*builder, []int32) {
	opts := testOptions(workers).normalize()
	b := &builder{
		opts:    opts,
		sah:     sahModel{isect: opts.IsectCost, traversal: opts.TraversalCost, emptyBonus: opts.EmptyBonus},
		workers: workers,
		points:  pts,
		arena:   newNodeArena(opts.MaxDepth, len(pts)),
		leaves:  newLeafCollector(),
	}
	root := b.arena.alloc()
	b.arena.at(root).count = uint32(len(pts))
	b.arena.at(root).extent = b.rootExtent()
	b.aux = make([]pointAux, len(pts))
	for i := range b.aux {
		b.aux[i].add(0)
	}
	b.edges = buildEdges(pts, b.aux, workers)
	return b, []int32{root}
}

// bruteBest scores every distinct edge coordinate of the root directly,
// counting a point below when its box starts at or before the plane and
// above when it ends at or after it.
func bruteBest(b *builder) splitMemo {
	root := b.arena.at(0)
	inv := 1 / root.extent.SurfaceArea()
	best := noSplit()
	for axis := 0; axis < 3; axis++ {
		region := b.edges.region(axis)
		for r, e := range region {
			if r+1 < len(region) && region[r+1].T == e.T {
				continue
			}
			if !(e.T > axisOf(root.extent.Min, axis) && e.T < axisOf(root.extent.Max, axis)) {
				continue
			}
			var nBelow, nAbove uint32
			for i := range b.points {
				bb := b.points[i].Bounds()
				if axisOf(bb.Min, axis) <= e.T {
					nBelow++
				}
				if axisOf(bb.Max, axis) >= e.T {
					nAbove++
				}
			}
			cand := splitMemo{
				cost: b.sah.splitCost(root.extent, inv, axis, e.T, nBelow, nAbove),
				t:    e.T, rank: uint32(b.edges.base(axis) + r), nA: nBelow, nB: nAbove, axis: uint8(axis), ok: true,
			}
			if cand.better(best) {
				best = cand
			}
		}
	}
	return best
}

func TestFindBestPlanesMatchesBruteForce(t *testing.T) {
	pts := randomPoints(11, 400, 0, 1, 0.005, 0.04)
	for _, workers := range []int{1, 3, 8} {
		b, live := newTestBuilder(pts, workers)
		memo := b.findBestPlanes(live)
		require.Len(t, memo, 1)
		want := bruteBest(b)
		assert.True(t, memo[0].ok)
		assert.Equal(t, want.axis, memo[0].axis, "workers=%d", workers)
		assert.Equal(t, want.rank, memo[0].rank, "workers=%d", workers)
		assert.Equal(t, want.nA, memo[0].nA)
		assert.Equal(t, want.nB, memo[0].nB)
		assert.InDelta(t, want.cost, memo[0].cost, 1e-9)
	}
}

func TestFindBestPlanesTiedCoordinates(t *testing.T) {
	// coordinates on a coarse lattice so many edges share a plane
	pts := randomPoints(31, 500, 0, 1, 0, 0)
	for i := range pts {
		pts[i].Pos = p3(math.Round(pts[i].Pos.X*8)/8, math.Round(pts[i].Pos.Y*8)/8, math.Round(pts[i].Pos.Z*8)/8)
		pts[i].Radius = Real(i%3) / 16
	}
	for _, workers := range []int{1, 4, 7} {
		b, live := newTestBuilder(pts, workers)
		memo := b.findBestPlanes(live)
		want := bruteBest(b)
		require.True(t, memo[0].ok)
		assert.Equal(t, want.axis, memo[0].axis, "workers=%d", workers)
		assert.Equal(t, want.t, memo[0].t, "workers=%d", workers)
		assert.Equal(t, want.rank, memo[0].rank, "workers=%d", workers)
		assert.Equal(t, want.nA, memo[0].nA, "workers=%d", workers)
		assert.Equal(t, want.nB, memo[0].nB, "workers=%d", workers)

		region := b.edges.region(int(memo[0].axis))
		first := int(memo[0].first) - b.edges.base(int(memo[0].axis))
		assert.Equal(t, memo[0].t, region[first].T)
		if first > 0 {
			assert.Less(t, region[first-1].T, memo[0].t)
		}
	}
}

func TestRunCutsKeepTiesTogether(t *testing.T) {
	region := []Edge{{T: 0}, {T: 1}, {T: 1}, {T: 1}, {T: 1}, {T: 2}, {T: 3}, {T: 3}}
	cuts := runCuts(region, 4)
	assert.Equal(t, []int{0, 5, 5, 6, 8}, cuts)
	for c := 1; c < len(cuts)-1; c++ {
		if k := cuts[c]; k > 0 && k < len(region) {
			assert.NotEqual(t, region[k-1].T, region[k].T)
		}
	}
}

func TestFindBestPlanesSkipsSmallNodes(t *testing.T) {
	pts := randomPoints(2, MaxPointsPerLeaf, 0, 1, 0.01, 0.02)
	b, live := newTestBuilder(pts, 2)
	memo := b.findBestPlanes(live)
	assert.False(t, memo[0].ok)
	assert.False(t, b.accept(b.arena.at(live[0]), memo[0]))
}

func TestAcceptThinSide(t *testing.T) {
	pts := randomPoints(2, 100, 0, 1, 0.01, 0.02)
	b, live := newTestBuilder(pts, 1)
	n := b.arena.at(live[0])
	m := splitMemo{cost: 1, nA: 1, nB: 99, ok: true}
	assert.True(t, b.accept(n, m))

	b.opts.MinSideFraction = 0.05
	assert.False(t, b.accept(n, m))
	m.nA = 0
	assert.True(t, b.accept(n, m))

	m.cost = b.sah.leafCost(n.count)
	assert.False(t, b.accept(n, m))
}
