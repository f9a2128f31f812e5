package photonkd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeArenaSizing(t *testing.T) {
	assert.Len(t, newNodeArena(0, 100).nodes, 1)
	assert.Len(t, newNodeArena(2, 100).nodes, 7)
	assert.Len(t, newNodeArena(40, 1<<30).nodes, arenaSizeLimit)
	// deep builds over few points start small and grow on demand
	assert.Len(t, newNodeArena(40, 10).nodes, 41)
	assert.Len(t, newNodeArena(16, 0).nodes, 1)
}

func TestBuildDeepOverFewPoints(t *testing.T) {
	pts := randomPoints(41, 64, 0, 1, 0.01, 0.05)
	opts := testOptions(2)
	opts.MaxDepth = 40
	opts.MaxPointsPerLeaf = 1
	tr := Build(pts, opts)
	assert.NoError(t, tr.Validate(pts))
	assert.NoError(t, tr.CheckCoverage(pts))
}

func TestNodeArenaReserveAndGrow(t *testing.T) {
	a := newNodeArena(2, 100)
	root := a.alloc()
	assert.Equal(t, int32(0), root)
	assert.Equal(t, int32(noChild), a.at(root).below)
	a.at(root).count = 42

	assert.Equal(t, int32(1), a.reserve(3))
	assert.Equal(t, int32(4), a.reserve(2))
	assert.Equal(t, 6, a.len())

	a.ensure(1)
	assert.Equal(t, 0, a.grown)
	a.ensure(10)
	assert.Equal(t, 1, a.grown)
	assert.Len(t, a.nodes, 16)
	assert.Equal(t, uint32(42), a.at(root).count)

	a.ensure(100)
	assert.Len(t, a.nodes, 106)

	a.reset()
	assert.Equal(t, 0, a.len())
}
