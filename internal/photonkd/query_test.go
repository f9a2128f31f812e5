package photonkd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryBelowChildFollowsParent(t *testing.T) {
	pts := randomPoints(13, 1000, 0, 1, 0.01, 0.03)
	tr := Build(pts, testOptions(4))
	for i, n := range tr.Nodes() {
		if n.IsLeaf() || n.Below == noChild {
			continue
		}
		assert.Equal(t, int32(i+1), n.Below)
	}
}

func TestQueryWalk(t *testing.T) {
	pts := randomPoints(14, 800, 0, 1, 0.01, 0.03)
	tr := Build(pts, testOptions(2))
	q := p3(0.3, 0.6, 0.2)

	// walk by hand
	i := int32(0)
	for !tr.Node(i).IsLeaf() {
		n := tr.Node(i)
		if axisOf(q, n.Axis) <= n.Split {
			i = n.Below
		} else {
			i = n.Above
		}
		require.NotEqual(t, int32(noChild), i)
	}
	leaf := tr.Node(i)
	assert.True(t, leaf.Extent.ContainsPoint(q))
	assert.Equal(t, leaf.Points, tr.Query(q))
}

func TestQueryWithin(t *testing.T) {
	pts := randomPoints(15, 600, 0, 1, 0.02, 0.08)
	tr := Build(pts, testOptions(4))
	qs := randomPoints(16, 200, 0, 1, 0, 0)
	for _, q := range qs {
		got := tr.Within(pts, q.Pos, nil)
		var want []int
		for i := range pts {
			if pts[i].Contains(q.Pos) {
				want = append(want, i)
			}
		}
		assert.Equal(t, want, got)
	}
}
