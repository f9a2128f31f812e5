package photonkd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestValidateCatchesDamage(t *testing.T) {
	pts := randomPoints(19, 500, 0, 1, 0.01, 0.03)
	tr := Build(pts, testOptions(2))
	require.NoError(t, tr.Validate(pts))

	assert.Error(t, tr.Validate(pts[:10]))

	root := &tr.nodes[0]
	require.False(t, root.IsLeaf())
	saved := root.Split
	root.Split = root.Extent.Max.X + root.Extent.Max.Y + root.Extent.Max.Z + 1
	err := tr.Validate(pts)
	assert.Error(t, err)
	assert.GreaterOrEqual(t, len(multierr.Errors(err)), 2)
	root.Split = saved

	var leaf *Node
	for i := range tr.nodes {
		if tr.nodes[i].IsLeaf() && len(tr.nodes[i].Points) > 1 {
			leaf = &tr.nodes[i]
			break
		}
	}
	require.NotNil(t, leaf)
	leaf.Points[0], leaf.Points[1] = leaf.Points[1], leaf.Points[0]
	assert.Error(t, tr.Validate(pts))
	leaf.Points[0], leaf.Points[1] = leaf.Points[1], leaf.Points[0]

	dropped := leaf.Points[0]
	leaf.Points = leaf.Points[1:]
	leaf.Count--
	assert.Error(t, tr.CheckCoverage(pts), "point %d removed", dropped)
}
