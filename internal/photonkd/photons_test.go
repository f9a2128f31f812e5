package photonkd

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRadii(t *testing.T) {
	pts := []Point{{Radius: 1}, {Radius: 1}}
	acc := make([]Real, 2)
	hits := make([]atomic.Int32, 2)
	hits[0].Store(3)

	updateRadii(pts, acc, hits, 2.0/3.0)
	assert.InDelta(t, math.Sqrt(2.0/3.0), pts[0].Radius, 1e-12)
	assert.InDelta(t, 2.0, acc[0], 1e-12)
	assert.Equal(t, 1.0, pts[1].Radius)
	assert.Equal(t, 0.0, acc[1])

	// second pass: N=2, M=3 -> N'=4, R' = R*sqrt(4/5)
	updateRadii(pts, acc, hits, 2.0/3.0)
	assert.InDelta(t, math.Sqrt(2.0/3.0)*math.Sqrt(4.0/5.0), pts[0].Radius, 1e-12)
}

func TestCastPhotonsDeterministic(t *testing.T) {
	pts := randomPoints(22, 400, 0, 1, 0.03, 0.06)
	tr := Build(pts, testOptions(4))
	scene := Bounds3{Min: p3(0, 0, 0), Max: p3(1, 1, 1)}

	a := castPhotons(tr, pts, scene, 5000, 4, 99)
	b := castPhotons(tr, pts, scene, 5000, 4, 99)

	var sum int64
	for i := range pts {
		assert.Equal(t, a.hits[i].Load(), b.hits[i].Load())
		sum += int64(a.hits[i].Load())
	}
	assert.Equal(t, a.accepted.Load(), sum)
	assert.Greater(t, sum, int64(0))

	require.Len(t, a.candidates, 4)
	n := 0
	for _, c := range a.candidates {
		n += len(c)
	}
	assert.Equal(t, 5000, n)
}

func TestCastPhotonsNone(t *testing.T) {
	tr := Build(nil, DefaultOptions())
	tally := castPhotons(tr, nil, Bounds3{}, 0, 4, 1)
	assert.Empty(t, tally.hits)
	assert.Equal(t, int64(0), tally.accepted.Load())
}
