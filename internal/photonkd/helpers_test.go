package photonkd

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
)

func p3(x, y, z Real) r3.Vector { return r3.Vector{X: x, Y: y, Z: z} }

func almostEq(a, b, eps Real) bool { return math.Abs(a-b) <= eps }

// randomPoints places n points uniformly in [lo,hi)^3 with radii in
// [rMin,rMax).
func randomPoints(seed int64, n int, lo, hi, rMin, rMax Real) []Point {
	rng := rand.New(rand.NewSource(seed))
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{
			Pos:    p3(lo+rng.Float64()*(hi-lo), lo+rng.Float64()*(hi-lo), lo+rng.Float64()*(hi-lo)),
			Radius: rMin + rng.Float64()*(rMax-rMin),
		}
	}
	return pts
}

func boxContains(p Point, q r3.Vector) bool { return p.Bounds().ContainsPoint(q) }

func testOptions(workers int) Options {
	o := DefaultOptions()
	o.NumWorkers = workers
	return o
}
