package photonkd

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/golang/geo/r3"
)

// photonTally is what one photon pass leaves behind: hits per visible
// point and the leaf sizes seen by the queries.
type photonTally struct {
	hits       []atomic.Int32
	candidates [][]float64 // per worker, one sample per photon
	accepted   atomic.Int64
	missed     atomic.Int64 // photons that landed in an empty child
}

func workerSeed(seed int64, wid int) int64 {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return seed ^ int64(uint64(wid+1)*0x9e3779b97f4a7c15)
}

// castPhotons drops photons uniformly over the scene box, looks each one
// up in the tree and credits every visible point whose radius covers it.
// Photons are spread over the workers like the ray caster spreads rays,
// each worker with its own generator.
func castPhotons(t *Tree, points []Point, scene Bounds3, photons, workers int, seed int64) *photonTally {
	tally := &photonTally{hits: make([]atomic.Int32, len(points))}
	if photons <= 0 {
		return tally
	}
	workers = numChunks(workers, photons)
	tally.candidates = make([][]float64, workers)

	var counter int64
	nextPrint := int64(1)
	if photons >= ProgressSteps {
		nextPrint = int64(photons / ProgressSteps)
	}

	d := scene.Diagonal()
	parallelDo(workers, workers, func(wid int) {
		lo, hi := chunkBounds(photons, workers, wid)
		rng := rand.New(rand.NewSource(workerSeed(seed, wid)))
		samples := make([]float64, 0, hi-lo)
		var accepted, missed int64
		for s := lo; s < hi; s++ {
			pos := r3.Vector{
				X: scene.Min.X + rng.Float64()*d.X,
				Y: scene.Min.Y + rng.Float64()*d.Y,
				Z: scene.Min.Z + rng.Float64()*d.Z,
			}
			cands := t.Query(pos)
			if cands == nil {
				missed++
			}
			samples = append(samples, float64(len(cands)))
			for _, i := range cands {
				if points[i].Contains(pos) {
					tally.hits[i].Add(1)
					accepted++
				}
			}
			if fired := atomic.AddInt64(&counter, 1); fired%nextPrint == 0 {
				DebugLog("[PROGRESS] %.2f%%", Real(fired)*100/Real(photons))
			}
		}
		tally.candidates[wid] = samples
		tally.accepted.Add(accepted)
		tally.missed.Add(missed)
	})
	return tally
}

// updateRadii applies the progressive photon mapping update: a point that
// collected M new photons keeps a fraction alpha of them, and its radius
// shrinks so the photon density stays consistent.
//
//	N' = N + alpha*M
//	R' = R * sqrt(N' / (N + M))
func updateRadii(points []Point, accumulated []Real, hits []atomic.Int32, alpha Real) {
	for i := range points {
		m := Real(hits[i].Load())
		if m == 0 {
			continue
		}
		n := accumulated[i]
		next := n + alpha*m
		points[i].Radius *= math.Sqrt(next / (n + m))
		accumulated[i] = next
	}
}
