package photonkd

import (
	"math/rand"
	"os"
	"slices"
	"time"

	"github.com/golang/geo/r3"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// IterationReport summarizes one pass of the driver loop.
type IterationReport struct {
	Iteration      int
	Build          BuildStats
	TraceTime      time.Duration
	Photons        int
	Accepted       int64
	Missed         int64
	MeanCandidates float64
	P95Candidates  float64
	MinRadius      float64
	MedianRadius   float64
	MaxRadius      float64
}

func Run(cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	_, err = RunConfig(cfg)
	return err
}

// RunConfig runs the rebuild-and-query loop: every iteration builds a tree
// over the visible points, drops the photons, and shrinks the radii of the
// points that were hit.
func RunConfig(cfg *Config) ([]IterationReport, error) {
	scene := Bounds3{Min: cfg.Scene.Min, Max: cfg.Scene.Max}
	opts := cfg.Options()

	points, err := initialPoints(cfg, scene)
	if err != nil {
		return nil, err
	}
	accumulated := make([]Real, len(points))
	reports := make([]IterationReport, 0, cfg.Iterations)

	for it := 0; it < cfg.Iterations; it++ {
		tree := Build(points, opts)
		if Debug {
			if err := tree.Validate(points); err != nil {
				return reports, errors.Wrapf(err, "iteration %d", it)
			}
		}
		if DumpTree {
			DumpKD(os.Stdout, tree)
		}

		start := time.Now()
		seed := cfg.Seed
		if seed != 0 {
			seed += int64(it)
		}
		tally := castPhotons(tree, points, scene, cfg.Photons, opts.NumWorkers, seed)
		trace := time.Since(start)

		updateRadii(points, accumulated, tally.hits, cfg.Alpha)

		rep, err := summarize(it, tree, tally, points, cfg.Photons, trace)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
		Logger.Infow("iteration",
			"n", it,
			"points", len(points),
			"nodes", rep.Build.Nodes,
			"leaves", rep.Build.Leaves,
			"depth", rep.Build.MaxDepth,
			"build", rep.Build.Duration,
			"trace", rep.TraceTime,
			"accepted", rep.Accepted,
			"meanCandidates", rep.MeanCandidates,
			"p95Candidates", rep.P95Candidates,
			"radius", []float64{rep.MinRadius, rep.MedianRadius, rep.MaxRadius},
		)
	}

	if cfg.SaveFinal != "" {
		if err := SavePoints(cfg.SaveFinal, points); err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func initialPoints(cfg *Config, scene Bounds3) ([]Point, error) {
	if cfg.PointsFile != "" {
		points, err := LoadPoints(cfg.PointsFile)
		if err != nil {
			return nil, err
		}
		for i := range points {
			if points[i].Radius <= 0 {
				points[i].Radius = cfg.InitialRadius
			}
		}
		return points, nil
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	d := scene.Diagonal()
	points := make([]Point, cfg.VisiblePoints)
	for i := range points {
		points[i] = Point{
			Pos: r3.Vector{
				X: scene.Min.X + rng.Float64()*d.X,
				Y: scene.Min.Y + rng.Float64()*d.Y,
				Z: scene.Min.Z + rng.Float64()*d.Z,
			},
			Radius: cfg.InitialRadius,
		}
	}
	return points, nil
}

func summarize(it int, tree *Tree, tally *photonTally, points []Point, photons int, trace time.Duration) (IterationReport, error) {
	rep := IterationReport{
		Iteration: it,
		Build:     tree.Stats(),
		TraceTime: trace,
		Photons:   photons,
		Accepted:  tally.accepted.Load(),
		Missed:    tally.missed.Load(),
	}
	if photons > 0 {
		cands := slices.Concat(tally.candidates...)
		var err error
		if rep.MeanCandidates, err = stats.Mean(cands); err != nil {
			return rep, errors.Wrap(err, "candidate mean")
		}
		if rep.P95Candidates, err = stats.Percentile(cands, 95); err != nil {
			return rep, errors.Wrap(err, "candidate percentile")
		}
	}
	if len(points) > 0 {
		radii := make([]float64, len(points))
		for i, p := range points {
			radii[i] = p.Radius
		}
		var err error
		if rep.MinRadius, err = stats.Min(radii); err != nil {
			return rep, errors.Wrap(err, "radius min")
		}
		if rep.MedianRadius, err = stats.Median(radii); err != nil {
			return rep, errors.Wrap(err, "radius median")
		}
		if rep.MaxRadius, err = stats.Max(radii); err != nil {
			return rep, errors.Wrap(err, "radius max")
		}
	}
	return rep, nil
}
