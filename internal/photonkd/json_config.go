package photonkd

import (
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// SceneCfg is the box photons land in and visible points are drawn from.
type SceneCfg struct {
	Min r3.Vector `json:"min"`
	Max r3.Vector `json:"max"`
}

// KDCfg overrides Build options. Zero or negative values keep the defaults.
type KDCfg struct {
	MaxDepth         int  `json:"maxDepth,omitempty"`
	MaxPointsPerLeaf int  `json:"maxPointsPerLeaf,omitempty"`
	NumWorkers       int  `json:"workers,omitempty"`
	IsectCost        Real `json:"isectCost,omitempty"`
	TraversalCost    Real `json:"traversalCost,omitempty"`
	EmptyBonus       Real `json:"emptyBonus,omitempty"`
	MinSideFraction  Real `json:"minSideFraction,omitempty"`

	// UseSceneBounds roots the tree at the scene box instead of the
	// union of the point boxes.
	UseSceneBounds bool `json:"useSceneBounds,omitempty"`
}

type Config struct {
	Iterations    int      `json:"iterations"`
	Photons       int      `json:"photons"`
	VisiblePoints int      `json:"visiblePoints"`
	PointsFile    string   `json:"pointsFile,omitempty"` // .json or .json.zst, replaces random points
	SaveFinal     string   `json:"saveFinal,omitempty"`  // writes the points with final radii
	InitialRadius Real     `json:"initialRadius"`
	Alpha         Real     `json:"alpha,omitempty"`
	Seed          int64    `json:"seed,omitempty"` // 0 seeds from the clock
	Scene         SceneCfg `json:"scene"`
	KD            KDCfg    `json:"kd"`
}

// Options turns the kd section into Build options.
func (c *Config) Options() Options {
	o := DefaultOptions()
	k := c.KD
	if k.MaxDepth > 0 {
		o.MaxDepth = k.MaxDepth
	}
	if k.MaxPointsPerLeaf > 0 {
		o.MaxPointsPerLeaf = k.MaxPointsPerLeaf
	}
	if k.NumWorkers > 0 {
		o.NumWorkers = k.NumWorkers
	}
	if k.IsectCost > 0 {
		o.IsectCost = k.IsectCost
	}
	if k.TraversalCost > 0 {
		o.TraversalCost = k.TraversalCost
	}
	if k.EmptyBonus > 0 && k.EmptyBonus < 1 {
		o.EmptyBonus = k.EmptyBonus
	}
	if k.MinSideFraction > 0 {
		o.MinSideFraction = k.MinSideFraction
	}
	if k.UseSceneBounds {
		b := Bounds3{Min: c.Scene.Min, Max: c.Scene.Max}
		o.Bounds = &b
	}
	return o
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	// Defaults / validation
	if cfg.Iterations <= 0 {
		cfg.Iterations = Iterations
	}
	if cfg.Photons <= 0 {
		cfg.Photons = PhotonsPerIteration
	}
	if cfg.VisiblePoints <= 0 {
		cfg.VisiblePoints = VisiblePoints
	}
	if cfg.InitialRadius <= 0 {
		cfg.InitialRadius = InitialRadius
	}
	if cfg.Alpha <= 0 || cfg.Alpha > 1 {
		cfg.Alpha = Alpha
	}
	if cfg.Scene.Min == (r3.Vector{}) && cfg.Scene.Max == (r3.Vector{}) {
		cfg.Scene.Max = r3.Vector{X: 1, Y: 1, Z: 1}
	}
	sc := Bounds3{Min: cfg.Scene.Min, Max: cfg.Scene.Max}
	if sc.IsEmpty() {
		return nil, errors.Errorf("config scene box is inverted: min=%v max=%v", sc.Min, sc.Max)
	}
	DebugLog("Loaded config from %s: iterations=%d photons=%d points=%d radius=%g alpha=%g",
		path, cfg.Iterations, cfg.Photons, cfg.VisiblePoints, cfg.InitialRadius, cfg.Alpha)
	return &cfg, nil
}
