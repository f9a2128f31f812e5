package photonkd

import (
	"runtime"
	"sync/atomic"
	"time"
)

// Options tunes Build. The zero value is usable except for MaxDepth,
// where 0 means a single root leaf; use DefaultOptions for the usual
// settings and override what you need.
type Options struct {
	// Bounds is the root extent. Nil means the union of all point boxes,
	// cubed when it is too thin relative to the largest radius.
	Bounds *Bounds3
	// MaxDepth < 0 falls back to the default. 0 is allowed.
	MaxDepth int
	// MaxPointsPerLeaf < 0 falls back to the default.
	MaxPointsPerLeaf int
	// NumWorkers <= 0 uses one worker per CPU.
	NumWorkers int

	IsectCost       Real
	TraversalCost   Real
	EmptyBonus      Real
	MinSideFraction Real
}

func DefaultOptions() Options {
	return Options{
		MaxDepth:         MaxDepth,
		MaxPointsPerLeaf: MaxPointsPerLeaf,
		NumWorkers:       runtime.NumCPU(),
		IsectCost:        IsectCost,
		TraversalCost:    TraversalCost,
		EmptyBonus:       EmptyBonus,
		MinSideFraction:  MinSideFraction,
	}
}

func (o Options) normalize() Options {
	if o.MaxDepth < 0 {
		o.MaxDepth = MaxDepth
	}
	if o.MaxDepth > 1<<15 {
		o.MaxDepth = 1 << 15
	}
	if o.MaxPointsPerLeaf < 0 {
		o.MaxPointsPerLeaf = MaxPointsPerLeaf
	}
	if o.NumWorkers <= 0 {
		o.NumWorkers = runtime.NumCPU()
	}
	if o.IsectCost <= 0 {
		o.IsectCost = IsectCost
	}
	if o.TraversalCost <= 0 {
		o.TraversalCost = TraversalCost
	}
	if o.EmptyBonus < 0 || o.EmptyBonus >= 1 {
		o.EmptyBonus = EmptyBonus
	}
	if o.MinSideFraction < 0 {
		o.MinSideFraction = MinSideFraction
	}
	return o
}

type builder struct {
	opts    Options
	sah     sahModel
	workers int
	points  []Point
	aux     []pointAux
	edges   *edgeSet
	arena   *nodeArena
	leaves  *leafCollector
	levels  int
	spilled atomic.Int64
}

// route tells Classify where the members of one live node go: to live
// slots of the next level, or into a leaf.
type route struct {
	below, above, leaf int32
}

// Build constructs the tree over points. It never fails: zero points
// give a single empty leaf and degenerate nodes become leaves.
func Build(points []Point, opts Options) *Tree {
	start := time.Now()
	opts = opts.normalize()
	b := &builder{
		opts:    opts,
		sah:     sahModel{isect: opts.IsectCost, traversal: opts.TraversalCost, emptyBonus: opts.EmptyBonus},
		workers: opts.NumWorkers,
		points:  points,
		arena:   newNodeArena(opts.MaxDepth, len(points)),
		leaves:  newLeafCollector(),
	}

	root := b.arena.alloc()
	rn := b.arena.at(root)
	rn.count = uint32(len(points))
	rn.extent = b.rootExtent()
	live := []int32{root}

	if len(points) > 0 {
		b.aux = make([]pointAux, len(points))
		parallelRange(b.workers, len(b.aux), func(_, lo, hi int) {
			for i := lo; i < hi; i++ {
				b.aux[i].add(uint32(0))
			}
		})
		b.edges = buildEdges(points, b.aux, b.workers)
		for level := 0; level < opts.MaxDepth && len(live) > 0; level++ {
			live = b.buildLevel(live)
			b.levels++
		}
	}
	b.fill(live)

	t := b.finish()
	t.stats.Duration = time.Since(start)
	if n := t.stats.Spilled; n > 0 {
		Logger.Warnw("membership capacity exceeded, spilled to overflow",
			"capacity", MembershipCapacity, "spilled", n, "points", len(points))
	}
	observeBuild(&t.stats)
	DebugLog("build: points=%d nodes=%d leaves=%d depth=%d levels=%d refs=%d took=%v",
		t.stats.Points, t.stats.Nodes, t.stats.Leaves, t.stats.MaxDepth, t.stats.Levels, t.stats.LeafRefs, t.stats.Duration)
	return t
}

// rootExtent picks the supplied bounds, or the union of the point boxes
// expanded to a cube when it is flat compared to the largest radius.
func (b *builder) rootExtent() Bounds3 {
	if b.opts.Bounds != nil {
		return *b.opts.Bounds
	}
	ext := EmptyBounds()
	maxR := Real(0)
	for _, p := range b.points {
		ext = ext.Union(p.Bounds())
		maxR = rmax(maxR, p.Radius)
	}
	if ext.IsEmpty() {
		return Bounds3{}
	}
	return ext.cubed(CubeRadiusFactor * maxR)
}

// buildLevel runs Evaluate, Materialize and Classify for one level and
// returns the next live set.
func (b *builder) buildLevel(live []int32) []int32 {
	memo := b.findBestPlanes(live)
	split := make([]bool, len(live))
	nSplit := 0
	for i, id := range live {
		if split[i] = b.accept(b.arena.at(id), memo[i]); split[i] {
			nSplit++
		}
	}
	b.materialize(live, memo, split)
	next, routes := b.publish(live, split)
	b.classify(live, routes)
	DebugLog("level %d: live=%d split=%d next=%d arena=%d", b.levels, len(live), nSplit, len(next), b.arena.len())
	return next
}

// materialize turns accepted splits into child nodes. Every chunk of live
// nodes claims its block of arena slots with a single atomic add.
func (b *builder) materialize(live []int32, memo []splitMemo, split []bool) {
	b.arena.ensure(2 * len(live))
	parallelRange(b.workers, len(live), func(_, lo, hi int) {
		need := 0
		for i := lo; i < hi; i++ {
			if !split[i] {
				continue
			}
			if memo[i].nA > 0 {
				need++
			}
			if memo[i].nB > 0 {
				need++
			}
		}
		if need == 0 {
			return
		}
		slot := b.arena.reserve(need)
		for i := lo; i < hi; i++ {
			if !split[i] {
				continue
			}
			p, m := b.arena.at(live[i]), memo[i]
			axis := int(m.axis)
			p.interior, p.axis, p.split = true, m.axis, m.t
			p.splitLo, p.splitHi = m.first, m.rank
			if m.nA > 0 {
				c := b.arena.at(slot)
				*c = node{extent: p.extent, count: m.nA, depth: p.depth + 1, below: noChild, above: noChild, leafSlot: noChild}
				setAxis(&c.extent.Max, axis, m.t)
				p.below = slot
				slot++
			}
			if m.nB > 0 {
				c := b.arena.at(slot)
				*c = node{extent: p.extent, count: m.nB, depth: p.depth + 1, below: noChild, above: noChild, leafSlot: noChild}
				setAxis(&c.extent.Min, axis, m.t)
				p.above = slot
				slot++
			}
		}
	})
}

// publish builds the next live set in live order and opens a leaf for
// every live node that was not split.
func (b *builder) publish(live []int32, split []bool) ([]int32, []route) {
	next := make([]int32, 0, 2*len(live))
	routes := make([]route, len(live))
	for i, id := range live {
		n := b.arena.at(id)
		r := route{below: noChild, above: noChild, leaf: noChild}
		if !split[i] {
			r.leaf = b.openLeaf(n)
		} else {
			if n.below != noChild {
				r.below = int32(len(next))
				next = append(next, n.below)
			}
			if n.above != noChild {
				r.above = int32(len(next))
				next = append(next, n.above)
			}
		}
		routes[i] = r
	}
	return next, routes
}

func (b *builder) openLeaf(n *node) int32 {
	n.leafSlot = b.leaves.open()
	return n.leafSlot
}
