package photonkd

import "slices"

// prescanTab holds Start (nA) and End (nB) counts of one live node's
// edges within one chunk of an axis.
type prescanTab struct {
	nA, nB uint32
}

// mustBeLeaf reports the unconditional leaf rules: small enough or deep
// enough.
func (b *builder) mustBeLeaf(n *node) bool {
	return int(n.count) <= b.opts.MaxPointsPerLeaf || int(n.depth) >= b.opts.MaxDepth
}

// accept decides whether the best split of n is worth materializing.
func (b *builder) accept(n *node, m splitMemo) bool {
	if !m.ok || b.mustBeLeaf(n) {
		return false
	}
	if !(m.cost < b.sah.leafCost(n.count)) {
		return false
	}
	thin := b.opts.MinSideFraction * Real(len(b.points))
	if (m.nA > 0 && Real(m.nA) < thin) || (m.nB > 0 && Real(m.nB) < thin) {
		return false
	}
	return true
}

// runCuts splits an axis region into chunks whose boundaries never fall
// inside a run of edges sharing one coordinate. cuts[c] and cuts[c+1]
// delimit chunk c; chunks may be empty.
func runCuts(region []Edge, chunks int) []int {
	span := len(region)
	cuts := make([]int, chunks+1)
	for c := 1; c < chunks; c++ {
		lo, _ := chunkBounds(span, chunks, c)
		lo = max(lo, cuts[c-1])
		for lo > 0 && lo < span && region[lo].T == region[lo-1].T {
			lo++
		}
		cuts[c] = lo
	}
	cuts[chunks] = span
	return cuts
}

// findBestPlanes returns the cheapest split of every live node over all
// three axes. Each axis is cut into chunks; a prescan counts edges per
// chunk and node, a sequential carry turns the counts into exclusive
// prefix sums, and a final scan evaluates every candidate with exact
// below/above counts. No two workers write the same counter.
//
// Candidates are the distinct edge coordinates t. A point is below t when
// its box starts at or before t and above when it ends at or after t, so
// points touching the plane land on both sides.
func (b *builder) findBestPlanes(live []int32) []splitMemo {
	nl := len(live)
	memo := make([]splitMemo, nl)
	for i := range memo {
		memo[i] = noSplit()
	}

	active := make([]bool, nl)
	invArea := make([]Real, nl)
	anyActive := false
	for i, id := range live {
		n := b.arena.at(id)
		if b.mustBeLeaf(n) {
			continue
		}
		sa := n.extent.SurfaceArea()
		if !(sa > 0) {
			continue
		}
		active[i], invArea[i], anyActive = true, 1/sa, true
	}
	if !anyActive {
		return memo
	}

	span := 2 * b.edges.n
	chunks := numChunks(b.workers, span)
	tasks := 3 * chunks
	var cuts [3][]int
	for axis := 0; axis < 3; axis++ {
		cuts[axis] = runCuts(b.edges.region(axis), chunks)
	}

	// [axis][chunk][live node]
	pre := make([]prescanTab, tasks*nl)
	row := func(task int) []prescanTab { return pre[task*nl : (task+1)*nl] }

	parallelDo(b.workers, tasks, func(task int) {
		axis, chunk := task/chunks, task%chunks
		lo, hi := cuts[axis][chunk], cuts[axis][chunk+1]
		region := b.edges.region(axis)
		tab := row(task)
		for r := lo; r < hi; r++ {
			e := region[r]
			a := &b.aux[e.Point]
			for k, sz := 0, a.size(); k < sz; k++ {
				if e.Kind == Start {
					tab[a.at(k)].nA++
				} else {
					tab[a.at(k)].nB++
				}
			}
		}
	})

	// sequential carry: chunk k starts with the totals of chunks 0..k-1
	for axis := 0; axis < 3; axis++ {
		for l := 0; l < nl; l++ {
			var runA, runB uint32
			for c := 0; c < chunks; c++ {
				t := &pre[(axis*chunks+c)*nl+l]
				nA, nB := t.nA, t.nB
				t.nA, t.nB = runA, runB
				runA += nA
				runB += nB
			}
		}
	}

	memos := make([]splitMemo, tasks*nl)
	parallelDo(b.workers, tasks, func(task int) {
		axis, chunk := task/chunks, task%chunks
		lo, hi := cuts[axis][chunk], cuts[axis][chunk+1]
		region := b.edges.region(axis)
		base := b.edges.base(axis)
		run := slices.Clone(row(task))
		best := memos[task*nl : (task+1)*nl]
		for i := range best {
			best[i] = noSplit()
		}
		// seen[m] == rs+1 once node m has an edge in the run starting at rs
		seen := make([]int, nl)
		endsBefore := make([]uint32, nl)
		var touched []uint32

		for rs := lo; rs < hi; {
			t := region[rs].T
			re := rs
			for re < hi && region[re].T == t {
				re++
			}
			touched = touched[:0]
			for r := rs; r < re; r++ {
				e := region[r]
				a := &b.aux[e.Point]
				for k, sz := 0, a.size(); k < sz; k++ {
					m := a.at(k)
					c := &run[m]
					if seen[m] != rs+1 {
						seen[m] = rs + 1
						endsBefore[m] = c.nB
						touched = append(touched, m)
					}
					if e.Kind == Start {
						c.nA++
					} else {
						c.nB++
					}
				}
			}
			for _, m := range touched {
				if !active[m] {
					continue
				}
				n := b.arena.at(live[m])
				if !(t > axisOf(n.extent.Min, axis) && t < axisOf(n.extent.Max, axis)) {
					continue
				}
				nBelow, nAbove := run[m].nA, n.count-endsBefore[m]
				cand := splitMemo{
					cost:  b.sah.splitCost(n.extent, invArea[m], axis, t, nBelow, nAbove),
					t:     t,
					first: uint32(base + rs),
					rank:  uint32(base + re - 1),
					nA:    nBelow,
					nB:    nAbove,
					axis:  uint8(axis),
					ok:    true,
				}
				if cand.better(best[m]) {
					best[m] = cand
				}
			}
			rs = re
		}
	})

	for l := 0; l < nl; l++ {
		for task := 0; task < tasks; task++ {
			if cand := memos[task*nl+l]; cand.better(memo[l]) {
				memo[l] = cand
			}
		}
	}
	return memo
}
