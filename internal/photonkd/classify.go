package photonkd

// classify moves every point from its current live nodes to the children
// its box touches, using edge ranks instead of coordinates. A point goes
// below when its Start edge is at or before the last edge at the split
// coordinate and above when its End edge is at or after the first one;
// straddlers and points touching the plane go both ways. Members of nodes that
// became leaves are handed to the leaf collector. Points are processed in
// disjoint ranges so no record is shared between workers.
func (b *builder) classify(live []int32, routes []route) {
	parallelRange(b.workers, len(b.aux), func(_, lo, hi int) {
		var buf []uint32
		spilled := 0
		for p := lo; p < hi; p++ {
			a := &b.aux[p]
			sz := a.size()
			if sz == 0 {
				continue
			}
			buf = buf[:0]
			for k := 0; k < sz; k++ {
				m := a.at(k)
				r := routes[m]
				if r.leaf != noChild {
					b.leaves.add(r.leaf, uint32(p))
					continue
				}
				n := b.arena.at(live[m])
				axis := int(n.axis)
				if r.below != noChild && a.startRank(axis) <= n.splitHi {
					buf = append(buf, uint32(r.below))
				}
				if r.above != noChild && a.endRank(axis) >= n.splitLo {
					buf = append(buf, uint32(r.above))
				}
			}
			spilled += a.replace(buf)
		}
		if spilled > 0 {
			b.spilled.Add(int64(spilled))
		}
	})
}
