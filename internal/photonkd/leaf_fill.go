package photonkd

import "github.com/RoaringBitmap/roaring/v2"

// leafCollector gathers the point indices of every leaf while workers
// classify points concurrently. Each leaf owns one bitmap guarded by a
// shard lock; flattening yields indices in ascending order, so the result
// does not depend on which worker added what first.
type leafCollector struct {
	locks *shardLocks
	sets  []*roaring.Bitmap
}

func newLeafCollector() *leafCollector {
	return &leafCollector{locks: &shardLocks{}}
}

// open creates a new empty leaf and returns its slot. Not safe for
// concurrent use; slots are opened between parallel stages.
func (c *leafCollector) open() int32 {
	c.sets = append(c.sets, roaring.New())
	return int32(len(c.sets) - 1)
}

func (c *leafCollector) add(slot int32, point uint32) {
	c.locks.lock(slot)
	c.sets[slot].Add(point)
	c.locks.unlock(slot)
}

func (c *leafCollector) len() int { return len(c.sets) }

// flatten returns the sorted point list of a leaf and releases its bitmap.
// Distinct slots may be flattened concurrently.
func (c *leafCollector) flatten(slot int32) []int {
	set := c.sets[slot]
	c.sets[slot] = nil
	if set == nil || set.IsEmpty() {
		return []int{}
	}
	out := make([]int, 0, int(set.GetCardinality()))
	it := set.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// fill assigns a leaf to every node still live after the last level and
// hands it all of its remaining members.
func (b *builder) fill(live []int32) {
	slots := make([]int32, len(live))
	for i, id := range live {
		slots[i] = b.openLeaf(b.arena.at(id))
	}
	if len(live) > 0 {
		DebugLog("leaf fill: %d live nodes after %d levels", len(live), b.levels)
	}
	parallelRange(b.workers, len(b.aux), func(_, lo, hi int) {
		for p := lo; p < hi; p++ {
			a := &b.aux[p]
			for k, sz := 0, a.size(); k < sz; k++ {
				b.leaves.add(slots[a.at(k)], uint32(p))
			}
			a.reset()
		}
	})
}
