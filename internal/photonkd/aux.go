package photonkd

// pointAux is the per-point build record: the ranks of its six edges and
// the live-node slots it belongs to at the current level. The inline set
// covers the common case; a point straddling more live nodes than that
// spills into a growable slice instead of corrupting its neighbours.
type pointAux struct {
	// layout [Xs, Xe, Ys, Ye, Zs, Ze]
	edges   [6]uint32
	members [MembershipCapacity]uint32
	n       uint8
	spill   []uint32
}

func (a *pointAux) startRank(axis int) uint32 { return a.edges[2*axis] }
func (a *pointAux) endRank(axis int) uint32   { return a.edges[2*axis+1] }

func (a *pointAux) size() int { return int(a.n) + len(a.spill) }

func (a *pointAux) at(i int) uint32 {
	if i < int(a.n) {
		return a.members[i]
	}
	return a.spill[i-int(a.n)]
}

// add appends a live slot and reports whether it had to spill.
func (a *pointAux) add(slot uint32) bool {
	if int(a.n) < MembershipCapacity {
		a.members[a.n] = slot
		a.n++
		return false
	}
	a.spill = append(a.spill, slot)
	return true
}

func (a *pointAux) reset() {
	a.n = 0
	a.spill = a.spill[:0]
}

// replace swaps the membership for slots and returns how many spilled.
func (a *pointAux) replace(slots []uint32) int {
	a.reset()
	spilled := 0
	for _, s := range slots {
		if a.add(s) {
			spilled++
		}
	}
	if spilled == 0 {
		a.spill = nil
	}
	return spilled
}
