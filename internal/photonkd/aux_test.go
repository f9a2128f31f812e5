package photonkd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointAuxSpill(t *testing.T) {
	var a pointAux
	for i := 0; i < MembershipCapacity; i++ {
		assert.False(t, a.add(uint32(i)))
	}
	assert.True(t, a.add(1000))
	assert.True(t, a.add(1001))
	assert.Equal(t, MembershipCapacity+2, a.size())
	assert.Equal(t, uint32(0), a.at(0))
	assert.Equal(t, uint32(MembershipCapacity-1), a.at(MembershipCapacity-1))
	assert.Equal(t, uint32(1001), a.at(MembershipCapacity+1))

	slots := make([]uint32, MembershipCapacity+5)
	for i := range slots {
		slots[i] = uint32(2 * i)
	}
	assert.Equal(t, 5, a.replace(slots))
	assert.Equal(t, len(slots), a.size())
	for i := range slots {
		assert.Equal(t, slots[i], a.at(i))
	}

	assert.Equal(t, 0, a.replace([]uint32{3, 4}))
	assert.Equal(t, 2, a.size())
	assert.Nil(t, a.spill)

	a.reset()
	assert.Equal(t, 0, a.size())
}

func TestPointAuxRanks(t *testing.T) {
	a := pointAux{edges: [6]uint32{1, 2, 3, 4, 5, 6}}
	assert.Equal(t, uint32(3), a.startRank(1))
	assert.Equal(t, uint32(6), a.endRank(2))
}
