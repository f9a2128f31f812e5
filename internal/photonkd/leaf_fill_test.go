package photonkd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeafCollectorConcurrentAdd(t *testing.T) {
	c := newLeafCollector()
	slots := []int32{c.open(), c.open(), c.open()}
	assert.Equal(t, []int32{0, 1, 2}, slots)
	assert.Equal(t, 3, c.len())

	order := rand.New(rand.NewSource(1)).Perm(3000)
	parallelRange(8, len(order), func(_, lo, hi int) {
		for _, p := range order[lo:hi] {
			c.add(int32(p%2), uint32(p))
			if p%2 == 0 {
				c.add(0, uint32(p)) // duplicate adds collapse
			}
		}
	})

	even := c.flatten(0)
	odd := c.flatten(1)
	assert.Len(t, even, 1500)
	assert.Len(t, odd, 1500)
	for i := 1; i < len(even); i++ {
		assert.Less(t, even[i-1], even[i])
	}
	assert.Equal(t, 0, even[0])
	assert.Equal(t, 1, odd[0])

	empty := c.flatten(2)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestShardLocksMask(t *testing.T) {
	var sl shardLocks
	sl.lock(3)
	sl.unlock(NumShards + 3)
}
