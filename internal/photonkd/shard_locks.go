package photonkd

import "sync"

// paddedMutex keeps neighbouring shards off the same cache line.
type paddedMutex struct {
	sync.Mutex
	_ [56]byte
}

type shardLocks struct{ mu [NumShards]paddedMutex }

func (sl *shardLocks) lock(idx int32)   { sl.mu[idx&(NumShards-1)].Lock() }
func (sl *shardLocks) unlock(idx int32) { sl.mu[idx&(NumShards-1)].Unlock() }
