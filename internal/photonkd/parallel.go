package photonkd

import "golang.org/x/sync/errgroup"

// parallelDo runs fn for every task id in [0,tasks) on at most workers
// goroutines and returns once all of them are done.
func parallelDo(workers, tasks int, fn func(task int)) {
	if tasks <= 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers == 1 || tasks == 1 {
		for t := 0; t < tasks; t++ {
			fn(t)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for t := 0; t < tasks; t++ {
		g.Go(func() error {
			fn(t)
			return nil
		})
	}
	_ = g.Wait()
}

// parallelRange cuts [0,n) into at most workers contiguous chunks and runs
// fn on each of them.
func parallelRange(workers, n int, fn func(chunk, lo, hi int)) {
	if n <= 0 {
		return
	}
	chunks := numChunks(workers, n)
	parallelDo(workers, chunks, func(c int) {
		lo, hi := chunkBounds(n, chunks, c)
		fn(c, lo, hi)
	})
}

func numChunks(workers, n int) int {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		return n
	}
	return workers
}

// chunkBounds spreads the remainder over the first chunks, like the
// per-worker ray split in the photon caster.
func chunkBounds(n, chunks, c int) (lo, hi int) {
	base, rem := n/chunks, n%chunks
	lo = c*base + min(c, rem)
	hi = lo + base
	if c < rem {
		hi++
	}
	return lo, hi
}
