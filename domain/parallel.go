package domain

import (
	"sync"

	"github.com/notargets/gohydro/utils"
)

// parallelFor shares the index range [0, n) across the worker pool, one
// contiguous bucket per goroutine. Buckets are disjoint so workers need no
// synchronization; Wait is the barrier before the next dependent phase.
func (d *Domain) parallelFor(n int, f func(lo, hi int)) {
	if d.NumThreads <= 1 || n < d.NumThreads {
		f(0, n)
		return
	}
	var (
		pm = utils.NewPartitionMap(d.NumThreads, n)
		wg = sync.WaitGroup{}
	)
	for np := 0; np < d.NumThreads; np++ {
		wg.Add(1)
		go func(np int) {
			lo, hi := pm.GetBucketRange(np)
			f(lo, hi)
			wg.Done()
		}(np)
	}
	wg.Wait()
}
