package agent

import (
	"runtime"
	"sync"
)

// blockingPool is a small fixed-size worker pool that sync-performers
// submit their blocking work to, so that a slow DoSync state never ties
// up an agent's own driver goroutine indefinitely. There's no library in
// this module's dependency set that offers this (Go has no counterpart
// to a dedicated blocking-task executor); a minimal channel-backed pool
// is the idiomatic stdlib way to express it.
type blockingPool struct {
	jobs chan func()
}

var (
	globalBlockingPool *blockingPool
	blockingPoolOnce   sync.Once
)

func getBlockingPool() *blockingPool {
	blockingPoolOnce.Do(func() {
		workers := runtime.GOMAXPROCS(0)
		if workers < 2 {
			workers = 2
		}

		p := &blockingPool{jobs: make(chan func())}
		for i := 0; i < workers; i++ {
			go p.worker()
		}
		globalBlockingPool = p
	})
	return globalBlockingPool
}

func (p *blockingPool) worker() {
	for job := range p.jobs {
		job()
	}
}

// runBlocking submits fn to the pool and blocks the calling goroutine
// until fn's result is available.
func runBlocking[T any](fn func() T) T {
	result := make(chan T, 1)
	getBlockingPool().jobs <- func() {
		result <- fn()
	}
	return <-result
}
