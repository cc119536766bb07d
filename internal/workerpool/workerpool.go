// Package workerpool provides a persistent pool of goroutines for the
// data-parallel phases of the time-frequency transforms.
//
// Work is expressed as an index range [0, n). The pool splits it into
// contiguous chunks, hands each chunk to one worker, and blocks until all
// chunks are done. Each chunk owns its slice of the output, so no locking is
// needed on the results; the return of ParallelFor is the barrier between
// phases.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.ParallelFor(rows, func(start, end int) {
//	    for r := start; r < end; r++ {
//	        computeRow(r)
//	    }
//	})
package workerpool

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with the specified number of workers.
// If numWorkers <= 0, GOMAXPROCS is used.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		p.run(item)
	}
}

// run executes one item and always releases the barrier, so a panicking
// task cannot deadlock ParallelFor.
func (p *Pool) run(item workItem) {
	defer item.barrier.Done()
	item.fn()
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the pool. Pending work completes first.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor executes fn over [0, n) in contiguous chunks and blocks until
// every chunk has returned.
//
// A closed pool, a single worker, or n == 1 runs fn(0, n) on the caller's
// goroutine.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	_ = p.ParallelForErr(n, func(start, end int) error {
		fn(start, end)
		return nil
	})
}

// ParallelForErr is ParallelFor for chunk functions that can fail.
// Every chunk runs to completion; the errors of all failing chunks are
// joined in chunk order.
//
// If a chunk panics, the panic is re-raised on the caller's goroutine after
// all other chunks have finished.
func (p *Pool) ParallelForErr(n int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		return fn(0, n)
	}

	chunkSize := (n + workers - 1) / workers
	chunks := (n + chunkSize - 1) / chunkSize

	errs := make([]error, chunks)
	panics := make([]any, chunks)

	var wg sync.WaitGroup
	wg.Add(chunks)

	for c := range chunks {
		start := c * chunkSize
		end := min(start+chunkSize, n)

		p.workC <- workItem{
			fn: func() {
				defer func() {
					if r := recover(); r != nil {
						panics[c] = r
					}
				}()
				errs[c] = fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()

	for _, r := range panics {
		if r != nil {
			panic(r)
		}
	}

	return errors.Join(errs...)
}

// ParallelForAtomic executes fn for each index in [0, n) using atomic work
// stealing. This balances load when the cost per index varies.
// Blocks until all work completes.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		for i := range n {
			fn(i)
		}
		return
	}

	var nextIdx atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					idx := int(nextIdx.Add(1)) - 1
					if idx >= n {
						return
					}
					fn(idx)
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}
