// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for splitting large
// buffers across goroutines. A Pool is created once and reused by every
// call, so shuffling many buffers does not pay for goroutine spawns.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for _, buf := range buffers {
//	    byteshuffle.ShuffleParallel(pool, out, buf, 8)
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of goroutines fed through one channel.
type Pool struct {
	numWorkers int
	workC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

// task is one unit of work plus the barrier of the call that queued it.
type task struct {
	run  func()
	done *sync.WaitGroup
}

// New starts numWorkers goroutines; numWorkers <= 0 means GOMAXPROCS. The
// goroutines live until Close.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan task, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for t := range p.workC {
		t.run()
		t.done.Done()
	}
}

// NumWorkers returns the number of goroutines in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops the workers after the queued work completes. It is safe to
// call more than once; a closed pool runs every call on the caller's
// goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// fanOut runs body on up to workers goroutines and waits for all of them.
func (p *Pool) fanOut(workers int, body func(worker int)) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := range workers {
		p.workC <- task{run: func() { body(w) }, done: &wg}
	}
	wg.Wait()
}

// ParallelFor splits [0, n) into one contiguous range per worker and calls
// fn(start, end) for each. It returns when every range is done.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	p.ParallelForChunks(n, 1, fn)
}

// ParallelForChunks is ParallelFor with every range boundary except n
// rounded to a multiple of chunk. Callers that process whole vectors use it
// so that only the last range has a partial tail.
func (p *Pool) ParallelForChunks(n, chunk int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	chunk = max(chunk, 1)
	chunks := (n + chunk - 1) / chunk
	workers := min(p.numWorkers, chunks)
	if workers == 1 || p.closed.Load() {
		fn(0, n)
		return
	}
	per := (chunks + workers - 1) / workers * chunk
	p.fanOut(workers, func(w int) {
		start := w * per
		if start >= n {
			return
		}
		fn(start, min(start+per, n))
	})
}

// ParallelForAtomic calls fn(i) for every i in [0, n), handing out indices
// through an atomic counter so uneven items balance across workers.
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
	var next atomic.Int64
	p.fanOut(workers, func(int) {
		for {
			i := int(next.Add(1)) - 1
			if i >= n {
				return
			}
			fn(i)
		}
	})
}
