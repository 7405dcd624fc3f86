// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()
	assert.Equal(t, 4, pool.NumWorkers())

	def := New(0)
	defer def.Close()
	assert.Equal(t, runtime.GOMAXPROCS(0), def.NumWorkers())
}

// cover records every index handed to it and fails on duplicates.
type cover struct {
	mu   sync.Mutex
	seen map[int]int
}

func (c *cover) mark(start, end int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := start; i < end; i++ {
		c.seen[i]++
	}
}

func (c *cover) check(t *testing.T, n int) {
	t.Helper()
	require.Len(t, c.seen, n)
	for i := range n {
		require.Equal(t, 1, c.seen[i], "index %d", i)
	}
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()
	for _, n := range []int{1, 3, 4, 100, 1001} {
		c := &cover{seen: map[int]int{}}
		pool.ParallelFor(n, c.mark)
		c.check(t, n)
	}
}

func TestParallelForChunks_Boundaries(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	const n, chunk = 1000, 64
	var mu sync.Mutex
	var ranges [][2]int
	pool.ParallelForChunks(n, chunk, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		ranges = append(ranges, [2]int{start, end})
	})
	total := 0
	for _, r := range ranges {
		assert.Zero(t, r[0]%chunk, "range %v starts mid-chunk", r)
		if r[1] != n {
			assert.Zero(t, r[1]%chunk, "range %v ends mid-chunk", r)
		}
		total += r[1] - r[0]
	}
	assert.Equal(t, n, total)
}

func TestParallelForChunks_FewerChunksThanWorkers(t *testing.T) {
	pool := New(8)
	defer pool.Close()
	c := &cover{seen: map[int]int{}}
	pool.ParallelForChunks(100, 64, c.mark)
	c.check(t, 100)
}

func TestParallelForAtomic(t *testing.T) {
	pool := New(4)
	defer pool.Close()
	results := make([]int, 100)
	pool.ParallelForAtomic(len(results), func(i int) {
		results[i] = i * 2
	})
	for i, r := range results {
		require.Equal(t, i*2, r)
	}
}

func TestZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()
	var called atomic.Bool
	pool.ParallelFor(0, func(int, int) { called.Store(true) })
	pool.ParallelForAtomic(0, func(int) { called.Store(true) })
	assert.False(t, called.Load())
}

func TestClosedPool(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close()

	c := &cover{seen: map[int]int{}}
	pool.ParallelFor(100, c.mark)
	c.check(t, 100)

	var count int
	pool.ParallelForAtomic(10, func(int) { count++ })
	assert.Equal(t, 10, count)
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0)
	defer pool.Close()
	for b.Loop() {
		pool.ParallelFor(1000, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkParallelForAtomic(b *testing.B) {
	pool := New(0)
	defer pool.Close()
	for b.Loop() {
		pool.ParallelForAtomic(1000, func(i int) { _ = i * i })
	}
}
