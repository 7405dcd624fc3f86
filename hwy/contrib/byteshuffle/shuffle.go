// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package byteshuffle

import (
	"github.com/ajroetker/hwyperm/hwy"
	"github.com/ajroetker/hwyperm/hwy/contrib/workerpool"
)

// Dispatch function variables. They start as the vector kernels and fall
// back to the base implementations when HWY_NO_SIMD is set.
var (
	// Shuffle writes byte j of every typeSize-byte element of src to plane j
	// of dst. dst must be at least as long as src.
	Shuffle func(dst, src []byte, typeSize int)

	// Unshuffle is the inverse of Shuffle.
	Unshuffle func(dst, src []byte, typeSize int)
)

func init() {
	Shuffle, Unshuffle = shuffleVec, unshuffleVec
	if hwy.NoSimdEnv() {
		Shuffle, Unshuffle = BaseShuffle, BaseUnshuffle
	}
}

func shuffleVec(dst, src []byte, typeSize int) {
	apply(dst, src, typeSize, shuffleKernel(typeSize))
}

func unshuffleVec(dst, src []byte, typeSize int) {
	apply(dst, src, typeSize, unshuffleKernel(typeSize))
}

// ShuffleParallel is Shuffle with the elements split across pool. Every
// worker but the last gets a whole number of vectors.
func ShuffleParallel(pool *workerpool.Pool, dst, src []byte, typeSize int) {
	parallel(pool, dst, src, typeSize, shuffleKernel(typeSize))
}

// UnshuffleParallel is Unshuffle with the elements split across pool.
func UnshuffleParallel(pool *workerpool.Pool, dst, src []byte, typeSize int) {
	parallel(pool, dst, src, typeSize, unshuffleKernel(typeSize))
}

func parallel(pool *workerpool.Pool, dst, src []byte, typeSize int, kernel rangeFunc) {
	n := prepare(dst, src, typeSize)
	if n == 0 {
		return
	}
	pool.ParallelForChunks(n, hwy.MaxLanes[uint8](), func(lo, hi int) {
		kernel(dst, src, typeSize, n, lo, hi)
	})
}

func shuffleKernel(typeSize int) rangeFunc {
	switch typeSize {
	case 2, 3, 4, 6:
		return shuffleRange
	case 8:
		return shuffle8Range
	}
	return baseShuffleRange
}

func unshuffleKernel(typeSize int) rangeFunc {
	switch typeSize {
	case 2, 3, 4, 6:
		return unshuffleRange
	case 8:
		return unshuffle8Range
	}
	return baseUnshuffleRange
}

// plane returns the part of plane j that holds elements [i, hi).
func plane(buf []byte, n, j, i, hi int) []byte {
	return buf[j*n+i : j*n+hi]
}

// shuffleRange deinterleaves one vector of elements per step. The last
// step reads a short source, which loads as zeros, and its stores stop at
// hi.
func shuffleRange(dst, src []byte, typeSize, n, lo, hi int) {
	tag := hwy.ScalableTag[uint8]{}
	lanes := tag.MaxLanes()
	for i := lo; i < hi; i += lanes {
		in := src[i*typeSize : hi*typeSize]
		switch typeSize {
		case 2:
			a, b := hwy.LoadInterleaved2(tag, in)
			a.Store(plane(dst, n, 0, i, hi))
			b.Store(plane(dst, n, 1, i, hi))
		case 3:
			a, b, c := hwy.LoadInterleaved3(tag, in)
			a.Store(plane(dst, n, 0, i, hi))
			b.Store(plane(dst, n, 1, i, hi))
			c.Store(plane(dst, n, 2, i, hi))
		case 4:
			a, b, c, d := hwy.LoadInterleaved4(tag, in)
			a.Store(plane(dst, n, 0, i, hi))
			b.Store(plane(dst, n, 1, i, hi))
			c.Store(plane(dst, n, 2, i, hi))
			d.Store(plane(dst, n, 3, i, hi))
		case 6:
			for j, v := range hwy.LoadInterleaved6(tag, in) {
				v.Store(plane(dst, n, j, i, hi))
			}
		}
	}
}

func unshuffleRange(dst, src []byte, typeSize, n, lo, hi int) {
	tag := hwy.ScalableTag[uint8]{}
	lanes := tag.MaxLanes()
	for i := lo; i < hi; i += lanes {
		out := dst[i*typeSize : hi*typeSize]
		var v [6]hwy.Vec[uint8]
		for j := range typeSize {
			v[j] = hwy.Load(tag, plane(src, n, j, i, hi))
		}
		switch typeSize {
		case 2:
			hwy.StoreInterleaved2(v[0], v[1], out)
		case 3:
			hwy.StoreInterleaved3(v[0], v[1], v[2], out)
		case 4:
			hwy.StoreInterleaved4(v[0], v[1], v[2], v[3], out)
		case 6:
			hwy.StoreInterleaved6(v, out)
		}
	}
}

// load reads the vector at byte offset off of s, zero filled past the end.
func load(tag hwy.Tag, s []byte, off int) hwy.Vec[uint8] {
	return hwy.Load(tag, s[min(off, len(s)):])
}

// store writes v at byte offset off of s, stopping at the end.
func store(v hwy.Vec[uint8], s []byte, off int) {
	v.Store(s[min(off, len(s)):])
}

// unpackWords splits four vectors of 8-byte elements into their four
// 2-byte words.
func unpackWords(tag hwy.Tag, s []byte, off int) [4]hwy.Vec[uint16] {
	w := tag.Width()
	var x [4]hwy.Vec[uint16]
	for k := range x {
		x[k] = hwy.BitCast[uint16](load(tag, s, off+k*w))
	}
	x[0], x[1], x[2], x[3] = hwy.MemUnpack4(x[0], x[1], x[2], x[3])
	return x
}

// shuffle8Range handles 8-byte elements in two stages: MemUnpack4 over
// 2-byte words for each half of a vector of elements, then MemUnpack2 over
// bytes to split every word into its two planes.
func shuffle8Range(dst, src []byte, _, n, lo, hi int) {
	tag := hwy.ScalableTag[uint8]{}
	w := tag.Width()
	for i := lo; i < hi; i += w {
		in := src[i*8 : hi*8]
		a := unpackWords(tag, in, 0)
		b := unpackWords(tag, in, 4*w)
		for k := range 4 {
			even, odd := hwy.MemUnpack2(hwy.BitCast[uint8](a[k]), hwy.BitCast[uint8](b[k]))
			even.Store(plane(dst, n, 2*k, i, hi))
			odd.Store(plane(dst, n, 2*k+1, i, hi))
		}
	}
}

func unshuffle8Range(dst, src []byte, _, n, lo, hi int) {
	tag := hwy.ScalableTag[uint8]{}
	w := tag.Width()
	for i := lo; i < hi; i += w {
		out := dst[i*8 : hi*8]
		var a, b [4]hwy.Vec[uint16]
		for k := range 4 {
			x0, x1 := hwy.MemPack2(
				hwy.Load(tag, plane(src, n, 2*k, i, hi)),
				hwy.Load(tag, plane(src, n, 2*k+1, i, hi)))
			a[k], b[k] = hwy.BitCast[uint16](x0), hwy.BitCast[uint16](x1)
		}
		for half, words := range [2][4]hwy.Vec[uint16]{a, b} {
			x0, x1, x2, x3 := hwy.MemPack4(words[0], words[1], words[2], words[3])
			for k, x := range [4]hwy.Vec[uint16]{x0, x1, x2, x3} {
				store(hwy.BitCast[uint8](x), out, (4*half+k)*w)
			}
		}
	}
}
