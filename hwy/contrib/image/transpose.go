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

package image

import (
	"unsafe"

	"github.com/ajroetker/hwyperm/hwy"
	"github.com/ajroetker/hwyperm/hwy/contrib/workerpool"
)

// tileSize returns K such that a KxK tile of T fills one 16-byte block.
func tileSize[T hwy.Lanes]() int {
	var zero T
	return hwy.BlockBytes / int(unsafe.Sizeof(zero))
}

// Transpose returns the height x width image whose pixel (x, y) is pixel
// (y, x) of src. Whole KxK tiles, where K lanes of T fill 16 bytes, go
// through hwy.Transpose2/4/8/16; the edges are copied pixel by pixel.
func Transpose[T hwy.Lanes](src *Image[T]) *Image[T] {
	dst := NewImage[T](src.height, src.width)
	k := tileSize[T]()
	rows := make([]hwy.Vec[T], k)
	for y0 := 0; y0+k <= src.height; y0 += k {
		transposeBand(src, dst, y0, rows)
	}
	transposeEdges(src, dst, k)
	return dst
}

// TransposeParallel is Transpose with the bands of K rows split across
// pool.
func TransposeParallel[T hwy.Lanes](pool *workerpool.Pool, src *Image[T]) *Image[T] {
	dst := NewImage[T](src.height, src.width)
	k := tileSize[T]()
	pool.ParallelFor(src.height/k, func(start, end int) {
		rows := make([]hwy.Vec[T], k)
		for b := start; b < end; b++ {
			transposeBand(src, dst, b*k, rows)
		}
	})
	transposeEdges(src, dst, k)
	return dst
}

// transposeBand transposes the whole tiles of rows [y0, y0+K) of src into
// columns [y0, y0+K) of dst. rows is scratch of length K.
func transposeBand[T hwy.Lanes](src, dst *Image[T], y0 int, rows []hwy.Vec[T]) {
	k := len(rows)
	tag := hwy.FixedTag128[T]{}
	for x0 := 0; x0+k <= src.width; x0 += k {
		for i := range rows {
			rows[i] = hwy.Load(tag, src.Row(y0 + i)[x0:])
		}
		switch k {
		case 2:
			hwy.Transpose2(&rows[0], &rows[1])
		case 4:
			hwy.Transpose4(&rows[0], &rows[1], &rows[2], &rows[3])
		case 8:
			hwy.Transpose8((*[8]hwy.Vec[T])(rows))
		case 16:
			hwy.Transpose16((*[16]hwy.Vec[T])(rows))
		}
		for i, v := range rows {
			hwy.Store(v, dst.Row(x0 + i)[y0:y0+k])
		}
	}
}

// transposeEdges copies the right and bottom strips not covered by whole
// tiles.
func transposeEdges[T hwy.Lanes](src, dst *Image[T], k int) {
	fullW, fullH := src.width/k*k, src.height/k*k
	for y := range src.height {
		x0 := fullW
		if y >= fullH {
			x0 = 0
		}
		for x := x0; x < src.width; x++ {
			dst.Set(y, x, src.At(x, y))
		}
	}
}
