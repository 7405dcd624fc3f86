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
	"github.com/ajroetker/hwyperm/hwy"
	"github.com/cockroachdb/errors"
)

// checkPacked validates a packed buffer of height rows holding width pixels
// of n channels each and returns the row stride in elements.
func checkPacked(n, width, height, stride, length int) (int, error) {
	switch n {
	case 2, 3, 4, 6:
	default:
		return 0, errors.Newf("image: %d channels; want 2, 3, 4 or 6", n)
	}
	if stride == 0 {
		stride = width * n
	}
	if stride < width*n {
		return 0, errors.Newf("image: stride %d is less than %d pixels of %d channels", stride, width, n)
	}
	if height > 0 && length < (height-1)*stride+width*n {
		return 0, errors.Newf("image: buffer of %d elements is too short for %dx%d pixels of %d channels with stride %d",
			length, width, height, n, stride)
	}
	return stride, nil
}

// Deinterleave splits packed pixels of n channels (2, 3, 4 or 6) into
// planes. Row y of src starts at y*stride; a zero stride means width*n.
//
//	src:    R0 G0 B0 R1 G1 B1 ...
//	planes: R0 R1 ...  G0 G1 ...  B0 B1 ...
func Deinterleave[T hwy.Lanes](src []T, n, width, height, stride int) (*Planes[T], error) {
	stride, err := checkPacked(n, width, height, stride, len(src))
	if err != nil {
		return nil, err
	}
	p := NewPlanes[T](n, width, height)
	for y := range p.Height() {
		deinterleaveRow(src[y*stride:y*stride+width*n], p, y)
	}
	return p, nil
}

func deinterleaveRow[T hwy.Lanes](row []T, p *Planes[T], y int) {
	tag := hwy.ScalableTag[T]{}
	lanes := tag.MaxLanes()
	n := p.NumPlanes()
	dst := func(j, x int) []T { return p.planes[j].Row(y)[x:] }
	for x := 0; x < p.Width(); x += lanes {
		in := row[x*n:]
		switch n {
		case 2:
			a, b := hwy.LoadInterleaved2(tag, in)
			a.Store(dst(0, x))
			b.Store(dst(1, x))
		case 3:
			a, b, c := hwy.LoadInterleaved3(tag, in)
			a.Store(dst(0, x))
			b.Store(dst(1, x))
			c.Store(dst(2, x))
		case 4:
			a, b, c, d := hwy.LoadInterleaved4(tag, in)
			a.Store(dst(0, x))
			b.Store(dst(1, x))
			c.Store(dst(2, x))
			d.Store(dst(3, x))
		case 6:
			for j, v := range hwy.LoadInterleaved6(tag, in) {
				v.Store(dst(j, x))
			}
		}
	}
}

// Interleave writes the planes of p as packed pixels to dst, the inverse of
// Deinterleave. Elements of dst between rows are left unchanged.
func Interleave[T hwy.Lanes](p *Planes[T], dst []T, stride int) error {
	n, width := p.NumPlanes(), p.Width()
	stride, err := checkPacked(n, width, p.Height(), stride, len(dst))
	if err != nil {
		return err
	}
	for y := range p.Height() {
		interleaveRow(p, y, dst[y*stride:y*stride+width*n])
	}
	return nil
}

func interleaveRow[T hwy.Lanes](p *Planes[T], y int, row []T) {
	tag := hwy.ScalableTag[T]{}
	lanes := tag.MaxLanes()
	n := p.NumPlanes()
	var v [6]hwy.Vec[T]
	for x := 0; x < p.Width(); x += lanes {
		for j := range n {
			v[j] = hwy.Load(tag, p.planes[j].Row(y)[x:])
		}
		out := row[x*n:]
		switch n {
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
