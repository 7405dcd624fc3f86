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
)

// Image is a single-channel 2D array whose rows are padded to a whole
// number of vectors. Kernels may load and store full vectors at the end of
// a row; the padding absorbs them.
type Image[T hwy.Lanes] struct {
	data   []T
	width  int
	height int
	stride int // elements per row, padding included
}

// NewImage returns a zeroed width x height image. Non-positive dimensions
// give an empty image.
func NewImage[T hwy.Lanes](width, height int) *Image[T] {
	if width <= 0 || height <= 0 {
		return &Image[T]{}
	}
	lanes := hwy.MaxLanes[T]()
	stride := (width + lanes - 1) / lanes * lanes
	return &Image[T]{
		data:   make([]T, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}
}

// Width returns the image width in pixels.
func (img *Image[T]) Width() int {
	return img.width
}

// Height returns the image height in pixels.
func (img *Image[T]) Height() int {
	return img.height
}

// Stride returns the number of elements per row, padding included.
func (img *Image[T]) Stride() int {
	return img.stride
}

// Row returns row y including its padding, or nil if y is out of range.
func (img *Image[T]) Row(y int) []T {
	if y < 0 || y >= img.height {
		return nil
	}
	start := y * img.stride
	return img.data[start : start+img.stride]
}

// RowSlice returns the width pixels of row y, or nil if y is out of range.
func (img *Image[T]) RowSlice(y int) []T {
	if row := img.Row(y); row != nil {
		return row[:img.width]
	}
	return nil
}

// At returns the pixel at (x, y), or zero outside the image.
func (img *Image[T]) At(x, y int) T {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		var zero T
		return zero
	}
	return img.data[y*img.stride+x]
}

// Set sets the pixel at (x, y). Coordinates outside the image are ignored.
func (img *Image[T]) Set(x, y int, value T) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return
	}
	img.data[y*img.stride+x] = value
}

// SameSize reports whether a and b have the same dimensions.
func SameSize[T, U hwy.Lanes](a *Image[T], b *Image[U]) bool {
	return a.width == b.width && a.height == b.height
}

// Planes is a set of same-sized images, one per channel: three for RGB or
// YUV, four for RGBA.
type Planes[T hwy.Lanes] struct {
	planes []*Image[T]
}

// NewPlanes returns n zeroed planes of width x height.
func NewPlanes[T hwy.Lanes](n, width, height int) *Planes[T] {
	p := &Planes[T]{planes: make([]*Image[T], n)}
	for i := range p.planes {
		p.planes[i] = NewImage[T](width, height)
	}
	return p
}

// NumPlanes returns the number of channels.
func (p *Planes[T]) NumPlanes() int {
	return len(p.planes)
}

// Plane returns plane i, or nil if i is out of range.
func (p *Planes[T]) Plane(i int) *Image[T] {
	if i < 0 || i >= len(p.planes) {
		return nil
	}
	return p.planes[i]
}

// Width returns the width shared by all planes.
func (p *Planes[T]) Width() int {
	if len(p.planes) == 0 {
		return 0
	}
	return p.planes[0].Width()
}

// Height returns the height shared by all planes.
func (p *Planes[T]) Height() int {
	if len(p.planes) == 0 {
		return 0
	}
	return p.planes[0].Height()
}
