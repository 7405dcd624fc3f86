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

// rangeFunc processes elements [lo, hi) of a buffer of n elements.
type rangeFunc func(dst, src []byte, typeSize, n, lo, hi int)

// BaseShuffle writes byte j of every typeSize-byte element of src to plane
// j of dst. dst must be at least as long as src.
func BaseShuffle(dst, src []byte, typeSize int) {
	apply(dst, src, typeSize, baseShuffleRange)
}

// BaseUnshuffle is the inverse of BaseShuffle.
func BaseUnshuffle(dst, src []byte, typeSize int) {
	apply(dst, src, typeSize, baseUnshuffleRange)
}

func baseShuffleRange(dst, src []byte, typeSize, n, lo, hi int) {
	for i := lo; i < hi; i++ {
		for j := range typeSize {
			dst[j*n+i] = src[i*typeSize+j]
		}
	}
}

func baseUnshuffleRange(dst, src []byte, typeSize, n, lo, hi int) {
	for i := lo; i < hi; i++ {
		for j := range typeSize {
			dst[i*typeSize+j] = src[j*n+i]
		}
	}
}

// apply runs kernel over every whole element and copies the trailing bytes.
func apply(dst, src []byte, typeSize int, kernel rangeFunc) {
	n := prepare(dst, src, typeSize)
	if n == 0 {
		return
	}
	kernel(dst, src, typeSize, n, 0, n)
}

// prepare checks the buffers, copies what the kernels do not touch and
// returns the number of whole elements left for them.
func prepare(dst, src []byte, typeSize int) int {
	if len(dst) < len(src) {
		panic("byteshuffle: dst is shorter than src")
	}
	if typeSize <= 1 || len(src) < typeSize {
		copy(dst, src)
		return 0
	}
	n := len(src) / typeSize
	copy(dst[n*typeSize:len(src)], src[n*typeSize:])
	return n
}
