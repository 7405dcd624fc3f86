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

package hwy

import "fmt"

// KxK transposes of matrices held one row per vector.
//
// Each group of K consecutive lanes of the K row vectors is one matrix, so a
// vector holds NumLanes/K matrices side by side and all of them are
// transposed at once. After the transpose, lane j of group q of row i is
// lane i of group q of row j before it.
//
// The network has log2(K) levels. Level l pairs rows i and i+2^l and runs
// the two-row transpose on units of sizeof(T)·2^l bytes: the results of
// the previous level are only regrouped into wider units, never moved.
// The widest unit must still fit half a block, so K·sizeof(T) <= 16.

// transpose2 transposes every 2x2 matrix of g-byte units formed by
// consecutive unit pairs of x and y.
func transpose2(t Target, x, y raw, g, w int) (raw, raw) {
	lo, hi := t.zipLo(x, y, g, w), t.zipHi(x, y, g, w)
	if 2*g == BlockBytes {
		return lo, hi
	}
	return t.unzipLo(lo, hi, 2*g, w), t.unzipHi(lo, hi, 2*g, w)
}

func transposeRows(t Target, rows []raw, es, w int) {
	k := len(rows)
	for l, g := 1, es; l < k; l, g = 2*l, 2*g {
		for i := range k {
			if i&l == 0 {
				rows[i], rows[i+l] = transpose2(t, rows[i], rows[i+l], g, w)
			}
		}
	}
}

func checkTranspose[T Lanes](k int) {
	if k*sizeOf[T]() > BlockBytes {
		panic(fmt.Sprintf("hwy: Transpose%d of %d-byte lanes does not fit a 16-byte block", k, sizeOf[T]()))
	}
}

// Transpose2 transposes the 2x2 matrices of rows a0 and a1 in place.
func Transpose2[T Lanes](a0, a1 *Vec[T]) {
	transpose2Vec(current, a0, a1)
}

func transpose2Vec[T Lanes](t Target, a0, a1 *Vec[T]) {
	w := int(a0.n)
	sameWidth(w, int(a1.n))
	a0.r, a1.r = transpose2(t, a0.r, a1.r, sizeOf[T](), w)
}

// Transpose4 transposes the 4x4 matrices of rows a0..a3 in place. T must be
// at most 4 bytes wide.
func Transpose4[T Lanes](a0, a1, a2, a3 *Vec[T]) {
	transpose4Vec(current, a0, a1, a2, a3)
}

func transpose4Vec[T Lanes](t Target, a0, a1, a2, a3 *Vec[T]) {
	checkTranspose[T](4)
	w := int(a0.n)
	rows := [4]raw{a0.r, a1.r, a2.r, a3.r}
	for _, v := range [3]*Vec[T]{a1, a2, a3} {
		sameWidth(w, int(v.n))
	}
	transposeRows(t, rows[:], sizeOf[T](), w)
	a0.r, a1.r, a2.r, a3.r = rows[0], rows[1], rows[2], rows[3]
}

// Transpose8 transposes the 8x8 matrices of rows m[0..7] in place. T must
// be at most 2 bytes wide.
func Transpose8[T Lanes](m *[8]Vec[T]) {
	transposeN(current, m[:])
}

// Transpose16 transposes the 16x16 byte matrices of rows m[0..15] in place.
func Transpose16[T Lanes](m *[16]Vec[T]) {
	transposeN(current, m[:])
}

func transposeN[T Lanes](t Target, m []Vec[T]) {
	checkTranspose[T](len(m))
	w := int(m[0].n)
	var rows [16]raw
	for i := range m {
		sameWidth(w, int(m[i].n))
		rows[i] = m[i].r
	}
	transposeRows(t, rows[:len(m)], sizeOf[T](), w)
	for i := range m {
		m[i].r = rows[i]
	}
}
