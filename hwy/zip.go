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

// ZipLo interleaves the lower halves of every 16-byte block of a and b.
// Lane-local.
//
// For 8-bit lanes: [0..15], [16..31] -> [0,16,1,17,...,7,23]
func ZipLo[T Lanes](a, b Vec[T]) Vec[T] {
	return zipLo(current, a, b)
}

func zipLo[T Lanes](t Target, a, b Vec[T]) Vec[T] {
	sameWidth(int(a.n), int(b.n))
	return makeVec[T](t.zipLo(a.r, b.r, sizeOf[T](), int(a.n)), int(a.n))
}

// ZipHi interleaves the upper halves of every 16-byte block of a and b.
// Lane-local.
//
// For 32-bit lanes: [a0,a1,a2,a3], [b0,b1,b2,b3] -> [a2,b2,a3,b3]
func ZipHi[T Lanes](a, b Vec[T]) Vec[T] {
	return zipHi(current, a, b)
}

func zipHi[T Lanes](t Target, a, b Vec[T]) Vec[T] {
	sameWidth(int(a.n), int(b.n))
	return makeVec[T](t.zipHi(a.r, b.r, sizeOf[T](), int(a.n)), int(a.n))
}

// UnzipLo gathers the even lanes of every block of a into the lower half of
// the result block and those of b into the upper half. Lane-local.
//
// UnzipLo(ZipLo(a, b), ZipHi(a, b)) == a.
func UnzipLo[T Lanes](a, b Vec[T]) Vec[T] {
	return unzipLo(current, a, b)
}

func unzipLo[T Lanes](t Target, a, b Vec[T]) Vec[T] {
	sameWidth(int(a.n), int(b.n))
	return makeVec[T](t.unzipLo(a.r, b.r, sizeOf[T](), int(a.n)), int(a.n))
}

// UnzipHi is UnzipLo for the odd lanes. Lane-local.
//
// UnzipHi(ZipLo(a, b), ZipHi(a, b)) == b.
func UnzipHi[T Lanes](a, b Vec[T]) Vec[T] {
	return unzipHi(current, a, b)
}

func unzipHi[T Lanes](t Target, a, b Vec[T]) Vec[T] {
	sameWidth(int(a.n), int(b.n))
	return makeVec[T](t.unzipHi(a.r, b.r, sizeOf[T](), int(a.n)), int(a.n))
}

// InterleaveLower is ZipLo, under the Highway name.
func InterleaveLower[T Lanes](a, b Vec[T]) Vec[T] {
	return zipLo(current, a, b)
}

// InterleaveUpper is ZipHi, under the Highway name.
func InterleaveUpper[T Lanes](a, b Vec[T]) Vec[T] {
	return zipHi(current, a, b)
}
