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

// Target is one instruction-set implementation of the engine's primitives.
//
// The primitive methods are unexported, so the set of targets is closed:
// scalar, ssse3, neon, avx2 and avx512. Each one is written in terms of the
// instructions of its tier (emulated over native register value types), and
// all of them must produce the scalar target's bytes. Emulated targets are
// for verification and for studying instruction sequences; the dispatcher
// does not pick them on its own.
//
// Arguments common to the primitives:
//   - w is the logical vector width in bytes (16, 32 or 64).
//   - g is a unit size in bytes (1, 2, 4 or 8), the element granularity.
//   - Bytes of the result at or beyond w are zero.
type Target interface {
	// Name returns the target name ("scalar", "ssse3", "neon", "avx2", "avx512").
	Name() string

	// Level returns the instruction set tier.
	Level() DispatchLevel

	// RegisterBytes returns the native register width.
	RegisterBytes() int

	// Emulated reports whether the target's instructions run as Go code
	// instead of on the CPU.
	Emulated() bool

	// Lane-local primitives: every 16-byte block of the result depends only
	// on the same block of the inputs.

	// zipLo interleaves the lower halves of each block of a and b in g-byte units.
	zipLo(a, b raw, g, w int) raw
	// zipHi interleaves the upper halves of each block of a and b in g-byte units.
	zipHi(a, b raw, g, w int) raw
	// unzipLo gathers the even g-byte units of each block of a then b.
	unzipLo(a, b raw, g, w int) raw
	// unzipHi gathers the odd g-byte units of each block of a then b.
	unzipHi(a, b raw, g, w int) raw
	// shuffleBytes reindexes each block from the same block of a and b:
	// m[i] < 16 selects a, 16 <= m[i] < 32 selects b, m[i]&0x80 zeroes.
	shuffleBytes(a, b raw, m ShuffleMask, w int) raw
	// blend returns (on & m) | (off &^ m).
	blend(on, off, m raw, w int) raw
	// alignBlocks returns bytes n..n+15 of hiBlock:loBlock per block, 0 <= n <= 16.
	alignBlocks(lo, hi raw, n, w int) raw
	// reverseGroups reverses the es-byte elements inside every group of gb bytes (gb <= 16).
	reverseGroups(a raw, gb, es, w int) raw
	// broadcastGroups copies element lane of every gb-byte group (gb <= 16) to the whole group.
	broadcastGroups(a raw, lane, gb, es, w int) raw

	// Lane-crossing primitives: explicit whole-vector implementations.

	// lookupBytes indexes the concatenation a‖b: idx[i] < 64 selects a,
	// 64 <= idx[i] < 128 selects b at idx[i]-64, idx[i] & 0x80 zeroes.
	lookupBytes(a, b raw, idx [MaxBytes]byte, w int) raw
	// permuteBlocks builds block i of the result from block sel[i] of a‖b
	// (0..3 from a, 4..7 from b, -1 zero).
	permuteBlocks(a, b raw, sel [4]int8, w int) raw
	// alignWide returns bytes n..n+w-1 of the concatenation lo‖hi, 0 <= n <= w.
	alignWide(lo, hi raw, n, w int) raw
}
