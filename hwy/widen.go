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

import "unsafe"

// Locality says whether a primitive can be applied to a wide vector one
// native register at a time.
type Locality uint8

const (
	// LaneLocal primitives compute each 16-byte block of the result from
	// the same block of their inputs, so composing them register by
	// register is exact on every register width.
	LaneLocal Locality = iota

	// LaneCrossing primitives move data between blocks. Each target needs a
	// dedicated whole-vector implementation; per-register composition gives
	// wrong results.
	LaneCrossing
)

func (l Locality) String() string {
	switch l {
	case LaneLocal:
		return "lane-local"
	case LaneCrossing:
		return "lane-crossing"
	default:
		return "unknown"
	}
}

// Primitive names a Target primitive.
type Primitive uint8

const (
	PrimZipLo Primitive = iota
	PrimZipHi
	PrimUnzipLo
	PrimUnzipHi
	PrimShuffleBytes
	PrimBlend
	PrimAlignBlocks
	PrimReverseGroups
	PrimBroadcastGroups
	PrimLookupBytes
	PrimPermuteBlocks
	PrimAlignWide
	numPrimitives
)

// primitiveInfo is the locality of every primitive. It is part of each
// primitive's contract and is checked by the widen tests in both directions.
var primitiveInfo = [numPrimitives]struct {
	name     string
	locality Locality
}{
	PrimZipLo:           {"zip_lo", LaneLocal},
	PrimZipHi:           {"zip_hi", LaneLocal},
	PrimUnzipLo:         {"unzip_lo", LaneLocal},
	PrimUnzipHi:         {"unzip_hi", LaneLocal},
	PrimShuffleBytes:    {"shuffle_bytes", LaneLocal},
	PrimBlend:           {"blend", LaneLocal},
	PrimAlignBlocks:     {"align_blocks", LaneLocal},
	PrimReverseGroups:   {"reverse_groups", LaneLocal},
	PrimBroadcastGroups: {"broadcast_groups", LaneLocal},
	PrimLookupBytes:     {"lookup_bytes", LaneCrossing},
	PrimPermuteBlocks:   {"permute_blocks", LaneCrossing},
	PrimAlignWide:       {"align_wide", LaneCrossing},
}

func (p Primitive) String() string {
	if p >= numPrimitives {
		return "unknown"
	}
	return primitiveInfo[p].name
}

// Locality returns the primitive's locality.
func (p Primitive) Locality() Locality {
	return primitiveInfo[p].locality
}

// Primitives returns all primitives in declaration order.
func Primitives() []Primitive {
	out := make([]Primitive, numPrimitives)
	for i := range out {
		out[i] = Primitive(i)
	}
	return out
}

// Native register images. Targets implement their instructions on these.
type (
	reg128 = [16]byte
	reg256 = [32]byte
	reg512 = [64]byte
)

type nativeReg interface {
	reg128 | reg256 | reg512
}

func regBytes[R nativeReg]() int {
	var r R
	return len(r)
}

func loadReg[R nativeReg](r *raw, off int) R {
	return *(*R)(unsafe.Pointer(&r.b[off]))
}

func storeReg[R nativeReg](r *raw, off int, v R) {
	*(*R)(unsafe.Pointer(&r.b[off])) = v
}

// compose1 applies op to every native register of a w-byte vector. A vector
// narrower than the register runs on the low part with zero upper bytes,
// which lane-local instructions map to zero.
//
// The compose helpers are only for lane-local instructions. Lane-crossing
// primitives are written against the whole raw image instead.
func compose1[R nativeReg](a raw, w int, op func(a R) R) raw {
	var r raw
	n := regBytes[R]()
	for off := 0; off < w; off += n {
		storeReg(&r, off, op(loadReg[R](&a, off)))
	}
	return clearAbove(r, w)
}

// compose2 is compose1 for binary operations.
func compose2[R nativeReg](a, b raw, w int, op func(a, b R) R) raw {
	var r raw
	n := regBytes[R]()
	for off := 0; off < w; off += n {
		storeReg(&r, off, op(loadReg[R](&a, off), loadReg[R](&b, off)))
	}
	return clearAbove(r, w)
}

// compose3 is compose1 for ternary operations.
func compose3[R nativeReg](a, b, c raw, w int, op func(a, b, c R) R) raw {
	var r raw
	n := regBytes[R]()
	for off := 0; off < w; off += n {
		storeReg(&r, off, op(loadReg[R](&a, off), loadReg[R](&b, off), loadReg[R](&c, off)))
	}
	return clearAbove(r, w)
}

// clearAbove zeroes the bytes at and beyond w.
func clearAbove(r raw, w int) raw {
	clear(r.b[w:])
	return r
}

// block returns block i of r.
func block(r *raw, i int) reg128 {
	return loadReg[reg128](r, i*BlockBytes)
}

func setBlock(r *raw, i int, v reg128) {
	storeReg(r, i*BlockBytes, v)
}
