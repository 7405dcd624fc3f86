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

func init() {
	register(avx512Target{}, 40)
}

// avx512Target uses AVX-512 BW and VBMI. Every vector fits one zmm register
// (narrower ones use the AVX512VL encodings), so lane-crossing primitives
// are single vpermi2b/vpermi2q instructions with zero-masking.
type avx512Target struct{}

func (avx512Target) Name() string         { return "avx512" }
func (avx512Target) Level() DispatchLevel { return DispatchAVX512 }
func (avx512Target) RegisterBytes() int   { return 64 }
func (avx512Target) Emulated() bool       { return true }

func (avx512Target) zipLo(a, b raw, g, w int) raw {
	return compose2(a, b, w, func(x, y reg512) reg512 { return vpunpckl512(x, y, g) })
}

func (avx512Target) zipHi(a, b raw, g, w int) raw {
	return compose2(a, b, w, func(x, y reg512) reg512 { return vpunpckh512(x, y, g) })
}

func (avx512Target) unzipLo(a, b raw, g, w int) raw {
	return compose2(a, b, w, avx512Unzip(g, 0))
}

func (avx512Target) unzipHi(a, b raw, g, w int) raw {
	return compose2(a, b, w, avx512Unzip(g, 1))
}

func avx512Unzip(g, phase int) func(x, y reg512) reg512 {
	if g == 8 {
		if phase == 0 {
			return func(x, y reg512) reg512 { return vpunpckl512(x, y, 8) }
		}
		return func(x, y reg512) reg512 { return vpunpckh512(x, y, 8) }
	}
	m := vbroadcasti32x4(compactMasks[log2Size(g)][phase])
	return func(x, y reg512) reg512 {
		return vpunpckl512(vpshufb512(x, m), vpshufb512(y, m), 8)
	}
}

func (avx512Target) shuffleBytes(a, b raw, m ShuffleMask, w int) raw {
	ma, mb := splitMask(m)
	va, vb := vbroadcasti32x4(ma), vbroadcasti32x4(mb)
	return compose2(a, b, w, func(x, y reg512) reg512 {
		return vpord512(vpshufb512(x, va), vpshufb512(y, vb))
	})
}

func (avx512Target) blend(on, off, m raw, w int) raw {
	return compose3(on, off, m, w, func(x, y, k reg512) reg512 { return vpternlogSelect(k, x, y) })
}

func (avx512Target) alignBlocks(lo, hi raw, n, w int) raw {
	return compose2(lo, hi, w, func(x, y reg512) reg512 { return vpalignr512(y, x, n) })
}

func (avx512Target) reverseGroups(a raw, gb, es, w int) raw {
	m := vbroadcasti32x4(reverseMask(gb, es))
	return compose1(a, w, func(x reg512) reg512 { return vpshufb512(x, m) })
}

func (avx512Target) broadcastGroups(a raw, lane, gb, es, w int) raw {
	m := vbroadcasti32x4(broadcastMask(lane, gb, es))
	return compose1(a, w, func(x reg512) reg512 { return vpshufb512(x, m) })
}

// lookupBytes is one vpermi2b over a‖b. The table is 2·w bytes, so the
// second-source indices are rebased from 64 to w, and ZeroIndex bytes are
// cleared through the zeroing mask (vpmovb2m + knot).
func (avx512Target) lookupBytes(a, b raw, idx [MaxBytes]byte, w int) raw {
	var ix reg512
	for i := range w {
		c := idx[i]
		if c&ZeroIndex == 0 && c >= wideSecondSource {
			c = c - wideSecondSource + byte(w)
		}
		ix[i] = c
	}
	k := ^vpmovb2m(ix) & laneMask(w)
	var r raw
	storeReg(&r, 0, vpermi2b(ix, loadReg[reg512](&a, 0), loadReg[reg512](&b, 0), k, w))
	return r
}

// permuteBlocks is vpermi2q with two quadword indices per block.
func (avx512Target) permuteBlocks(a, b raw, sel [4]int8, w int) raw {
	var ix [8]uint8
	var k uint8
	nq := w / 8
	for q := range nq {
		s := int(sel[q/2])
		switch {
		case s < 0:
			continue
		case s < 4:
			ix[q] = uint8(2*s + q%2)
		default:
			ix[q] = uint8(nq + 2*(s-4) + q%2)
		}
		k |= 1 << q
	}
	var r raw
	storeReg(&r, 0, vpermi2q(ix, loadReg[reg512](&a, 0), loadReg[reg512](&b, 0), k, w))
	return r
}

// alignWide is vpermi2b with indices n..n+w-1 into lo‖hi.
func (avx512Target) alignWide(lo, hi raw, n, w int) raw {
	var ix reg512
	for i := range w {
		ix[i] = byte(i + n)
	}
	var r raw
	storeReg(&r, 0, vpermi2b(ix, loadReg[reg512](&lo, 0), loadReg[reg512](&hi, 0), laneMask(w), w))
	return r
}

// laneMask has one bit per byte of a w-byte vector.
func laneMask(w int) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return 1<<w - 1
}
