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
	register(neonTarget{}, 25)
}

// neonTarget uses 128-bit AArch64 Advanced SIMD. NEON has native
// de-interleave (uzp) and two-register table lookup (tbl), so unzip and
// two-source shuffles are one instruction per register.
type neonTarget struct{}

func (neonTarget) Name() string         { return "neon" }
func (neonTarget) Level() DispatchLevel { return DispatchNEON }
func (neonTarget) RegisterBytes() int   { return 16 }
func (neonTarget) Emulated() bool       { return true }

func (neonTarget) zipLo(a, b raw, g, w int) raw {
	return compose2(a, b, w, func(x, y reg128) reg128 { return vzip1q(x, y, g) })
}

func (neonTarget) zipHi(a, b raw, g, w int) raw {
	return compose2(a, b, w, func(x, y reg128) reg128 { return vzip2q(x, y, g) })
}

func (neonTarget) unzipLo(a, b raw, g, w int) raw {
	return compose2(a, b, w, func(x, y reg128) reg128 { return vuzp1q(x, y, g) })
}

func (neonTarget) unzipHi(a, b raw, g, w int) raw {
	return compose2(a, b, w, func(x, y reg128) reg128 { return vuzp2q(x, y, g) })
}

// shuffleBytes maps the mask directly onto tbl: indices 16..31 read the
// second table register and ZeroIndex is out of range, which yields zero.
func (neonTarget) shuffleBytes(a, b raw, m ShuffleMask, w int) raw {
	return compose2(a, b, w, func(x, y reg128) reg128 { return vqtbl2q(x, y, m) })
}

func (neonTarget) blend(on, off, m raw, w int) raw {
	return compose3(on, off, m, w, func(x, y, k reg128) reg128 { return vbslq(k, x, y) })
}

func (neonTarget) alignBlocks(lo, hi raw, n, w int) raw {
	if n == BlockBytes {
		return clearAbove(hi, w)
	}
	return compose2(lo, hi, w, func(x, y reg128) reg128 { return vextq(x, y, n) })
}

// reverseGroups uses rev16/rev32/rev64 for containers up to 8 bytes. A
// whole-register reverse is rev64 followed by swapping the doublewords.
func (neonTarget) reverseGroups(a raw, gb, es, w int) raw {
	switch {
	case gb == es:
		return a
	case gb <= 8:
		return compose1(a, w, func(x reg128) reg128 { return vrevq(x, gb, es) })
	case es == 8:
		return compose1(a, w, func(x reg128) reg128 { return vextq(x, x, 8) })
	default:
		return compose1(a, w, func(x reg128) reg128 {
			y := vrevq(x, 8, es)
			return vextq(y, y, 8)
		})
	}
}

func (neonTarget) broadcastGroups(a raw, lane, gb, es, w int) raw {
	if gb == BlockBytes {
		return compose1(a, w, func(x reg128) reg128 { return vdupqLaneq(x, lane, es) })
	}
	m := reg128(broadcastMask(lane, gb, es))
	return compose1(a, w, func(x reg128) reg128 { return vqtbl1q(x, m) })
}

// lookupBytes is tbl over the registers of a, then tbx over the registers
// of b with the indices rebased by 64. Indices that belong to a (or are
// ZeroIndex) are out of range for the tbx table and keep the tbl result.
func (neonTarget) lookupBytes(a, b raw, idx [MaxBytes]byte, w int) raw {
	var r raw
	nb := w / BlockBytes
	var ta, tb [4]reg128
	for i := range nb {
		ta[i] = block(&a, i)
		tb[i] = block(&b, i)
	}
	for o := range nb {
		ix := reg128(idx[o*BlockBytes : (o+1)*BlockBytes])
		lo := vqtblnq(ta[:nb], ix)
		setBlock(&r, o, vqtbxnq(lo, tb[:nb], vsubqU8(ix, wideSecondSource)))
	}
	return r
}

func (neonTarget) permuteBlocks(a, b raw, sel [4]int8, w int) raw {
	return moveBlocks(a, b, sel, w)
}

func (neonTarget) alignWide(lo, hi raw, n, w int) raw {
	return alignChain(lo, hi, n, w, func(h, l reg128, n int) reg128 { return vextq(l, h, n) })
}
