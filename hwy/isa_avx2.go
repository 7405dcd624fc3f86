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
	register(avx2Target{}, 30)
}

// avx2Target uses 256-bit AVX2. Its byte shuffles and unpacks work within
// each 128-bit lane, which is exactly the block semantics of the lane-local
// primitives; only vperm2i128 and vpermq move data between lanes.
//
// 16-byte vectors use the VEX.128 forms, which behave like SSSE3.
type avx2Target struct{}

func (avx2Target) Name() string         { return "avx2" }
func (avx2Target) Level() DispatchLevel { return DispatchAVX2 }
func (avx2Target) RegisterBytes() int   { return 32 }
func (avx2Target) Emulated() bool       { return true }

func (avx2Target) zipLo(a, b raw, g, w int) raw {
	return compose2(a, b, w, func(x, y reg256) reg256 { return vpunpckl256(x, y, g) })
}

func (avx2Target) zipHi(a, b raw, g, w int) raw {
	return compose2(a, b, w, func(x, y reg256) reg256 { return vpunpckh256(x, y, g) })
}

func (avx2Target) unzipLo(a, b raw, g, w int) raw {
	return compose2(a, b, w, avx2Unzip(g, 0))
}

func (avx2Target) unzipHi(a, b raw, g, w int) raw {
	return compose2(a, b, w, avx2Unzip(g, 1))
}

func avx2Unzip(g, phase int) func(x, y reg256) reg256 {
	if g == 8 {
		if phase == 0 {
			return func(x, y reg256) reg256 { return vpunpckl256(x, y, 8) }
		}
		return func(x, y reg256) reg256 { return vpunpckh256(x, y, 8) }
	}
	m := vbroadcasti128(compactMasks[log2Size(g)][phase])
	return func(x, y reg256) reg256 {
		return vpunpckl256(vpshufb256(x, m), vpshufb256(y, m), 8)
	}
}

func (avx2Target) shuffleBytes(a, b raw, m ShuffleMask, w int) raw {
	ma, mb := splitMask(m)
	va, vb := vbroadcasti128(ma), vbroadcasti128(mb)
	if mb == allZeroMask {
		return compose1(a, w, func(x reg256) reg256 { return vpshufb256(x, va) })
	}
	return compose2(a, b, w, func(x, y reg256) reg256 {
		return vpor256(vpshufb256(x, va), vpshufb256(y, vb))
	})
}

// blend is a bit select (vpand/vpandn/vpor). vpblendvb only looks at the
// top bit of each byte and would differ for masks that are not lane-uniform.
func (avx2Target) blend(on, off, m raw, w int) raw {
	return compose3(on, off, m, w, func(x, y, k reg256) reg256 {
		return vpor256(vpand256(x, k), vpandn256(k, y))
	})
}

func (avx2Target) alignBlocks(lo, hi raw, n, w int) raw {
	return compose2(lo, hi, w, func(x, y reg256) reg256 { return vpalignr256(y, x, n) })
}

func (avx2Target) reverseGroups(a raw, gb, es, w int) raw {
	m := vbroadcasti128(reverseMask(gb, es))
	return compose1(a, w, func(x reg256) reg256 { return vpshufb256(x, m) })
}

func (avx2Target) broadcastGroups(a raw, lane, gb, es, w int) raw {
	m := vbroadcasti128(broadcastMask(lane, gb, es))
	return compose1(a, w, func(x reg256) reg256 { return vpshufb256(x, m) })
}

// lookupBytes broadcasts every source block to both lanes (vbroadcasti128)
// and ORs the vpshufb of each one that feeds the output register.
func (avx2Target) lookupBytes(a, b raw, idx [MaxBytes]byte, w int) raw {
	if w == BlockBytes {
		return ssse3Target{}.lookupBytes(a, b, idx, w)
	}
	var r raw
	nb := w / BlockBytes
	src := sourceBlocks(&a, &b, nb)
	for o := 0; o < nb; o += 2 {
		var acc reg256
		for _, s := range src[:2*nb] {
			m0, ok0 := lookupSubmask(&idx, o, s.id)
			m1, ok1 := lookupSubmask(&idx, o+1, s.id)
			if !ok0 && !ok1 {
				continue
			}
			var m reg256
			copy(m[:16], m0[:])
			copy(m[16:], m1[:])
			acc = vpor256(acc, vpshufb256(vbroadcasti128(s.reg), m))
		}
		storeReg(&r, o*BlockBytes, acc)
	}
	return r
}

// permuteBlocks is one vperm2i128 per output register, reading the two
// registers that hold the selected blocks.
func (avx2Target) permuteBlocks(a, b raw, sel [4]int8, w int) raw {
	if w == BlockBytes {
		return moveBlocks(a, b, sel, w)
	}
	var r raw
	for o := 0; o < w/BlockBytes; o += 2 {
		s0, s1 := int(sel[o]), int(sel[o+1])
		x := avx2BlockReg(&a, &b, s0)
		y := avx2BlockReg(&a, &b, s1)
		imm := avx2LaneCtl(s0, 0) | avx2LaneCtl(s1, 2)<<4
		storeReg(&r, o*BlockBytes, vperm2i128(x, y, imm))
	}
	return r
}

// avx2BlockReg returns the ymm register holding block s of a‖b.
func avx2BlockReg(a, b *raw, s int) reg256 {
	switch {
	case s < 0:
		return reg256{}
	case s < 4:
		return loadReg[reg256](a, s/2*32)
	default:
		return loadReg[reg256](b, (s-4)/2*32)
	}
}

// avx2LaneCtl is the vperm2i128 nibble that picks block s from the operand
// whose lanes are numbered from base.
func avx2LaneCtl(s, base int) uint8 {
	if s < 0 {
		return 8
	}
	return uint8(base + s&1)
}

// alignWide rotates register pairs: vperm2i128 forms the middle register
// and vpalignr finishes inside each lane.
func (avx2Target) alignWide(lo, hi raw, n, w int) raw {
	if w == BlockBytes {
		return alignChain(lo, hi, n, w, palignr)
	}
	var regs [5]reg256
	nr := w / 32
	for i := range nr {
		regs[i] = loadReg[reg256](&lo, i*32)
		regs[nr+i] = loadReg[reg256](&hi, i*32)
	}
	q, rem := n/32, n%32
	var r raw
	for j := range nr {
		storeReg(&r, j*32, align256(regs[j+q], regs[j+q+1], rem))
	}
	return r
}

// align256 returns bytes n..n+31 of x‖y, 0 <= n < 32.
func align256(x, y reg256, n int) reg256 {
	t := vperm2i128(x, y, 0x21)
	if n < 16 {
		return vpalignr256(t, x, n)
	}
	return vpalignr256(y, t, n-16)
}
