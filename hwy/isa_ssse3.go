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
	register(ssse3Target{}, 20)
}

// ssse3Target uses 128-bit SSE2/SSSE3 instructions. Wider vectors are
// sequences of xmm registers.
type ssse3Target struct{}

func (ssse3Target) Name() string         { return "ssse3" }
func (ssse3Target) Level() DispatchLevel { return DispatchSSSE3 }
func (ssse3Target) RegisterBytes() int   { return 16 }
func (ssse3Target) Emulated() bool       { return true }

// compactMasks[log2(g)][phase] gathers the even (phase 0) or odd (phase 1)
// g-byte units of a register into its low half.
var compactMasks = func() (m [4][2]ShuffleMask) {
	for i, g := range []int{1, 2, 4, 8} {
		m[i][0] = compactMask(g, false)
		m[i][1] = compactMask(g, true)
	}
	return m
}()

func (ssse3Target) zipLo(a, b raw, g, w int) raw {
	return compose2(a, b, w, func(x, y reg128) reg128 { return punpckl(x, y, g) })
}

func (ssse3Target) zipHi(a, b raw, g, w int) raw {
	return compose2(a, b, w, func(x, y reg128) reg128 { return punpckh(x, y, g) })
}

func (ssse3Target) unzipLo(a, b raw, g, w int) raw {
	return compose2(a, b, w, ssse3Unzip(g, 0))
}

func (ssse3Target) unzipHi(a, b raw, g, w int) raw {
	return compose2(a, b, w, ssse3Unzip(g, 1))
}

// ssse3Unzip compacts each operand with pshufb and joins the halves with
// punpcklqdq. Quadword units need only the unpack.
func ssse3Unzip(g, phase int) func(x, y reg128) reg128 {
	if g == 8 {
		if phase == 0 {
			return func(x, y reg128) reg128 { return punpckl(x, y, 8) }
		}
		return func(x, y reg128) reg128 { return punpckh(x, y, 8) }
	}
	m := compactMasks[log2Size(g)][phase]
	return func(x, y reg128) reg128 {
		return punpckl(pshufb(x, m), pshufb(y, m), 8)
	}
}

// shuffleBytes needs one pshufb per source; a mask that reads only one
// source costs a single pshufb.
func (ssse3Target) shuffleBytes(a, b raw, m ShuffleMask, w int) raw {
	ma, mb := splitMask(m)
	if mb == allZeroMask {
		return compose1(a, w, func(x reg128) reg128 { return pshufb(x, ma) })
	}
	if ma == allZeroMask {
		return compose1(b, w, func(x reg128) reg128 { return pshufb(x, mb) })
	}
	return compose2(a, b, w, func(x, y reg128) reg128 {
		return por(pshufb(x, ma), pshufb(y, mb))
	})
}

// blend is a bit select; pblendvb is SSE4.1.
func (ssse3Target) blend(on, off, m raw, w int) raw {
	return compose3(on, off, m, w, func(x, y, k reg128) reg128 {
		return por(pand(x, k), pandn(k, y))
	})
}

func (ssse3Target) alignBlocks(lo, hi raw, n, w int) raw {
	return compose2(lo, hi, w, func(x, y reg128) reg128 { return palignr(y, x, n) })
}

func (ssse3Target) reverseGroups(a raw, gb, es, w int) raw {
	m := reverseMask(gb, es)
	return compose1(a, w, func(x reg128) reg128 { return pshufb(x, m) })
}

func (ssse3Target) broadcastGroups(a raw, lane, gb, es, w int) raw {
	m := broadcastMask(lane, gb, es)
	return compose1(a, w, func(x reg128) reg128 { return pshufb(x, m) })
}

// lookupBytes ORs one pshufb per source register that feeds each output
// register.
func (ssse3Target) lookupBytes(a, b raw, idx [MaxBytes]byte, w int) raw {
	var r raw
	nb := w / BlockBytes
	src := sourceBlocks(&a, &b, nb)
	for o := range nb {
		var acc reg128
		for _, s := range src[:2*nb] {
			if m, ok := lookupSubmask(&idx, o, s.id); ok {
				acc = por(acc, pshufb(s.reg, m))
			}
		}
		setBlock(&r, o, acc)
	}
	return r
}

// permuteBlocks is register renaming (movdqa) on a 128-bit target.
func (ssse3Target) permuteBlocks(a, b raw, sel [4]int8, w int) raw {
	return moveBlocks(a, b, sel, w)
}

func (ssse3Target) alignWide(lo, hi raw, n, w int) raw {
	return alignChain(lo, hi, n, w, palignr)
}

// Helpers shared by the 128-bit targets.

var allZeroMask = func() (m ShuffleMask) {
	for i := range m {
		m[i] = ZeroIndex
	}
	return m
}()

// sourceBlock is one 128-bit block of a‖b; id is its index in the
// lookup-table numbering (0..3 from a, 4..7 from b).
type sourceBlock struct {
	reg reg128
	id  int
}

func sourceBlocks(a, b *raw, nb int) (src [8]sourceBlock) {
	for i := range nb {
		src[i] = sourceBlock{reg: block(a, i), id: i}
		src[nb+i] = sourceBlock{reg: block(b, i), id: 4 + i}
	}
	return src
}

// lookupSubmask returns the control bytes of output block o that read block
// blk of a‖b, in-register indices, zeroing everything else.
func lookupSubmask(idx *[MaxBytes]byte, o, blk int) (reg128, bool) {
	var m reg128
	used := false
	for i := range m {
		c := idx[o*BlockBytes+i]
		if c&ZeroIndex == 0 && int(c>>4) == blk {
			m[i] = c & 15
			used = true
		} else {
			m[i] = ZeroIndex
		}
	}
	return m, used
}

// moveBlocks copies whole registers.
func moveBlocks(a, b raw, sel [4]int8, w int) raw {
	var r raw
	for i := range w / BlockBytes {
		switch s := int(sel[i]); {
		case s < 0:
		case s < 4:
			setBlock(&r, i, block(&a, s))
		default:
			setBlock(&r, i, block(&b, s-4))
		}
	}
	return r
}

// alignChain builds a whole-vector byte rotation from a two-register align
// instruction (palignr, ext): output register i is
// align(reg[i+q+1], reg[i+q], n%16) over the registers of lo then hi.
func alignChain(lo, hi raw, n, w int, align func(hi, lo reg128, n int) reg128) raw {
	var regs [8]reg128
	nb := w / BlockBytes
	for i := range nb {
		regs[i] = block(&lo, i)
		regs[nb+i] = block(&hi, i)
	}
	q, rem := n/BlockBytes, n%BlockBytes
	var r raw
	for i := range nb {
		if rem == 0 {
			setBlock(&r, i, regs[i+q])
			continue
		}
		setBlock(&r, i, align(regs[i+q+1], regs[i+q], rem))
	}
	return r
}
