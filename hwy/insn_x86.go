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

// x86 instruction semantics over register images, named after the
// instructions. The 256- and 512-bit forms of in-lane instructions apply the
// 128-bit form to each 128-bit lane.

// pshufb: byte i = a[m[i]&15], or zero when m[i] has its top bit set.
func pshufb(a, m reg128) reg128 {
	var r reg128
	for i, c := range m {
		if c&0x80 == 0 {
			r[i] = a[c&15]
		}
	}
	return r
}

// punpckl interleaves the low 8 bytes of a and b in g-byte units
// (punpcklbw, punpcklwd, punpckldq, punpcklqdq for g = 1, 2, 4, 8).
func punpckl(a, b reg128, g int) reg128 {
	return unpack128(a, b, g, 0)
}

// punpckh interleaves the high 8 bytes of a and b in g-byte units.
func punpckh(a, b reg128, g int) reg128 {
	return unpack128(a, b, g, 8)
}

func unpack128(a, b reg128, g, off int) reg128 {
	var r reg128
	for i := 0; i < 8; i += g {
		copy(r[2*i:2*i+g], a[off+i:off+i+g])
		copy(r[2*i+g:2*i+2*g], b[off+i:off+i+g])
	}
	return r
}

// palignr: bytes n..n+15 of the 32-byte concatenation hi:lo (lo first).
func palignr(hi, lo reg128, n int) reg128 {
	var r reg128
	for i := range r {
		switch j := i + n; {
		case j < 16:
			r[i] = lo[j]
		case j < 32:
			r[i] = hi[j-16]
		}
	}
	return r
}

func pand(a, b reg128) reg128 {
	for i := range a {
		a[i] &= b[i]
	}
	return a
}

// pandn returns ^a & b.
func pandn(a, b reg128) reg128 {
	for i := range a {
		a[i] = ^a[i] & b[i]
	}
	return a
}

func por(a, b reg128) reg128 {
	for i := range a {
		a[i] |= b[i]
	}
	return a
}

// lanes2 applies a 128-bit instruction to both lanes of 256-bit operands.
func lanes2(a, b reg256, f func(x, y reg128) reg128) reg256 {
	var r reg256
	for l := 0; l < 32; l += 16 {
		r2 := f(reg128(a[l:l+16]), reg128(b[l:l+16]))
		copy(r[l:], r2[:])
	}
	return r
}

func vpshufb256(a, m reg256) reg256 {
	return lanes2(a, m, pshufb)
}

func vpunpckl256(a, b reg256, g int) reg256 {
	return lanes2(a, b, func(x, y reg128) reg128 { return punpckl(x, y, g) })
}

func vpunpckh256(a, b reg256, g int) reg256 {
	return lanes2(a, b, func(x, y reg128) reg128 { return punpckh(x, y, g) })
}

// vpalignr256 is palignr per 128-bit lane.
func vpalignr256(hi, lo reg256, n int) reg256 {
	return lanes2(hi, lo, func(x, y reg128) reg128 { return palignr(x, y, n) })
}

func vpor256(a, b reg256) reg256 {
	return lanes2(a, b, por)
}

func vpand256(a, b reg256) reg256 {
	return lanes2(a, b, pand)
}

func vpandn256(a, b reg256) reg256 {
	return lanes2(a, b, pandn)
}

// vbroadcasti128 copies a 128-bit value to both lanes.
func vbroadcasti128(x reg128) reg256 {
	var r reg256
	copy(r[:16], x[:])
	copy(r[16:], x[:])
	return r
}

// vperm2i128 selects each 128-bit lane of the result from a.lo, a.hi, b.lo,
// b.hi (imm nibble 0..3); bit 3 of a nibble zeroes the lane.
func vperm2i128(a, b reg256, imm uint8) reg256 {
	var r reg256
	src := [4]reg128{reg128(a[:16]), reg128(a[16:]), reg128(b[:16]), reg128(b[16:])}
	for l := range 2 {
		ctl := imm >> (4 * l) & 0xF
		if ctl&8 == 0 {
			copy(r[16*l:], src[ctl&3][:])
		}
	}
	return r
}

// lanes4 applies a 128-bit instruction to the four lanes of 512-bit operands.
func lanes4(a, b reg512, f func(x, y reg128) reg128) reg512 {
	var r reg512
	for l := 0; l < 64; l += 16 {
		r2 := f(reg128(a[l:l+16]), reg128(b[l:l+16]))
		copy(r[l:], r2[:])
	}
	return r
}

func vpshufb512(a, m reg512) reg512 {
	return lanes4(a, m, pshufb)
}

func vpunpckl512(a, b reg512, g int) reg512 {
	return lanes4(a, b, func(x, y reg128) reg128 { return punpckl(x, y, g) })
}

func vpunpckh512(a, b reg512, g int) reg512 {
	return lanes4(a, b, func(x, y reg128) reg128 { return punpckh(x, y, g) })
}

func vpalignr512(hi, lo reg512, n int) reg512 {
	return lanes4(hi, lo, func(x, y reg128) reg128 { return palignr(x, y, n) })
}

func vpord512(a, b reg512) reg512 {
	for i := range a {
		a[i] |= b[i]
	}
	return a
}

// vpternlogSelect is vpternlogq with imm 0xCA: (m & a) | (^m & b).
func vpternlogSelect(m, a, b reg512) reg512 {
	var r reg512
	for i := range r {
		r[i] = m[i]&a[i] | ^m[i]&b[i]
	}
	return r
}

// vbroadcasti32x4 copies a 128-bit value to all four lanes.
func vbroadcasti32x4(x reg128) reg512 {
	var r reg512
	for l := 0; l < 64; l += 16 {
		copy(r[l:], x[:])
	}
	return r
}

// vpermi2b indexes the 2·vl-byte table a‖b, where vl is the vector length
// (16, 32 or 64 with AVX512VL). Only the low log2(2·vl) index bits are used.
// Bytes whose bit in k is clear are zeroed ({z} masking).
func vpermi2b(idx, a, b reg512, k uint64, vl int) reg512 {
	var r reg512
	for i := range vl {
		if k>>i&1 == 0 {
			continue
		}
		j := int(idx[i]) & (2*vl - 1)
		if j < vl {
			r[i] = a[j]
		} else {
			r[i] = b[j-vl]
		}
	}
	return r
}

// vpermi2q is vpermi2b at quadword granularity with a zeroing mask.
func vpermi2q(idx [8]uint8, a, b reg512, k uint8, vl int) reg512 {
	var r reg512
	n := vl / 8
	for i := range n {
		if k>>i&1 == 0 {
			continue
		}
		j := int(idx[i]) & (2*n - 1)
		if j < n {
			copy(r[8*i:8*i+8], a[8*j:])
		} else {
			copy(r[8*i:8*i+8], b[8*(j-n):])
		}
	}
	return r
}

// vpmovb2m collects the top bit of every byte into a mask register.
func vpmovb2m(a reg512) uint64 {
	var k uint64
	for i, c := range a {
		k |= uint64(c>>7) << i
	}
	return k
}
