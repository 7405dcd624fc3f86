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

// AArch64 Advanced SIMD semantics over 128-bit register images, named after
// the ACLE intrinsics.

// vzip1q interleaves the low halves of a and b in g-byte units.
func vzip1q(a, b reg128, g int) reg128 {
	return unpack128(a, b, g, 0)
}

// vzip2q interleaves the high halves of a and b in g-byte units.
func vzip2q(a, b reg128, g int) reg128 {
	return unpack128(a, b, g, 8)
}

// vuzp1q returns the even g-byte units of the concatenation a‖b.
func vuzp1q(a, b reg128, g int) reg128 {
	return uzp(a, b, g, 0)
}

// vuzp2q returns the odd g-byte units of the concatenation a‖b.
func vuzp2q(a, b reg128, g int) reg128 {
	return uzp(a, b, g, 1)
}

func uzp(a, b reg128, g, phase int) reg128 {
	var r reg128
	for i := 0; i < 8; i += g {
		src := 2*i + phase*g
		copy(r[i:i+g], a[src:src+g])
		copy(r[8+i:8+i+g], b[src:src+g])
	}
	return r
}

// vqtbl1q: byte i = t[idx[i]], zero when idx[i] >= 16.
func vqtbl1q(t, idx reg128) reg128 {
	var r reg128
	for i, c := range idx {
		if c < 16 {
			r[i] = t[c]
		}
	}
	return r
}

// vqtbl2q looks up the 32-byte table t0‖t1.
func vqtbl2q(t0, t1, idx reg128) reg128 {
	var r reg128
	for i, c := range idx {
		switch {
		case c < 16:
			r[i] = t0[c]
		case c < 32:
			r[i] = t1[c-16]
		}
	}
	return r
}

// vqtblnq looks up a table of len(t) registers (tbl with 1 to 4 registers).
func vqtblnq(t []reg128, idx reg128) reg128 {
	var r reg128
	for i, c := range idx {
		if int(c) < 16*len(t) {
			r[i] = t[c/16][c%16]
		}
	}
	return r
}

// vqtbxnq is vqtblnq that keeps d where the index is out of range.
func vqtbxnq(d reg128, t []reg128, idx reg128) reg128 {
	for i, c := range idx {
		if int(c) < 16*len(t) {
			d[i] = t[c/16][c%16]
		}
	}
	return d
}

// vsubqU8 (vsubq_u8 with a broadcast operand) subtracts x from every byte, wrapping.
func vsubqU8(a reg128, x byte) reg128 {
	for i := range a {
		a[i] -= x
	}
	return a
}

// vextq: bytes n..n+15 of lo‖hi, 0 <= n <= 15.
func vextq(lo, hi reg128, n int) reg128 {
	var r reg128
	copy(r[:], lo[n:])
	copy(r[16-n:], hi[:n])
	return r
}

// vbslq: bitwise select, (m & on) | (^m & off).
func vbslq(m, on, off reg128) reg128 {
	var r reg128
	for i := range r {
		r[i] = m[i]&on[i] | ^m[i]&off[i]
	}
	return r
}

// vrevq reverses the es-byte elements inside every gb-byte container
// (rev16, rev32, rev64 for gb = 2, 4, 8).
func vrevq(a reg128, gb, es int) reg128 {
	var r reg128
	n := gb / es
	for base := 0; base < 16; base += gb {
		for i := range n {
			copy(r[base+i*es:base+(i+1)*es], a[base+(n-1-i)*es:])
		}
	}
	return r
}

// vdupqLaneq broadcasts element lane to the whole register.
func vdupqLaneq(a reg128, lane, es int) reg128 {
	var r reg128
	for i := 0; i < 16; i += es {
		copy(r[i:i+es], a[lane*es:])
	}
	return r
}
