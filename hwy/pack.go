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

// Structured interleave of N streams (N = 2, 3, 4, 6).
//
// MemPackN takes N vectors, one stream each, and returns the N vectors
// whose concatenation is the interleaved memory image: element i of stream
// j lands at element N*i+j. MemUnpackN is the inverse.
//
// Every network first works per 16-byte block, so that block k of each
// intermediate holds the interleave of block k of the inputs, and then
// realigns whole blocks into memory order. Only the realignment is
// lane-crossing, and it is skipped for 16-byte vectors.

// realign moves per-block results into memory order. Block k of ys[j] is
// memory block N*k+j; block b of xs[i] becomes memory block i*nb+b.
func realign(t Target, ys, xs []raw, w int) {
	n, nb := len(ys), w/BlockBytes
	if nb == 1 {
		copy(xs, ys)
		return
	}
	for i := range xs {
		var vec, blk [4]int
		for b := range nb {
			m := i*nb + b
			vec[b], blk[b] = m%n, m/n
		}
		xs[i] = gatherBlocks(t, ys, vec, blk, w)
	}
}

// unrealign is the inverse of realign.
func unrealign(t Target, xs, ys []raw, w int) {
	n, nb := len(xs), w/BlockBytes
	if nb == 1 {
		copy(ys, xs)
		return
	}
	for j := range ys {
		var vec, blk [4]int
		for k := range nb {
			m := n*k + j
			vec[k], blk[k] = m/nb, m%nb
		}
		ys[j] = gatherBlocks(t, xs, vec, blk, w)
	}
}

// gatherBlocks returns the vector whose block i is block blk[i] of
// src[vec[i]]. permuteBlocks reads two vectors, so sources beyond the
// second are merged into the partial result one at a time.
func gatherBlocks(t Target, src []raw, vec, blk [4]int, w int) raw {
	nb := w / BlockBytes
	var order [4]int
	used := 0
	for i := range nb {
		seen := false
		for _, u := range order[:used] {
			seen = seen || u == vec[i]
		}
		if !seen {
			order[used] = vec[i]
			used++
		}
	}
	var sel [4]int8
	second := raw{}
	if used > 1 {
		second = src[order[1]]
	}
	for i := range nb {
		switch vec[i] {
		case order[0]:
			sel[i] = int8(blk[i])
		case order[min(1, used-1)]:
			sel[i] = int8(4 + blk[i])
		default:
			sel[i] = -1
		}
	}
	acc := t.permuteBlocks(src[order[0]], second, sel, w)
	for _, u := range order[2:used] {
		for i := range nb {
			switch {
			case vec[i] == u:
				sel[i] = int8(4 + blk[i])
			case sel[i] >= 0:
				sel[i] = int8(i)
			}
		}
		acc = t.permuteBlocks(acc, src[u], sel, w)
	}
	return acc
}

// pack2 interleaves a and b in g-byte units. With g == 16 the zip step
// vanishes and only the block realignment is left.
func pack2(t Target, a, b raw, g, w int) (raw, raw) {
	ys := [2]raw{a, b}
	if g < BlockBytes {
		ys = [2]raw{t.zipLo(a, b, g, w), t.zipHi(a, b, g, w)}
	}
	var xs [2]raw
	realign(t, ys[:], xs[:], w)
	return xs[0], xs[1]
}

func unpack2(t Target, x0, x1 raw, g, w int) (raw, raw) {
	xs := [2]raw{x0, x1}
	var ys [2]raw
	unrealign(t, xs[:], ys[:], w)
	if g == BlockBytes {
		return ys[0], ys[1]
	}
	return t.unzipLo(ys[0], ys[1], g, w), t.unzipHi(ys[0], ys[1], g, w)
}

// pack4 is a two-level butterfly of pack2: pairs (0,1) and (2,3) at the
// element size, then the pair results at twice the element size.
func pack4(t Target, v0, v1, v2, v3 raw, es, w int) (o0, o1, o2, o3 raw) {
	p0, p1 := pack2(t, v0, v1, es, w)
	q0, q1 := pack2(t, v2, v3, es, w)
	o0, o1 = pack2(t, p0, q0, 2*es, w)
	o2, o3 = pack2(t, p1, q1, 2*es, w)
	return o0, o1, o2, o3
}

func unpack4(t Target, o0, o1, o2, o3 raw, es, w int) (v0, v1, v2, v3 raw) {
	p0, q0 := unpack2(t, o0, o1, 2*es, w)
	p1, q1 := unpack2(t, o2, o3, 2*es, w)
	v0, v1 = unpack2(t, p0, p1, es, w)
	v2, v3 = unpack2(t, q0, q1, es, w)
	return v0, v1, v2, v3
}

// The three-stream network. With n elements per block, block j of every
// per-block result holds memory elements jn..jn+n-1 of its 3n-element
// chunk, and memory element e comes from stream e%3. Each stream is first
// permuted so that its element i sits at position (3i+s) mod n (3 is
// invertible mod a power of two); after that every output element is found
// at its own position in one of the three permuted streams, chosen by
// (jn+q) mod 3, and two blends per block with period-3 masks finish it.
var (
	// pack3Perm[log2(es)][s] moves element i of stream s to (3i+s) mod n.
	pack3Perm [4][3]Pattern
	// unpack3Perm is the inverse of pack3Perm.
	unpack3Perm [4][3]Pattern
	// pack3Pick[log2(es)][j][s] marks the bytes of output block j that come
	// from stream s.
	pack3Pick [4][3][3][BlockBytes]byte
)

func init() {
	for l, es := range []int{1, 2, 4, 8} {
		n := BlockBytes / es
		inv3 := 1
		for inv3*3%n != 1%n {
			inv3++
		}
		for s := range 3 {
			fwd := make([]int, n)
			inv := make([]int, n)
			for p := range n {
				fwd[p] = ((p-s)%n + n) % n * inv3 % n
				inv[p] = (3*p + s) % n
			}
			pack3Perm[l][s] = MustPattern(fwd...)
			unpack3Perm[l][s] = MustPattern(inv...)
		}
		for j := range 3 {
			for q := range n {
				s := (j*n + q) % 3
				for k := range es {
					pack3Pick[l][j][s][q*es+k] = 0xFF
				}
			}
		}
	}
}

func pack3(t Target, v0, v1, v2 raw, es, w int) (raw, raw, raw) {
	l := log2Size(es)
	s0 := applyPattern(t, v0, v0, pack3Perm[l][0].c, es, w)
	s1 := applyPattern(t, v1, v1, pack3Perm[l][1].c, es, w)
	s2 := applyPattern(t, v2, v2, pack3Perm[l][2].c, es, w)
	var ys [3]raw
	for j := range 3 {
		pick := &pack3Pick[l][j]
		x := t.blend(s1, s0, tileBlock(pick[1], w), w)
		ys[j] = t.blend(s2, x, tileBlock(pick[2], w), w)
	}
	var xs [3]raw
	realign(t, ys[:], xs[:], w)
	return xs[0], xs[1], xs[2]
}

func unpack3(t Target, x0, x1, x2 raw, es, w int) (raw, raw, raw) {
	l := log2Size(es)
	xs := [3]raw{x0, x1, x2}
	var ys [3]raw
	unrealign(t, xs[:], ys[:], w)
	var vs [3]raw
	for s := range 3 {
		x := t.blend(ys[1], ys[0], tileBlock(pack3Pick[l][1][s], w), w)
		x = t.blend(ys[2], x, tileBlock(pack3Pick[l][2][s], w), w)
		vs[s] = applyPattern(t, x, x, unpack3Perm[l][s].c, es, w)
	}
	return vs[0], vs[1], vs[2]
}

// pack6 runs the three-stream network on the even and the odd streams and
// interleaves the two results pairwise, mirroring pack4.
func pack6(t Target, v [6]raw, es, w int) (o [6]raw) {
	x0, x1, x2 := pack3(t, v[0], v[2], v[4], es, w)
	y0, y1, y2 := pack3(t, v[1], v[3], v[5], es, w)
	o[0], o[1] = pack2(t, x0, y0, es, w)
	o[2], o[3] = pack2(t, x1, y1, es, w)
	o[4], o[5] = pack2(t, x2, y2, es, w)
	return o
}

func unpack6(t Target, o [6]raw, es, w int) (v [6]raw) {
	x0, y0 := unpack2(t, o[0], o[1], es, w)
	x1, y1 := unpack2(t, o[2], o[3], es, w)
	x2, y2 := unpack2(t, o[4], o[5], es, w)
	v[0], v[2], v[4] = unpack3(t, x0, x1, x2, es, w)
	v[1], v[3], v[5] = unpack3(t, y0, y1, y2, es, w)
	return v
}

// MemPack2 interleaves two streams: the result x0‖x1 is
// [a0,b0,a1,b1,...].
func MemPack2[T Lanes](a, b Vec[T]) (x0, x1 Vec[T]) {
	return memPack2(current, a, b)
}

func memPack2[T Lanes](t Target, a, b Vec[T]) (Vec[T], Vec[T]) {
	w := int(a.n)
	sameWidth(w, int(b.n))
	x0, x1 := pack2(t, a.r, b.r, sizeOf[T](), w)
	return makeVec[T](x0, w), makeVec[T](x1, w)
}

// MemUnpack2 splits the two-stream memory image x0‖x1 into its streams.
func MemUnpack2[T Lanes](x0, x1 Vec[T]) (a, b Vec[T]) {
	return memUnpack2(current, x0, x1)
}

func memUnpack2[T Lanes](t Target, x0, x1 Vec[T]) (Vec[T], Vec[T]) {
	w := int(x0.n)
	sameWidth(w, int(x1.n))
	a, b := unpack2(t, x0.r, x1.r, sizeOf[T](), w)
	return makeVec[T](a, w), makeVec[T](b, w)
}

// MemPack3 interleaves three streams: the result x0‖x1‖x2 is
// [a0,b0,c0,a1,b1,c1,...].
func MemPack3[T Lanes](a, b, c Vec[T]) (x0, x1, x2 Vec[T]) {
	return memPack3(current, a, b, c)
}

func memPack3[T Lanes](t Target, a, b, c Vec[T]) (Vec[T], Vec[T], Vec[T]) {
	w := int(a.n)
	sameWidth(w, int(b.n))
	sameWidth(w, int(c.n))
	x0, x1, x2 := pack3(t, a.r, b.r, c.r, sizeOf[T](), w)
	return makeVec[T](x0, w), makeVec[T](x1, w), makeVec[T](x2, w)
}

// MemUnpack3 splits the three-stream memory image x0‖x1‖x2 into its streams.
func MemUnpack3[T Lanes](x0, x1, x2 Vec[T]) (a, b, c Vec[T]) {
	return memUnpack3(current, x0, x1, x2)
}

func memUnpack3[T Lanes](t Target, x0, x1, x2 Vec[T]) (Vec[T], Vec[T], Vec[T]) {
	w := int(x0.n)
	sameWidth(w, int(x1.n))
	sameWidth(w, int(x2.n))
	a, b, c := unpack3(t, x0.r, x1.r, x2.r, sizeOf[T](), w)
	return makeVec[T](a, w), makeVec[T](b, w), makeVec[T](c, w)
}

// MemPack4 interleaves four streams: the result is [a0,b0,c0,d0,a1,...].
func MemPack4[T Lanes](a, b, c, d Vec[T]) (x0, x1, x2, x3 Vec[T]) {
	return memPack4(current, a, b, c, d)
}

func memPack4[T Lanes](t Target, a, b, c, d Vec[T]) (Vec[T], Vec[T], Vec[T], Vec[T]) {
	w := int(a.n)
	for _, n := range [3]uint8{b.n, c.n, d.n} {
		sameWidth(w, int(n))
	}
	x0, x1, x2, x3 := pack4(t, a.r, b.r, c.r, d.r, sizeOf[T](), w)
	return makeVec[T](x0, w), makeVec[T](x1, w), makeVec[T](x2, w), makeVec[T](x3, w)
}

// MemUnpack4 splits a four-stream memory image into its streams.
func MemUnpack4[T Lanes](x0, x1, x2, x3 Vec[T]) (a, b, c, d Vec[T]) {
	return memUnpack4(current, x0, x1, x2, x3)
}

func memUnpack4[T Lanes](t Target, x0, x1, x2, x3 Vec[T]) (Vec[T], Vec[T], Vec[T], Vec[T]) {
	w := int(x0.n)
	for _, n := range [3]uint8{x1.n, x2.n, x3.n} {
		sameWidth(w, int(n))
	}
	a, b, c, d := unpack4(t, x0.r, x1.r, x2.r, x3.r, sizeOf[T](), w)
	return makeVec[T](a, w), makeVec[T](b, w), makeVec[T](c, w), makeVec[T](d, w)
}

// MemPack6 interleaves six streams: the result is [v0[0],v1[0],...,v5[0],v0[1],...].
func MemPack6[T Lanes](v [6]Vec[T]) [6]Vec[T] {
	return memPack6(current, v)
}

func memPack6[T Lanes](t Target, v [6]Vec[T]) (out [6]Vec[T]) {
	w := int(v[0].n)
	var in [6]raw
	for i := range v {
		sameWidth(w, int(v[i].n))
		in[i] = v[i].r
	}
	o := pack6(t, in, sizeOf[T](), w)
	for i := range o {
		out[i] = makeVec[T](o[i], w)
	}
	return out
}

// MemUnpack6 splits a six-stream memory image into its streams.
func MemUnpack6[T Lanes](x [6]Vec[T]) [6]Vec[T] {
	return memUnpack6(current, x)
}

func memUnpack6[T Lanes](t Target, x [6]Vec[T]) (out [6]Vec[T]) {
	w := int(x[0].n)
	var in [6]raw
	for i := range x {
		sameWidth(w, int(x[i].n))
		in[i] = x[i].r
	}
	v := unpack6(t, in, sizeOf[T](), w)
	for i := range v {
		out[i] = makeVec[T](v[i], w)
	}
	return out
}
