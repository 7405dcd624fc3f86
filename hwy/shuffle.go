package hwy

import "fmt"

// This file provides the element reindexing operations. Each one states
// whether it is lane-local (acts on every 16-byte block independently) or
// lane-crossing (moves elements between blocks).

// applyPattern runs the compiled move of p for es-byte elements.
func applyPattern(t Target, a, b raw, p *compiledPattern, es, w int) raw {
	pl := &p.plan[log2Size(es)]
	if !pl.fits || p.g*es > w {
		panic(fmt.Sprintf("hwy: pattern group of %d %d-byte elements exceeds the %d-byte vector", p.g, es, w))
	}
	switch pl.kind {
	case KindIdentity:
		return a
	case KindSecond:
		return b
	case KindZero:
		return raw{}
	case KindBroadcast:
		return t.broadcastGroups(pick(a, b, pl.src), int(pl.lane), p.g*es, es, w)
	case KindReverse:
		return t.reverseGroups(pick(a, b, pl.src), p.g*es, es, w)
	case KindBlend:
		return t.blend(b, a, tileBlock(pl.pick, w), w)
	case KindZipLo:
		return t.zipLo(a, b, es, w)
	case KindZipHi:
		return t.zipHi(a, b, es, w)
	case KindCrossing:
		return t.lookupBytes(a, b, *pl.wide, w)
	default:
		return t.shuffleBytes(a, b, pl.mask, w)
	}
}

func pick(a, b raw, src int8) raw {
	if src == 0 {
		return a
	}
	return b
}

// tileBlock repeats a 16-byte pattern over w bytes.
func tileBlock(m [BlockBytes]byte, w int) raw {
	var r raw
	for off := 0; off < w; off += BlockBytes {
		copy(r.b[off:off+BlockBytes], m[:])
	}
	return r
}

// Permute reorders the elements of every group of v: within each group,
// element i of the result is element p[i] of v. Selectors G..2G-1 also read
// v (Permute(v, p) is Shuffle(v, v, p)); -1 gives zero.
//
// Lane-local when the group fits in 16 bytes, lane-crossing otherwise.
//
// Example with p = <1,0>: [10,20,30,40] -> [20,10,40,30]
func Permute[T Lanes](v Vec[T], p Pattern) Vec[T] {
	return permute(current, v, p)
}

func permute[T Lanes](t Target, v Vec[T], p Pattern) Vec[T] {
	return makeVec[T](applyPattern(t, v.r, v.r, p.c, sizeOf[T](), int(v.n)), int(v.n))
}

// Shuffle selects, within each group, element p[i] of a (p[i] < G) or
// element p[i]-G of b (p[i] >= G), or zero (p[i] == -1).
//
// Lane-local when the group fits in 16 bytes, lane-crossing otherwise.
func Shuffle[T Lanes](a, b Vec[T], p Pattern) Vec[T] {
	return shuffle(current, a, b, p)
}

func shuffle[T Lanes](t Target, a, b Vec[T], p Pattern) Vec[T] {
	sameWidth(int(a.n), int(b.n))
	return makeVec[T](applyPattern(t, a.r, b.r, p.c, sizeOf[T](), int(a.n)), int(a.n))
}

// Permute2 reorders every pair: [v[s0], v[s1]].
func Permute2[T Lanes](v Vec[T], s0, s1 int) Vec[T] {
	return permute(current, v, permute2Table[sel2(s0, s1)])
}

// Permute4 reorders every group of four: [v[s0], v[s1], v[s2], v[s3]].
// It is lane-crossing for 8-byte elements.
func Permute4[T Lanes](v Vec[T], s Sel4) Vec[T] {
	return permute(current, v, permute4Table[s])
}

// Shuffle1 builds every pair from a and b: [a[s0], b[s1]], s0, s1 in [0, 2).
func Shuffle1[T Lanes](a, b Vec[T], s0, s1 int) Vec[T] {
	return shuffle(current, a, b, shuffle1Table[sel2(s0, s1)])
}

// Shuffle2 builds every group of four from a and b:
// [a[s0], a[s1], b[s2], b[s3]]. It is lane-crossing for 8-byte elements.
func Shuffle2[T Lanes](a, b Vec[T], s Sel4) Vec[T] {
	return shuffle(current, a, b, shuffle2Table[s])
}

func sel2(s0, s1 int) int {
	if s0 < 0 || s0 > 1 || s1 < 0 || s1 > 1 {
		panic(fmt.Sprintf("hwy: pair selectors <%d,%d> out of range [0, 2)", s0, s1))
	}
	return s0 | s1<<1
}

// Broadcast copies element lane of every 16-byte block to the whole block.
// Lane-local; lane must be less than the number of elements in a block.
func Broadcast[T Lanes](v Vec[T], lane int) Vec[T] {
	return broadcast(current, v, lane)
}

func broadcast[T Lanes](t Target, v Vec[T], lane int) Vec[T] {
	es := sizeOf[T]()
	if lane < 0 || lane >= BlockBytes/es {
		panic(fmt.Sprintf("hwy: Broadcast lane %d out of range for a %d-element block", lane, BlockBytes/es))
	}
	return makeVec[T](t.broadcastGroups(v.r, lane, BlockBytes, es, int(v.n)), int(v.n))
}

// Splat copies element lane of v to every element. Lane-crossing.
func Splat[T Lanes](v Vec[T], lane int) Vec[T] {
	return splat(current, v, lane)
}

func splat[T Lanes](t Target, v Vec[T], lane int) Vec[T] {
	es, w := sizeOf[T](), int(v.n)
	if lane < 0 || lane >= w/es {
		panic(fmt.Sprintf("hwy: Splat lane %d out of range for %d lanes", lane, w/es))
	}
	var idx [MaxBytes]byte
	for i := range w {
		idx[i] = byte(lane*es + i%es)
	}
	return makeVec[T](t.lookupBytes(v.r, v.r, idx, w), w)
}

// MoveL shifts elements toward index 0 by n, filling the top with zeros:
// result[i] = v[i+n]. Lane-crossing.
func MoveL[T Lanes](v Vec[T], n int) Vec[T] {
	return moveL(current, v, n)
}

func moveL[T Lanes](t Target, v Vec[T], n int) Vec[T] {
	es, w := sizeOf[T](), int(v.n)
	checkShift(n, w/es)
	return makeVec[T](t.alignWide(v.r, raw{}, n*es, w), w)
}

// MoveR shifts elements away from index 0 by n, filling the bottom with
// zeros: result[i] = v[i-n]. Lane-crossing.
func MoveR[T Lanes](v Vec[T], n int) Vec[T] {
	return moveR(current, v, n)
}

func moveR[T Lanes](t Target, v Vec[T], n int) Vec[T] {
	es, w := sizeOf[T](), int(v.n)
	checkShift(n, w/es)
	return makeVec[T](t.alignWide(raw{}, v.r, w-n*es, w), w)
}

// Align returns elements n..n+L-1 of the concatenation lo‖hi, where L is
// the number of lanes. Align(lo, hi, 0) is lo and Align(lo, hi, L) is hi.
// Lane-crossing.
func Align[T Lanes](lo, hi Vec[T], n int) Vec[T] {
	return align(current, lo, hi, n)
}

func align[T Lanes](t Target, lo, hi Vec[T], n int) Vec[T] {
	sameWidth(int(lo.n), int(hi.n))
	es, w := sizeOf[T](), int(lo.n)
	checkShift(n, w/es)
	return makeVec[T](t.alignWide(lo.r, hi.r, n*es, w), w)
}

func checkShift(n, lanes int) {
	if n < 0 || n > lanes {
		panic(fmt.Sprintf("hwy: shift %d out of range [0, %d]", n, lanes))
	}
}

// AlignBlocks is Align applied to each 16-byte block independently:
// block j of the result holds elements n.. of block j of lo followed by
// block j of hi. Lane-local (palignr, ext).
func AlignBlocks[T Lanes](lo, hi Vec[T], n int) Vec[T] {
	return alignBlocks(current, lo, hi, n)
}

func alignBlocks[T Lanes](t Target, lo, hi Vec[T], n int) Vec[T] {
	sameWidth(int(lo.n), int(hi.n))
	es := sizeOf[T]()
	checkShift(n, BlockBytes/es)
	return makeVec[T](t.alignBlocks(lo.r, hi.r, n*es, int(lo.n)), int(lo.n))
}

// Blend returns on where m is set and off elsewhere. Lane-local.
func Blend[T Lanes](on, off Vec[T], m Mask[T]) Vec[T] {
	return blend(current, on, off, m)
}

func blend[T Lanes](t Target, on, off Vec[T], m Mask[T]) Vec[T] {
	sameWidth(int(on.n), int(off.n))
	sameWidth(int(on.n), int(m.n))
	return makeVec[T](t.blend(on.r, off.r, m.r, int(on.n)), int(on.n))
}

// ShuffleBytes reindexes the bytes of every block from the same block of a
// and b using m. Lane-local.
func ShuffleBytes[T Lanes](a, b Vec[T], m ShuffleMask) Vec[T] {
	return shuffleBytes(current, a, b, m)
}

func shuffleBytes[T Lanes](t Target, a, b Vec[T], m ShuffleMask) Vec[T] {
	sameWidth(int(a.n), int(b.n))
	return makeVec[T](t.shuffleBytes(a.r, b.r, m, int(a.n)), int(a.n))
}

// PermuteBytes reindexes the bytes of every block of v using m; indices
// 16..31 also read v. Lane-local.
func PermuteBytes[T Lanes](v Vec[T], m ShuffleMask) Vec[T] {
	return shuffleBytes(current, v, v, m)
}

// Reverse reverses the order of lanes in the vector. Lane-crossing.
// [0,1,2,3,4,5,6,7] -> [7,6,5,4,3,2,1,0]
func Reverse[T Lanes](v Vec[T]) Vec[T] {
	return reverse(current, v)
}

func reverse[T Lanes](t Target, v Vec[T]) Vec[T] {
	es, w := sizeOf[T](), int(v.n)
	if w == BlockBytes {
		return makeVec[T](t.reverseGroups(v.r, w, es, w), w)
	}
	var idx [MaxBytes]byte
	n := w / es
	for i := range n {
		for k := range es {
			idx[i*es+k] = byte((n-1-i)*es + k)
		}
	}
	return makeVec[T](t.lookupBytes(v.r, v.r, idx, w), w)
}

var (
	reverse2Pattern = MustPattern(1, 0)
	reverse4Pattern = MustPattern(3, 2, 1, 0)
	reverse8Pattern = MustPattern(7, 6, 5, 4, 3, 2, 1, 0)
	dupEvenPattern  = MustPattern(0, 0)
	dupOddPattern   = MustPattern(1, 1)
	oddEvenPattern  = MustPattern(2, 1)
)

// Reverse2 reverses pairs of lanes.
// [0,1,2,3,4,5,6,7] -> [1,0,3,2,5,4,7,6]
func Reverse2[T Lanes](v Vec[T]) Vec[T] {
	return permute(current, v, reverse2Pattern)
}

// Reverse4 reverses groups of 4 lanes.
// [0,1,2,3,4,5,6,7] -> [3,2,1,0,7,6,5,4]
func Reverse4[T Lanes](v Vec[T]) Vec[T] {
	return permute(current, v, reverse4Pattern)
}

// Reverse8 reverses groups of 8 lanes.
// [0,1,2,3,4,5,6,7,8,9,10,11,12,13,14,15] -> [7,6,5,4,3,2,1,0,15,14,13,12,11,10,9,8]
func Reverse8[T Lanes](v Vec[T]) Vec[T] {
	return permute(current, v, reverse8Pattern)
}

// DupEven duplicates even lanes.
// [a0,a1,a2,a3] -> [a0,a0,a2,a2]
func DupEven[T Lanes](v Vec[T]) Vec[T] {
	return permute(current, v, dupEvenPattern)
}

// DupOdd duplicates odd lanes.
// [a0,a1,a2,a3] -> [a1,a1,a3,a3]
func DupOdd[T Lanes](v Vec[T]) Vec[T] {
	return permute(current, v, dupOddPattern)
}

// OddEven combines odd lanes from a with even lanes from b.
// [a0,a1,a2,a3], [b0,b1,b2,b3] -> [b0,a1,b2,a3]
func OddEven[T Lanes](a, b Vec[T]) Vec[T] {
	return shuffle(current, a, b, oddEvenPattern)
}

// TableLookupBytes selects byte idx[i] of tbl for every byte i; indices at
// or beyond the vector width give zero. Lane-crossing.
func TableLookupBytes[T Lanes](tbl Vec[T], idx Vec[uint8]) Vec[T] {
	return tableLookupBytes(current, tbl, idx)
}

func tableLookupBytes[T Lanes](t Target, tbl Vec[T], idx Vec[uint8]) Vec[T] {
	sameWidth(int(tbl.n), int(idx.n))
	w := int(tbl.n)
	var ix [MaxBytes]byte
	for i := range w {
		ix[i] = ZeroIndex
		if c := idx.r.b[i]; int(c) < w {
			ix[i] = c
		}
	}
	return makeVec[T](t.lookupBytes(tbl.r, tbl.r, ix, w), w)
}

// TableLookupLanes selects lane idx[i] of tbl for every lane i; negative or
// out-of-range indices give zero. idx must have as many lanes as tbl.
// Lane-crossing.
func TableLookupLanes[T Lanes, I Integers](tbl Vec[T], idx Vec[I]) Vec[T] {
	return tableLookupLanes(current, tbl, idx)
}

func tableLookupLanes[T Lanes, I Integers](t Target, tbl Vec[T], idx Vec[I]) Vec[T] {
	es, w := sizeOf[T](), int(tbl.n)
	n := w / es
	if idx.NumLanes() != n {
		panic("hwy: TableLookupLanes index lane count differs from table")
	}
	var ix [MaxBytes]byte
	for i := range n {
		s := int64(idx.Lane(i))
		for k := range es {
			ix[i*es+k] = ZeroIndex
			if s >= 0 && s < int64(n) {
				ix[i*es+k] = byte(int(s)*es + k)
			}
		}
	}
	return makeVec[T](t.lookupBytes(tbl.r, tbl.r, ix, w), w)
}

// Block permutes. For 16-byte vectors the halves are 8-byte quadwords and
// the moves are lane-local; wider vectors move whole blocks.

var (
	concatLLPattern = MustPattern(0, 2)
	concatUUPattern = MustPattern(1, 3)
	concatLUPattern = MustPattern(0, 3)
	concatULPattern = MustPattern(1, 2)
)

// ConcatLowerLower concatenates the lower halves of two vectors.
// [a0,a1,a2,a3], [b0,b1,b2,b3] -> [a0,a1,b0,b1]
func ConcatLowerLower[T Lanes](a, b Vec[T]) Vec[T] {
	return concatHalves(current, a, b, concatLLPattern, false, false)
}

// ConcatUpperUpper concatenates the upper halves of two vectors.
// [a0,a1,a2,a3], [b0,b1,b2,b3] -> [a2,a3,b2,b3]
func ConcatUpperUpper[T Lanes](a, b Vec[T]) Vec[T] {
	return concatHalves(current, a, b, concatUUPattern, true, true)
}

// ConcatLowerUpper concatenates lower half of a with upper half of b.
// [a0,a1,a2,a3], [b0,b1,b2,b3] -> [a0,a1,b2,b3]
func ConcatLowerUpper[T Lanes](a, b Vec[T]) Vec[T] {
	return concatHalves(current, a, b, concatLUPattern, false, true)
}

// ConcatUpperLower concatenates upper half of a with lower half of b.
// [a0,a1,a2,a3], [b0,b1,b2,b3] -> [a2,a3,b0,b1]
func ConcatUpperLower[T Lanes](a, b Vec[T]) Vec[T] {
	return concatHalves(current, a, b, concatULPattern, true, false)
}

func concatHalves[T Lanes](t Target, a, b Vec[T], quads Pattern, upperA, upperB bool) Vec[T] {
	sameWidth(int(a.n), int(b.n))
	w := int(a.n)
	if w == BlockBytes {
		return makeVec[T](applyPattern(t, a.r, b.r, quads.c, 8, w), w)
	}
	half := w / BlockBytes / 2
	var sel [4]int8
	for i := range half {
		sel[i] = int8(i)
		if upperA {
			sel[i] += int8(half)
		}
		sel[half+i] = int8(4 + i)
		if upperB {
			sel[half+i] += int8(half)
		}
	}
	return makeVec[T](t.permuteBlocks(a.r, b.r, sel, w), w)
}

// SwapAdjacentBlocks swaps adjacent 128-bit blocks.
// For 256-bit vectors this swaps the two halves; 128-bit vectors are
// returned unchanged. Lane-crossing.
func SwapAdjacentBlocks[T Lanes](v Vec[T]) Vec[T] {
	return swapAdjacentBlocks(current, v)
}

func swapAdjacentBlocks[T Lanes](t Target, v Vec[T]) Vec[T] {
	w := int(v.n)
	if w == BlockBytes {
		return v
	}
	return makeVec[T](t.permuteBlocks(v.r, v.r, [4]int8{1, 0, 3, 2}, w), w)
}
