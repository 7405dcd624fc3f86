package hwy

// This file provides the constructors and the memory operations. Loads read
// at most one vector of lanes and zero the rest; stores write at most
// len(dst) lanes.

// Load creates a vector of width d from the first lanes of src.
func Load[T Lanes](d Tag, src []T) Vec[T] {
	w := checkWidth(d.Width())
	v := Vec[T]{n: uint8(w)}
	copy(v.lanes(), src)
	return v
}

// LoadDup128 loads one 16-byte block from src and repeats it across a
// vector of width d.
func LoadDup128[T Lanes](d Tag, src []T) Vec[T] {
	v := Load[T](FixedTag128[T]{}, src)
	w := checkWidth(d.Width())
	return makeVec[T](tileBlock([BlockBytes]byte(v.r.b[:BlockBytes]), w), w)
}

// Store writes the lanes of v to dst.
func Store[T Lanes](v Vec[T], dst []T) {
	v.Store(dst)
}

// BlendedStore writes the lanes of v selected by m to dst and leaves the
// other elements of dst unchanged.
func BlendedStore[T Lanes](v Vec[T], m Mask[T], dst []T) {
	n := min(len(dst), v.NumLanes())
	for i := range n {
		if m.GetBit(i) {
			dst[i] = v.Lane(i)
		}
	}
}

// Zero returns the all-zero vector of width d.
func Zero[T Lanes](d Tag) Vec[T] {
	return Vec[T]{n: uint8(checkWidth(d.Width()))}
}

// Undefined returns a vector whose contents callers must not rely on. It is
// zero.
func Undefined[T Lanes](d Tag) Vec[T] {
	return Zero[T](d)
}

// Set returns a vector of width d with every lane set to x.
func Set[T Lanes](d Tag, x T) Vec[T] {
	v := Zero[T](d)
	lanes := v.lanes()
	for i := range lanes {
		lanes[i] = x
	}
	return v
}

// Iota returns [0, 1, 2, ...] of width d. Integer lanes wrap.
func Iota[T Lanes](d Tag) Vec[T] {
	v := Zero[T](d)
	lanes := v.lanes()
	for i := range lanes {
		lanes[i] = T(i)
	}
	return v
}

// BitCast reinterprets the bytes of v as lanes of type U. No data moves.
func BitCast[U, T Lanes](v Vec[T]) Vec[U] {
	return Vec[U]{r: v.r, n: v.n}
}

// loadN fills vs from consecutive vector-sized chunks of src.
func loadN[T Lanes](d Tag, src []T, vs []Vec[T]) {
	lanes := d.Width() / sizeOf[T]()
	for i := range vs {
		lo := min(i*lanes, len(src))
		vs[i] = Load(d, src[lo:])
	}
}

// storeN writes vs to consecutive vector-sized chunks of dst.
func storeN[T Lanes](vs []Vec[T], dst []T) {
	lanes := vs[0].NumLanes()
	for i := range vs {
		lo := min(i*lanes, len(dst))
		vs[i].Store(dst[lo:])
	}
}

// LoadInterleaved2 loads interleaved pairs and deinterleaves them into two
// vectors of width d (array-of-structures to structure-of-arrays).
//
// Input memory layout:
//
//	[a0, b0, a1, b1, a2, b2, a3, b3, ...]
//
// Output vectors:
//
//	a = [a0, a1, a2, a3, ...]
//	b = [b0, b1, b2, b3, ...]
func LoadInterleaved2[T Lanes](d Tag, src []T) (a, b Vec[T]) {
	var x [2]Vec[T]
	loadN(d, src, x[:])
	return MemUnpack2(x[0], x[1])
}

// LoadInterleaved3 loads interleaved triples, such as RGB pixels or XYZ
// coordinates, into three vectors of width d.
//
// Input memory layout:
//
//	[a0, b0, c0, a1, b1, c1, a2, b2, c2, ...]
func LoadInterleaved3[T Lanes](d Tag, src []T) (a, b, c Vec[T]) {
	var x [3]Vec[T]
	loadN(d, src, x[:])
	return MemUnpack3(x[0], x[1], x[2])
}

// LoadInterleaved4 loads interleaved quads, such as RGBA pixels, into four
// vectors of width d.
func LoadInterleaved4[T Lanes](d Tag, src []T) (a, b, c, e Vec[T]) {
	var x [4]Vec[T]
	loadN(d, src, x[:])
	return MemUnpack4(x[0], x[1], x[2], x[3])
}

// LoadInterleaved6 loads groups of six interleaved elements into six
// vectors of width d.
func LoadInterleaved6[T Lanes](d Tag, src []T) [6]Vec[T] {
	var x [6]Vec[T]
	loadN(d, src, x[:])
	return MemUnpack6(x)
}

// StoreInterleaved2 stores a and b interleaved to dst. It is the inverse of
// LoadInterleaved2.
//
// Output memory layout:
//
//	[a0, b0, a1, b1, a2, b2, a3, b3, ...]
func StoreInterleaved2[T Lanes](a, b Vec[T], dst []T) {
	x0, x1 := MemPack2(a, b)
	x := [2]Vec[T]{x0, x1}
	storeN(x[:], dst)
}

// StoreInterleaved3 stores a, b and c interleaved to dst. It is the inverse
// of LoadInterleaved3.
func StoreInterleaved3[T Lanes](a, b, c Vec[T], dst []T) {
	x0, x1, x2 := MemPack3(a, b, c)
	x := [3]Vec[T]{x0, x1, x2}
	storeN(x[:], dst)
}

// StoreInterleaved4 stores four vectors interleaved to dst. It is the
// inverse of LoadInterleaved4.
func StoreInterleaved4[T Lanes](a, b, c, e Vec[T], dst []T) {
	x0, x1, x2, x3 := MemPack4(a, b, c, e)
	x := [4]Vec[T]{x0, x1, x2, x3}
	storeN(x[:], dst)
}

// StoreInterleaved6 stores six vectors interleaved to dst. It is the
// inverse of LoadInterleaved6.
func StoreInterleaved6[T Lanes](v [6]Vec[T], dst []T) {
	x := MemPack6(v)
	storeN(x[:], dst)
}
