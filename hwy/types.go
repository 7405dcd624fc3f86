// Package hwy provides a portable shuffle, permute, interleave and transpose
// engine for fixed-width vectors, with runtime selection of the instruction
// set that implements it.
//
// Every operation produces the same bytes on every target. The scalar target
// is the reference; the SIMD targets compose emulated native-register
// instructions and are checked against it (see Verify). Runtime selection
// only picks a target whose instructions run natively; HWY_TARGET selects
// any of them.
//
// Basic usage:
//
//	import "github.com/ajroetker/hwyperm/hwy"
//
//	var swapPairs = hwy.MustPattern(1, 0)
//
//	v := hwy.Load(hwy.FixedTag128[uint32]{}, data)
//	v = hwy.Permute(v, swapPairs)
//	v.Store(out)
//
// Operations act on 16-byte blocks unless documented as lane-crossing: a
// 256-bit ZipLo interleaves the lower half of each 128-bit block, exactly as
// the 128-bit instruction applied to each block would.
package hwy

import "unsafe"

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
type Lanes interface {
	Floats | Integers
}

const (
	// BlockBytes is the width of the 128-bit block that lane-local
	// operations act on independently.
	BlockBytes = 16

	// MaxBytes is the widest supported vector (512 bits).
	MaxBytes = 64
)

// raw is the byte image of a vector. The zero-length uint64 array keeps it
// 8-byte aligned so lanes can be addressed in place.
type raw struct {
	_ [0]uint64
	b [MaxBytes]byte
}

// Vec is a vector of 16, 32 or 64 bytes holding lanes of type T.
//
// Vec is a plain value: operations take and return copies and never
// allocate. Use Load, Set, Zero or Iota to create one.
type Vec[T Lanes] struct {
	r raw
	n uint8 // width in bytes
}

func sizeOf[T Lanes]() int {
	var dummy T
	return int(unsafe.Sizeof(dummy))
}

func makeVec[T Lanes](r raw, width int) Vec[T] {
	return Vec[T]{r: r, n: uint8(width)}
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return int(v.n) / sizeOf[T]()
}

// Bytes returns the width of the vector in bytes.
func (v Vec[T]) Bytes() int {
	return int(v.n)
}

func (v *Vec[T]) lanes() []T {
	return unsafe.Slice((*T)(unsafe.Pointer(&v.r.b[0])), v.NumLanes())
}

// Lane returns element i.
func (v Vec[T]) Lane(i int) T {
	return v.lanes()[i]
}

// WithLane returns a copy of v with element i replaced by x.
func (v Vec[T]) WithLane(i int, x T) Vec[T] {
	v.lanes()[i] = x
	return v
}

// Data returns a copy of the lanes as a slice.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	out := make([]T, v.NumLanes())
	copy(out, v.lanes())
	return out
}

// Store writes the vector's data to a slice.
// This is the method form of the hwy.Store function.
func (v Vec[T]) Store(dst []T) {
	copy(dst, v.lanes())
}

// Mask selects lanes for Blend. Each lane is either all ones or all zeros,
// so byte-select and bit-select instructions agree on it.
type Mask[T Lanes] struct {
	r raw
	n uint8
}

// MaskFunc returns a mask of width d whose lane i is set when f(i) is true.
func MaskFunc[T Lanes](d Tag, f func(i int) bool) Mask[T] {
	w := checkWidth(d.Width())
	es := sizeOf[T]()
	var m Mask[T]
	m.n = uint8(w)
	for i := 0; i < w/es; i++ {
		if f(i) {
			for k := range es {
				m.r.b[i*es+k] = 0xFF
			}
		}
	}
	return m
}

// FirstN returns a mask with lanes [0, n) set.
func FirstN[T Lanes](d Tag, n int) Mask[T] {
	return MaskFunc[T](d, func(i int) bool { return i < n })
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return int(m.n) / sizeOf[T]()
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= m.NumLanes() {
		return false
	}
	return m.r.b[i*sizeOf[T]()] != 0
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	return m.CountTrue() == m.NumLanes()
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	return m.CountTrue() > 0
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	count := 0
	for i := range m.NumLanes() {
		if m.GetBit(i) {
			count++
		}
	}
	return count
}

// checkWidth panics unless w is a supported vector width.
func checkWidth(w int) int {
	switch w {
	case 16, 32, 64:
		return w
	}
	panic("hwy: unsupported vector width")
}

func sameWidth(a, b int) {
	if a != b {
		panic("hwy: vector widths differ")
	}
}
