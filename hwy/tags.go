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

// Tag selects the width of the vectors created by Load, Zero, Set and the
// other constructors. Operations on existing vectors keep their width.
type Tag interface {
	// Width returns the width in bytes (16, 32 or 64).
	Width() int

	// Name returns a human-readable name for this tag.
	Name() string
}

// ScalableTag uses the register width of the current target: 16 bytes for
// scalar, SSSE3 and NEON, 32 for AVX2 and 64 for AVX-512.
//
// Usage:
//
//	tag := hwy.ScalableTag[float32]{}
//	v := hwy.Load(tag, data)
type ScalableTag[T Lanes] struct{}

// Width returns the current target's register width in bytes.
func (ScalableTag[T]) Width() int {
	return currentWidth
}

// Name returns the current target name.
func (ScalableTag[T]) Name() string {
	return currentName
}

// MaxLanes returns the number of T values in one register of the current target.
func (t ScalableTag[T]) MaxLanes() int {
	return MaxLanes[T]()
}

// FixedTag128 selects 128-bit vectors: one block on every target.
type FixedTag128[T Lanes] struct{}

// Width returns 16 bytes (128 bits).
func (FixedTag128[T]) Width() int {
	return 16
}

// Name returns "128bit".
func (FixedTag128[T]) Name() string {
	return "128bit"
}

// MaxLanes returns the number of T values that fit in 128 bits.
func (t FixedTag128[T]) MaxLanes() int {
	return 16 / sizeOf[T]()
}

// FixedTag256 selects 256-bit vectors. 128-bit targets compose them from
// two registers.
type FixedTag256[T Lanes] struct{}

// Width returns 32 bytes (256 bits).
func (FixedTag256[T]) Width() int {
	return 32
}

// Name returns "256bit".
func (FixedTag256[T]) Name() string {
	return "256bit"
}

// MaxLanes returns the number of T values that fit in 256 bits.
func (t FixedTag256[T]) MaxLanes() int {
	return 32 / sizeOf[T]()
}

// FixedTag512 selects 512-bit vectors, the widest the engine supports.
type FixedTag512[T Lanes] struct{}

// Width returns 64 bytes (512 bits).
func (FixedTag512[T]) Width() int {
	return 64
}

// Name returns "512bit".
func (FixedTag512[T]) Name() string {
	return "512bit"
}

// MaxLanes returns the number of T values that fit in 512 bits.
func (t FixedTag512[T]) MaxLanes() int {
	return 64 / sizeOf[T]()
}

// MaxLanes returns the number of lanes of type T in one register of the
// current target.
func MaxLanes[T Lanes]() int {
	return currentWidth / sizeOf[T]()
}
