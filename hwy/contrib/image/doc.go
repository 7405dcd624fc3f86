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

// Package image provides planar images with vector-aligned rows and the
// layout changes between packed pixels and planes.
//
// Image[T] is one channel; Planes[T] bundles the channels of a picture.
//
// # Packed pixels and planes
//
//	planes, err := image.Deinterleave(rgb, 3, width, height, 0)
//	err = image.Interleave(planes, rgb, 0)
//
// Deinterleave and Interleave run on hwy.LoadInterleavedN and
// hwy.StoreInterleavedN for 2, 3, 4 or 6 channels.
//
// # Transpose
//
//	t := image.Transpose(img)
//
// Transpose moves whole 16-byte tiles with hwy.Transpose2/4/8/16 (16x16
// for bytes, 8x8 for 16-bit pixels, 4x4 for 32-bit and 2x2 for 64-bit).
package image
