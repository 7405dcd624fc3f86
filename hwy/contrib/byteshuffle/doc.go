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

// Package byteshuffle regroups the bytes of typed buffers so that general
// purpose compressors see long runs of similar bytes.
//
// For a buffer of n elements of typeSize bytes, Shuffle writes byte j of
// every element to plane j:
//
//	src: A0 A1 A2 A3  B0 B1 B2 B3  C0 C1 C2 C3
//	dst: A0 B0 C0  A1 B1 C1  A2 B2 C2  A3 B3 C3
//
// Trailing bytes that do not form a whole element are copied unchanged.
// Unshuffle is the inverse.
//
// Element sizes 2, 3, 4, 6 and 8 run on hwy.LoadInterleavedN/MemUnpack and
// their inverses; other sizes use the scalar loop in BaseShuffle.
//
// Codec combines the shuffle with zstd:
//
//	c, err := byteshuffle.NewCodec(8)
//	frame := c.Encode(nil, float64Bytes)
//	plain, err := c.Decode(nil, frame)
package byteshuffle
