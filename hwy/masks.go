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

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	// ZeroIndex is the control byte that forces an output byte to zero.
	// Every byte-reindex instruction the targets use (pshufb, tbl, vpermi2b
	// with a zeroing mask) treats a set top bit this way.
	ZeroIndex = 0x80

	// secondSource is the control byte of the first byte of the second
	// operand in a two-source block mask.
	secondSource = BlockBytes

	// wideSecondSource is the index of the second operand's first byte in a
	// whole-vector lookup table.
	wideSecondSource = MaxBytes
)

// ShuffleMask is the byte-index control table of one 16-byte block. Byte i
// of the output block is taken from byte m[i] of the first source
// (m[i] < 16), byte m[i]-16 of the second source (16 <= m[i] < 32), or is
// zero (m[i] == ZeroIndex). Wider vectors apply the same table to every block.
type ShuffleMask [BlockBytes]byte

// String formats the mask as hex bytes, with "zz" for zeroed positions.
func (m ShuffleMask) String() string {
	var sb strings.Builder
	for i, b := range m {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if b&ZeroIndex != 0 {
			sb.WriteString("zz")
			continue
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	return sb.String()
}

// MakeShuffleMask builds the block control table for a selector group.
//
// sel holds one selector per element of a group of G = len(sel) elements
// of elemBytes bytes each: s in [0, G) picks element s of the first source,
// s in [G, 2G) element s-G of the second, and -1 produces zero. The group
// pattern is repeated across the block with a stride of G*elemBytes bytes.
func MakeShuffleMask(elemBytes int, sel ...int) (ShuffleMask, error) {
	if err := checkSelectors(elemBytes, sel, BlockBytes); err != nil {
		return ShuffleMask{}, err
	}
	return tileMask(elemBytes, sel), nil
}

// MustShuffleMask is like MakeShuffleMask but panics on invalid selectors.
// Use it for package-level masks so a bad table stops the program at start-up.
func MustShuffleMask(elemBytes int, sel ...int) ShuffleMask {
	m, err := MakeShuffleMask(elemBytes, sel...)
	if err != nil {
		panic(err)
	}
	return m
}

// maskByte returns the control byte of the first byte of the element chosen
// by s in a group of g elements of w bytes.
func maskByte(s, g, w int) byte {
	switch {
	case s < 0:
		return ZeroIndex
	case s < g:
		return byte(s * w)
	default:
		return byte((s-g)*w + secondSource)
	}
}

// tileMask expands sel without validation. The group span must divide 16.
func tileMask(w int, sel []int) ShuffleMask {
	var m ShuffleMask
	g := len(sel)
	span := g * w
	for base := 0; base < BlockBytes; base += span {
		for i, s := range sel {
			first := maskByte(s, g, w)
			for k := range w {
				out := base + i*w + k
				if first == ZeroIndex {
					m[out] = ZeroIndex
					continue
				}
				m[out] = first + byte(base+k)
			}
		}
	}
	return m
}

// wideTable expands sel into a whole-vector lookup table for a vector of
// width bytes: the second source starts at index 64 and ZeroIndex zeroes.
// Used when a group spans more than one block.
func wideTable(w int, sel []int, width int) [MaxBytes]byte {
	var t [MaxBytes]byte
	for i := range t {
		t[i] = ZeroIndex
	}
	g := len(sel)
	span := g * w
	for base := 0; base+span <= width; base += span {
		for i, s := range sel {
			for k := range w {
				out := base + i*w + k
				switch {
				case s < 0:
					t[out] = ZeroIndex
				case s < g:
					t[out] = byte(base + s*w + k)
				default:
					t[out] = byte(wideSecondSource + base + (s-g)*w + k)
				}
			}
		}
	}
	return t
}

// checkSelectors validates a selector group for elements of w bytes whose
// group must fit in maxSpan bytes.
func checkSelectors(w int, sel []int, maxSpan int) error {
	switch w {
	case 1, 2, 4, 8:
	default:
		return errors.WithHint(
			errors.Newf("hwy: element size %d", w),
			"elements are 1, 2, 4 or 8 bytes")
	}
	g := len(sel)
	switch g {
	case 2, 4, 8, 16:
	default:
		return errors.WithHint(
			errors.Newf("hwy: group of %d selectors", g),
			"groups hold 2, 4, 8 or 16 elements")
	}
	if g*w > maxSpan {
		return errors.WithHintf(
			errors.Newf("hwy: group of %d %d-byte elements spans %d bytes", g, w, g*w),
			"the group must fit in %d bytes", maxSpan)
	}
	for i, s := range sel {
		if s < -1 || s >= 2*g {
			return errors.WithHintf(
				errors.Newf("hwy: selector %d at position %d is out of range", s, i),
				"selectors for a group of %d satisfy -1 <= s < %d", g, 2*g)
		}
	}
	return nil
}

// Block masks used by the byte-shuffle targets for the fixed-shape moves.

// reverseMask reverses es-byte elements inside every gb-byte group.
func reverseMask(gb, es int) ShuffleMask {
	n := gb / es
	var sel [BlockBytes]int
	for i := range n {
		sel[i] = n - 1 - i
	}
	return tileMask(es, sel[:n])
}

// broadcastMask copies element lane of every gb-byte group to the whole group.
func broadcastMask(lane, gb, es int) ShuffleMask {
	n := gb / es
	var sel [BlockBytes]int
	for i := range n {
		sel[i] = lane
	}
	return tileMask(es, sel[:n])
}

// compactMask moves the even (odd) g-byte units of a block to its low half
// and zeroes the high half.
func compactMask(g int, odd bool) ShuffleMask {
	n := BlockBytes / g
	var sel [BlockBytes]int
	for i := range n {
		sel[i] = -1
		if i < n/2 {
			sel[i] = 2 * i
			if odd {
				sel[i]++
			}
		}
	}
	return tileMask(g, sel[:n])
}

// splitMask splits a two-source mask into one-source masks for a and b.
func splitMask(m ShuffleMask) (ma, mb ShuffleMask) {
	for i, c := range m {
		ma[i], mb[i] = ZeroIndex, ZeroIndex
		switch {
		case c&ZeroIndex != 0:
		case c < secondSource:
			ma[i] = c
		default:
			mb[i] = c - secondSource
		}
	}
	return ma, mb
}

// log2Size maps an element size in bytes to 0..3.
func log2Size(w int) int {
	switch w {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	default:
		return 3
	}
}
