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

// Kind is the move sequence a Pattern compiles to for one element size.
type Kind uint8

const (
	// KindGeneric is a mask-driven byte shuffle of one block.
	KindGeneric Kind = iota
	// KindIdentity returns the first source.
	KindIdentity
	// KindSecond returns the second source.
	KindSecond
	// KindZero returns zero.
	KindZero
	// KindBroadcast repeats one element across its group.
	KindBroadcast
	// KindReverse reverses the group of one source.
	KindReverse
	// KindBlend takes every element from the same position of either source.
	KindBlend
	// KindZipLo is the block zip of the lower halves.
	KindZipLo
	// KindZipHi is the block zip of the upper halves.
	KindZipHi
	// KindCrossing groups span several blocks and use a whole-vector lookup.
	KindCrossing
	// KindUnsupported groups are wider than the widest vector; applying the
	// pattern at this element size panics.
	KindUnsupported
)

var kindNames = [...]string{
	KindGeneric:     "generic",
	KindIdentity:    "identity",
	KindSecond:      "second",
	KindZero:        "zero",
	KindBroadcast:   "broadcast",
	KindReverse:     "reverse",
	KindBlend:       "blend",
	KindZipLo:       "zip_lo",
	KindZipHi:       "zip_hi",
	KindCrossing:    "crossing",
	KindUnsupported: "unsupported",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Pattern is a compiled selector group, shared by Permute, Shuffle and the
// fixed-group forms.
//
// A Pattern holds the selectors for one group of G ∈ {2, 4, 8, 16} elements;
// the operation repeats it over every group of the vector. Selector s picks
// element s of the first source (s < G), element s-G of the second source
// (G <= s < 2G), or zero (s == -1). Building a pattern validates the
// selectors and precomputes the move sequence and masks for every element
// size, so applying it costs no more than the chosen instructions.
//
// Declare patterns as package-level variables with MustPattern: an invalid
// selector list then stops the program (and every test) at initialization.
type Pattern struct {
	c *compiledPattern
}

type compiledPattern struct {
	sel  [16]int8
	g    int
	plan [4]plan // indexed by log2 of the element size
}

// plan is the compiled form of a pattern for one element size.
type plan struct {
	kind Kind
	// fits is false when the group is wider than 64 bytes.
	fits bool
	// src is the source of broadcast and reverse moves (0 first, 1 second).
	src int8
	// lane is the broadcast element.
	lane int8
	// mask is the block mask of the generic move.
	mask ShuffleMask
	// pick has 0xFF on the bytes a blend takes from the second source.
	pick [BlockBytes]byte
	// wide is the whole-vector table of crossing patterns.
	wide *[MaxBytes]byte
}

// NewPattern compiles a selector group.
func NewPattern(sel ...int) (Pattern, error) {
	if err := checkSelectors(1, sel, BlockBytes); err != nil {
		return Pattern{}, errors.Wrapf(err, "pattern %v", sel)
	}
	c := &compiledPattern{g: len(sel)}
	for i, s := range sel {
		c.sel[i] = int8(s)
	}
	for i, es := range []int{1, 2, 4, 8} {
		c.plan[i] = compilePlan(sel, es)
	}
	return Pattern{c: c}, nil
}

// MustPattern is like NewPattern but panics on invalid selectors.
func MustPattern(sel ...int) Pattern {
	p, err := NewPattern(sel...)
	if err != nil {
		panic(err)
	}
	return p
}

func compilePlan(sel []int, es int) plan {
	g := len(sel)
	span := g * es
	pl := plan{fits: span <= MaxBytes}
	switch {
	case !pl.fits:
		pl.kind = KindUnsupported
		return pl
	case span > BlockBytes:
		t := wideTable(es, sel, MaxBytes)
		pl.kind, pl.wide = KindCrossing, &t
		return pl
	}
	pl.kind = classify(sel, es)
	switch pl.kind {
	case KindBroadcast:
		pl.src, pl.lane = int8(sel[0]/g), int8(sel[0]%g)
	case KindReverse:
		pl.src = int8(sel[0] / g)
	case KindBlend:
		for base := 0; base < BlockBytes; base += span {
			for i, s := range sel {
				if s >= g {
					for k := range es {
						pl.pick[base+i*es+k] = 0xFF
					}
				}
			}
		}
	case KindGeneric:
		pl.mask = tileMask(es, sel)
	}
	return pl
}

// classify picks the cheapest move for a group that fits one block. Only
// the shapes every target has a short sequence for are recognized; the rest
// take the mask-driven path.
func classify(sel []int, es int) Kind {
	g := len(sel)
	var identity, second, zero, same, rev, blend = true, true, true, true, true, true
	for i, s := range sel {
		identity = identity && s == i
		second = second && s == g+i
		zero = zero && s == -1
		same = same && s == sel[0] && s >= 0
		rev = rev && s >= 0 && s == sel[0]-i && (s < g) == (sel[0] < g)
		blend = blend && (s == i || s == g+i)
	}
	switch {
	case identity:
		return KindIdentity
	case second:
		return KindSecond
	case zero:
		return KindZero
	case same:
		return KindBroadcast
	case rev && (sel[0] == g-1 || sel[0] == 2*g-1):
		return KindReverse
	case blend:
		return KindBlend
	}
	if g*es == BlockBytes {
		lo, hi := true, true
		for i := 0; i < g/2; i++ {
			lo = lo && sel[2*i] == i && sel[2*i+1] == g+i
			hi = hi && sel[2*i] == g/2+i && sel[2*i+1] == g+g/2+i
		}
		switch {
		case lo:
			return KindZipLo
		case hi:
			return KindZipHi
		}
	}
	return KindGeneric
}

// Group returns the number of selectors G.
func (p Pattern) Group() int {
	return p.c.g
}

// Selectors returns a copy of the selectors.
func (p Pattern) Selectors() []int {
	out := make([]int, p.c.g)
	for i := range out {
		out[i] = int(p.c.sel[i])
	}
	return out
}

// Sources returns 2 if any selector reads the second source, otherwise 1.
func (p Pattern) Sources() int {
	for _, s := range p.c.sel[:p.c.g] {
		if int(s) >= p.c.g {
			return 2
		}
	}
	return 1
}

// Zeroing reports whether any selector is -1.
func (p Pattern) Zeroing() bool {
	for _, s := range p.c.sel[:p.c.g] {
		if s < 0 {
			return true
		}
	}
	return false
}

// Kind returns the move the pattern uses for elements of elemBytes bytes.
func (p Pattern) Kind(elemBytes int) Kind {
	return p.c.plan[log2Size(elemBytes)].kind
}

// Locality returns LaneCrossing when the group for elemBytes-byte elements
// spans more than one block.
func (p Pattern) Locality(elemBytes int) Locality {
	if p.c.g*elemBytes > BlockBytes {
		return LaneCrossing
	}
	return LaneLocal
}

// Mask returns the block mask for elemBytes-byte elements. The second
// result is false when the group does not fit one block.
func (p Pattern) Mask(elemBytes int) (ShuffleMask, bool) {
	if p.c.g*elemBytes > BlockBytes {
		return ShuffleMask{}, false
	}
	return tileMask(elemBytes, p.Selectors()), true
}

// String returns the selectors in angle brackets, e.g. "<1,0>".
func (p Pattern) String() string {
	if p.c == nil {
		return "<>"
	}
	var sb strings.Builder
	sb.WriteByte('<')
	for i, s := range p.c.sel[:p.c.g] {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprint(&sb, s)
	}
	sb.WriteByte('>')
	return sb.String()
}

// Sel4 packs four 2-bit selectors, s0 in the low bits, like the immediate of
// pshufd. An out-of-range constant does not compile.
type Sel4 uint8

// Common Sel4 values.
const (
	Sel4Identity Sel4 = 0xE4 // <0,1,2,3>
	Sel4Reverse  Sel4 = 0x1B // <3,2,1,0>
	Sel4SwapPair Sel4 = 0xB1 // <1,0,3,2>
	Sel4SwapHalf Sel4 = 0x4E // <2,3,0,1>
)

// MakeSel4 packs four selectors in [0, 4).
func MakeSel4(s0, s1, s2, s3 int) Sel4 {
	for _, s := range [4]int{s0, s1, s2, s3} {
		if s < 0 || s > 3 {
			panic(fmt.Sprintf("hwy: Sel4 selector %d out of range [0, 4)", s))
		}
	}
	return Sel4(s0 | s1<<2 | s2<<4 | s3<<6)
}

// At returns selector i.
func (s Sel4) At(i int) int {
	return int(s>>(2*i)) & 3
}

// Lookup tables of the fixed-group forms, indexed by the packed selectors.
var (
	permute2Table [4]Pattern
	shuffle1Table [4]Pattern
	permute4Table [256]Pattern
	shuffle2Table [256]Pattern
)

func init() {
	for i := range 4 {
		s0, s1 := i&1, i>>1
		permute2Table[i] = MustPattern(s0, s1)
		shuffle1Table[i] = MustPattern(s0, 2+s1)
	}
	for i := range 256 {
		s := Sel4(i)
		permute4Table[i] = MustPattern(s.At(0), s.At(1), s.At(2), s.At(3))
		shuffle2Table[i] = MustPattern(s.At(0), s.At(1), 4+s.At(2), 4+s.At(3))
	}
}
