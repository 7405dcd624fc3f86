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
	"math/rand/v2"

	"github.com/cockroachdb/errors"
)

// verifyRounds is the number of random inputs per primitive and width.
const verifyRounds = 64

var (
	widths    = [3]int{16, 32, 64}
	elemSizes = [4]int{1, 2, 4, 8}
)

// Verify runs every primitive, random patterns, every pack network and
// every transpose on t and on the scalar target with the same random
// inputs, and returns an error describing the first difference. The same
// seed always produces the same inputs.
func Verify(t Target, seed uint64) error {
	ref := Target(scalarTarget{})
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for _, w := range widths {
		for _, p := range Primitives() {
			for range verifyRounds {
				c := randomCase(r, p, w)
				if err := c.compare(t, ref); err != nil {
					return errors.Wrapf(err, "target %s", t.Name())
				}
			}
		}
		for range verifyRounds {
			if err := comparePattern(r, t, ref, w); err != nil {
				return errors.Wrapf(err, "target %s", t.Name())
			}
		}
		for _, es := range elemSizes {
			if err := compareNetworks(r, t, ref, es, w); err != nil {
				return errors.Wrapf(err, "target %s", t.Name())
			}
		}
	}
	return nil
}

// primitiveCase is one invocation of a primitive.
type primitiveCase struct {
	prim    Primitive
	w       int
	a, b, m raw
	g, es   int
	n, lane int
	mask    ShuffleMask
	idx     [MaxBytes]byte
	sel     [4]int8
}

func (c *primitiveCase) run(t Target) raw {
	switch c.prim {
	case PrimZipLo:
		return t.zipLo(c.a, c.b, c.g, c.w)
	case PrimZipHi:
		return t.zipHi(c.a, c.b, c.g, c.w)
	case PrimUnzipLo:
		return t.unzipLo(c.a, c.b, c.g, c.w)
	case PrimUnzipHi:
		return t.unzipHi(c.a, c.b, c.g, c.w)
	case PrimShuffleBytes:
		return t.shuffleBytes(c.a, c.b, c.mask, c.w)
	case PrimBlend:
		return t.blend(c.a, c.b, c.m, c.w)
	case PrimAlignBlocks:
		return t.alignBlocks(c.a, c.b, c.n, c.w)
	case PrimReverseGroups:
		return t.reverseGroups(c.a, c.g, c.es, c.w)
	case PrimBroadcastGroups:
		return t.broadcastGroups(c.a, c.lane, c.g, c.es, c.w)
	case PrimLookupBytes:
		return t.lookupBytes(c.a, c.b, c.idx, c.w)
	case PrimPermuteBlocks:
		return t.permuteBlocks(c.a, c.b, c.sel, c.w)
	case PrimAlignWide:
		return t.alignWide(c.a, c.b, c.n, c.w)
	}
	panic("hwy: unknown primitive")
}

// args describes the non-vector arguments of the case.
func (c *primitiveCase) args() string {
	switch c.prim {
	case PrimZipLo, PrimZipHi, PrimUnzipLo, PrimUnzipHi:
		return fmt.Sprintf("g=%d", c.g)
	case PrimShuffleBytes:
		return "mask=" + c.mask.String()
	case PrimAlignBlocks, PrimAlignWide:
		return fmt.Sprintf("n=%d", c.n)
	case PrimReverseGroups:
		return fmt.Sprintf("group=%d es=%d", c.g, c.es)
	case PrimBroadcastGroups:
		return fmt.Sprintf("group=%d es=%d lane=%d", c.g, c.es, c.lane)
	case PrimLookupBytes:
		return fmt.Sprintf("idx=%x", c.idx[:c.w])
	case PrimPermuteBlocks:
		return fmt.Sprintf("sel=%v", c.sel[:c.w/BlockBytes])
	}
	return ""
}

func (c *primitiveCase) compare(t, ref Target) error {
	got, want := c.run(t), c.run(ref)
	if i := firstDiff(got, want); i >= 0 {
		return errors.Newf("%s(w=%d %s): byte %d is %#02x, scalar gives %#02x",
			c.prim, c.w, errors.Safe(c.args()), i, got.b[i], want.b[i])
	}
	return nil
}

// firstDiff returns the index of the first differing byte, or -1. Bytes past
// the vector width are compared too: they must be zero on every target.
func firstDiff(x, y raw) int {
	for i := range x.b {
		if x.b[i] != y.b[i] {
			return i
		}
	}
	return -1
}

func randomRaw(r *rand.Rand, w int) raw {
	var v raw
	for i := range w {
		v.b[i] = byte(r.Uint32())
	}
	return v
}

func randomCase(r *rand.Rand, p Primitive, w int) primitiveCase {
	c := primitiveCase{prim: p, w: w, a: randomRaw(r, w), b: randomRaw(r, w)}
	c.es = elemSizes[r.IntN(len(elemSizes))]
	c.g = c.es
	switch p {
	case PrimShuffleBytes:
		for i := range c.mask {
			if r.IntN(8) == 0 {
				c.mask[i] = ZeroIndex
			} else {
				c.mask[i] = byte(r.IntN(2 * BlockBytes))
			}
		}
	case PrimBlend:
		c.m = randomRaw(r, w)
	case PrimAlignBlocks:
		c.n = r.IntN(BlockBytes + 1)
	case PrimReverseGroups, PrimBroadcastGroups:
		// group of 2^k elements, at most one block
		c.g = c.es << r.IntN(log2Size(BlockBytes/c.es)+1)
		c.lane = r.IntN(c.g / c.es)
	case PrimLookupBytes:
		for i := range w {
			switch x := r.IntN(2*w + 8); {
			case x >= 2*w:
				c.idx[i] = ZeroIndex
			case x >= w:
				c.idx[i] = byte(wideSecondSource + x - w)
			default:
				c.idx[i] = byte(x)
			}
		}
	case PrimPermuteBlocks:
		nb := w / BlockBytes
		for i := range nb {
			switch x := r.IntN(2*nb + 1); {
			case x == 2*nb:
				c.sel[i] = -1
			case x >= nb:
				c.sel[i] = int8(4 + x - nb)
			default:
				c.sel[i] = int8(x)
			}
		}
	case PrimAlignWide:
		c.n = r.IntN(w + 1)
	}
	return c
}

// randomSelectors returns a group of g selectors in [-1, 2g).
func randomSelectors(r *rand.Rand, g int) []int {
	sel := make([]int, g)
	for i := range sel {
		sel[i] = r.IntN(2*g+1) - 1
	}
	return sel
}

func comparePattern(r *rand.Rand, t, ref Target, w int) error {
	es := elemSizes[r.IntN(len(elemSizes))]
	maxG := min(w/es, BlockBytes)
	if maxG < 2 {
		return nil
	}
	g := 2 << r.IntN(log2Size(maxG))
	p := MustPattern(randomSelectors(r, g)...)
	a, b := randomRaw(r, w), randomRaw(r, w)
	got := applyPattern(t, a, b, p.c, es, w)
	want := applyPattern(ref, a, b, p.c, es, w)
	if i := firstDiff(got, want); i >= 0 {
		return errors.Newf("pattern %s (%s, es=%d, w=%d): byte %d is %#02x, scalar gives %#02x",
			errors.Safe(p.String()), p.Kind(es), es, w, i, got.b[i], want.b[i])
	}
	return nil
}

// compareNetworks checks the pack, unpack and transpose networks for one
// element size.
func compareNetworks(r *rand.Rand, t, ref Target, es, w int) error {
	var in [16]raw
	for i := range in {
		in[i] = randomRaw(r, w)
	}
	check := func(name string, got, want []raw) error {
		for k := range got {
			if i := firstDiff(got[k], want[k]); i >= 0 {
				return errors.Newf("%s(es=%d, w=%d): vector %d byte %d is %#02x, scalar gives %#02x",
					errors.Safe(name), es, w, k, i, got[k].b[i], want[k].b[i])
			}
		}
		return nil
	}
	run := func(tt Target) (out [][]raw) {
		p0, p1 := pack2(tt, in[0], in[1], es, w)
		u0, u1 := unpack2(tt, in[0], in[1], es, w)
		q0, q1, q2 := pack3(tt, in[0], in[1], in[2], es, w)
		v0, v1, v2 := unpack3(tt, in[0], in[1], in[2], es, w)
		f0, f1, f2, f3 := pack4(tt, in[0], in[1], in[2], in[3], es, w)
		g0, g1, g2, g3 := unpack4(tt, in[0], in[1], in[2], in[3], es, w)
		s := pack6(tt, [6]raw(in[:6]), es, w)
		x := unpack6(tt, [6]raw(in[:6]), es, w)
		out = append(out, []raw{p0, p1}, []raw{u0, u1}, []raw{q0, q1, q2}, []raw{v0, v1, v2},
			[]raw{f0, f1, f2, f3}, []raw{g0, g1, g2, g3}, s[:], x[:])
		for k := 2; k*es <= BlockBytes; k *= 2 {
			rows := make([]raw, k)
			copy(rows, in[:k])
			transposeRows(tt, rows, es, w)
			out = append(out, rows)
		}
		return out
	}
	names := []string{"pack2", "unpack2", "pack3", "unpack3", "pack4", "unpack4", "pack6", "unpack6"}
	got, want := run(t), run(ref)
	for i := range got {
		var name string
		if i < len(names) {
			name = names[i]
		} else {
			name = fmt.Sprintf("transpose%d", 2<<(i-len(names)))
		}
		if err := check(name, got[i], want[i]); err != nil {
			return err
		}
	}
	return nil
}
