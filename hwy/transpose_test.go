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
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestTranspose4_Rows(t *testing.T) {
	r0 := Load(FixedTag128[int32]{}, []int32{0, 1, 2, 3})
	r1 := Load(FixedTag128[int32]{}, []int32{10, 11, 12, 13})
	r2 := Load(FixedTag128[int32]{}, []int32{20, 21, 22, 23})
	r3 := Load(FixedTag128[int32]{}, []int32{30, 31, 32, 33})
	rows := [4]Vec[int32]{r0, r1, r2, r3}
	Transpose4(&r0, &r1, &r2, &r3)
	for j, c := range [4]Vec[int32]{r0, r1, r2, r3} {
		for i := range 4 {
			if got, want := c.Lane(i), rows[i].Lane(j); got != want {
				t.Errorf("C%d[%d] = %d, want R%d[%d] = %d", j, i, got, i, j, want)
			}
		}
	}
}

// checkTransposed verifies that every KxK group of out is the transpose of
// the same group of in.
func checkTransposed[T Lanes](t *testing.T, in, out []Vec[T]) {
	t.Helper()
	k := len(in)
	for q := 0; q < in[0].NumLanes(); q += k {
		for i := range k {
			for j := range k {
				if got, want := out[i].Lane(q+j), in[j].Lane(q+i); got != want {
					t.Fatalf("K=%d group %d: out[%d][%d] = %v, want in[%d][%d] = %v", k, q/k, i, j, got, j, i, want)
				}
			}
		}
	}
}

// matrixRow returns row i of the KxK matrices held by k vectors of w bytes.
// Cell (i, j) of group g holds i*k+j+17*g, which wraps for byte lanes but
// stays distinct within a group since k*k <= 256.
func matrixRow[T Lanes](w, k, i int) Vec[T] {
	v := Zero[T](tagOf(w))
	for l := range v.NumLanes() {
		v = v.WithLane(l, T(i*k+l%k+17*(l/k)))
	}
	return v
}

// checkDistinct fails unless every KxK group of in holds k*k distinct values.
func checkDistinct[T Lanes](t *testing.T, in []Vec[T]) {
	t.Helper()
	k := len(in)
	for q := 0; q < in[0].NumLanes(); q += k {
		seen := make(map[T]bool, k*k)
		for i := range k {
			for j := range k {
				x := in[i].Lane(q + j)
				if seen[x] {
					t.Fatalf("K=%d group %d: value %v repeats", k, q/k, x)
				}
				seen[x] = true
			}
		}
	}
}

func testTranspose[T Lanes](t *testing.T, tgt Target, k int) {
	for _, w := range widths {
		in := make([]Vec[T], k)
		for i := range in {
			in[i] = matrixRow[T](w, k, i)
		}
		checkDistinct(t, in)
		out := make([]Vec[T], k)
		copy(out, in)
		switch k {
		case 2:
			transpose2Vec(tgt, &out[0], &out[1])
		case 4:
			transpose4Vec(tgt, &out[0], &out[1], &out[2], &out[3])
		default:
			transposeN(tgt, out)
		}
		checkTransposed(t, in, out)
	}
}

func TestTranspose_AllSizes(t *testing.T) {
	forEachTarget(t, func(t *testing.T, tgt Target) {
		t.Run("2x2/uint64", func(t *testing.T) { testTranspose[uint64](t, tgt, 2) })
		t.Run("2x2/uint8", func(t *testing.T) { testTranspose[uint8](t, tgt, 2) })
		t.Run("4x4/float32", func(t *testing.T) { testTranspose[float32](t, tgt, 4) })
		t.Run("4x4/int16", func(t *testing.T) { testTranspose[int16](t, tgt, 4) })
		t.Run("8x8/uint16", func(t *testing.T) { testTranspose[uint16](t, tgt, 8) })
		t.Run("8x8/int8", func(t *testing.T) { testTranspose[int8](t, tgt, 8) })
		t.Run("16x16/uint8", func(t *testing.T) { testTranspose[uint8](t, tgt, 16) })
	})
}

func TestTranspose_PublicForms(t *testing.T) {
	var m8 [8]Vec[uint16]
	var m16 [16]Vec[uint8]
	for i := range m8 {
		m8[i] = iotaFrom[uint16](16, uint16(8*i))
	}
	for i := range m16 {
		m16[i] = iotaFrom[uint8](16, uint8(16*i))
	}
	in8, in16 := m8, m16
	Transpose8(&m8)
	Transpose16(&m16)
	checkTransposed(t, in8[:], m8[:])
	checkTransposed(t, in16[:], m16[:])

	a, b := iotaFrom[float64](16, 0), iotaFrom[float64](16, 2)
	Transpose2(&a, &b)
	if a.Lane(0) != 0 || a.Lane(1) != 2 || b.Lane(0) != 1 || b.Lane(1) != 3 {
		t.Errorf("Transpose2 = %v %v", a.Data(), b.Data())
	}
}

func TestTranspose_TooWidePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg := fmt.Sprint(r); msg != "hwy: Transpose8 of 4-byte lanes does not fit a 16-byte block" {
			t.Errorf("panic message %q", msg)
		}
	}()
	var m [8]Vec[float32]
	for i := range m {
		m[i] = Zero[float32](FixedTag128[float32]{})
	}
	Transpose8(&m)
}

func TestTranspose_InvolutionProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	for _, tgt := range Targets() {
		for _, es := range elemSizes {
			for k := 2; k*es <= BlockBytes; k *= 2 {
				name := fmt.Sprintf("%s/K=%d/es=%d", tgt.Name(), k, es)
				properties.Property(name, prop.ForAll(
					func(seed uint64, wi int) bool {
						w := widths[wi]
						r := rand.New(rand.NewPCG(seed, 1))
						rows := make([]raw, k)
						for i := range rows {
							rows[i] = randomRaw(r, w)
						}
						m := make([]raw, k)
						copy(m, rows)
						transposeRows(tgt, m, es, w)
						transposeRows(tgt, m, es, w)
						for i := range m {
							if m[i] != rows[i] {
								return false
							}
						}
						return true
					},
					gen.UInt64(),
					gen.IntRange(0, len(widths)-1),
				))
			}
		}
	}
	properties.TestingRun(t)
}

func BenchmarkTranspose16(b *testing.B) {
	for _, tgt := range Targets() {
		b.Run(tgt.Name(), func(b *testing.B) {
			m := make([]Vec[uint8], 16)
			for i := range m {
				m[i] = iotaFrom[uint8](64, uint8(i))
			}
			for b.Loop() {
				transposeN(tgt, m)
			}
		})
	}
}
