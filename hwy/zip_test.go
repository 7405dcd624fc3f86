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
	"reflect"
	"testing"
)

func TestZipLo_Bytes(t *testing.T) {
	forEachTarget(t, func(t *testing.T, tgt Target) {
		a := iotaFrom[uint8](16, 0)
		b := iotaFrom[uint8](16, 16)
		got := zipLo(tgt, a, b).Data()
		want := []uint8{0, 16, 1, 17, 2, 18, 3, 19, 4, 20, 5, 21, 6, 22, 7, 23}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ZipLo = %v, want %v", got, want)
		}
		got = zipHi(tgt, a, b).Data()
		want = []uint8{8, 24, 9, 25, 10, 26, 11, 27, 12, 28, 13, 29, 14, 30, 15, 31}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ZipHi = %v, want %v", got, want)
		}
	})
}

func TestZip_PerBlock(t *testing.T) {
	forEachTarget(t, func(t *testing.T, tgt Target) {
		a := iotaFrom[uint32](32, 0)
		b := iotaFrom[uint32](32, 10)
		if got, want := zipLo(tgt, a, b).Data(), []uint32{0, 10, 1, 11, 4, 14, 5, 15}; !reflect.DeepEqual(got, want) {
			t.Errorf("ZipLo = %v, want %v", got, want)
		}
		if got, want := zipHi(tgt, a, b).Data(), []uint32{2, 12, 3, 13, 6, 16, 7, 17}; !reflect.DeepEqual(got, want) {
			t.Errorf("ZipHi = %v, want %v", got, want)
		}
		if got, want := unzipLo(tgt, a, b).Data(), []uint32{0, 2, 10, 12, 4, 6, 14, 16}; !reflect.DeepEqual(got, want) {
			t.Errorf("UnzipLo = %v, want %v", got, want)
		}
		if got, want := unzipHi(tgt, a, b).Data(), []uint32{1, 3, 11, 13, 5, 7, 15, 17}; !reflect.DeepEqual(got, want) {
			t.Errorf("UnzipHi = %v, want %v", got, want)
		}
	})
}

func testZipRoundTrip[T Lanes](t *testing.T, tgt Target) {
	for _, w := range widths {
		a := iotaFrom[T](w, 1)
		b := iotaFrom[T](w, 65)
		lo, hi := zipLo(tgt, a, b), zipHi(tgt, a, b)
		if got := unzipLo(tgt, lo, hi); got != a {
			t.Errorf("w=%d UnzipLo(ZipLo, ZipHi) = %v, want %v", w, got.Data(), a.Data())
		}
		if got := unzipHi(tgt, lo, hi); got != b {
			t.Errorf("w=%d UnzipHi(ZipLo, ZipHi) = %v, want %v", w, got.Data(), b.Data())
		}
	}
}

func TestZip_RoundTrip(t *testing.T) {
	forEachTarget(t, func(t *testing.T, tgt Target) {
		t.Run("uint8", func(t *testing.T) { testZipRoundTrip[uint8](t, tgt) })
		t.Run("int16", func(t *testing.T) { testZipRoundTrip[int16](t, tgt) })
		t.Run("float32", func(t *testing.T) { testZipRoundTrip[float32](t, tgt) })
		t.Run("uint64", func(t *testing.T) { testZipRoundTrip[uint64](t, tgt) })
	})
}

func TestInterleaveAliases(t *testing.T) {
	a := iotaFrom[uint16](16, 0)
	b := iotaFrom[uint16](16, 8)
	if InterleaveLower(a, b) != ZipLo(a, b) || InterleaveUpper(a, b) != ZipHi(a, b) {
		t.Error("Interleave aliases differ from ZipLo/ZipHi")
	}
}

func TestZip_WidthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	ZipLo(iotaFrom[uint8](16, 0), iotaFrom[uint8](32, 0))
}

func BenchmarkZipLo(b *testing.B) {
	for _, tgt := range Targets() {
		b.Run(tgt.Name(), func(b *testing.B) {
			x := iotaFrom[uint8](64, 0)
			y := iotaFrom[uint8](64, 64)
			for b.Loop() {
				x = zipLo(tgt, x, y)
			}
		})
	}
}
